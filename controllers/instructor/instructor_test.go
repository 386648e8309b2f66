package instructorController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	instructorRoutes "lms/routers/instructorRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userSeq int

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	os.Setenv("SALT_ROUND", "4")
	config.LoadConfig()
	if database.Database.Db == nil {
		database.ConnectTestDb()
	}
	app := fiber.New()
	instructorRoutes.SetupInstructorRoutes(app)
	return app
}

func createUser(t *testing.T, name, role string) (models.User, string) {
	t.Helper()
	userSeq++
	user := models.User{
		Name:            name,
		Email:           fmt.Sprintf("teach%d@example.com", userSeq),
		Password:        "x",
		Role:            role,
		IsActive:        true,
		IsEmailVerified: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createCourse(t *testing.T, instructorID uint, title string) models.Course {
	t.Helper()
	userSeq++
	course := models.Course{
		Title:        title,
		Code:         fmt.Sprintf("T-%d", userSeq),
		Description:  "Course for tests",
		InstructorID: instructorID,
		Term:         "FALL-2026",
		Credits:      3,
		Status:       models.CourseActive,
		IsPublished:  true,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func enroll(t *testing.T, studentID, courseID uint) {
	t.Helper()
	require.NoError(t, database.Database.Db.Create(&models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Status:    models.EnrollmentEnrolled,
	}).Error)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func TestCourseLifecycle(t *testing.T) {
	app := setupApp(t)

	_, instructorToken := createUser(t, "Dr. Novak", models.RoleInstructor)
	_, otherToken := createUser(t, "Dr. Reyes", models.RoleInstructor)
	_, studentToken := createUser(t, "Pat Doyle", models.RoleStudent)

	// Students cannot reach instructor routes at all
	code, _ := doJSON(t, app, "GET", "/instructor/courses", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, envelope := doJSON(t, app, "POST", "/instructor/courses", instructorToken, fiber.Map{
		"title":       "Databases",
		"code":        "DB-301",
		"description": "Relational modeling and SQL",
		"term":        "FALL-2026",
	})
	require.Equal(t, fiber.StatusCreated, code)
	created := envelope["data"].(map[string]interface{})
	assert.Equal(t, "DRAFT", created["status"])
	courseID := uint(created["ID"].(float64))

	// Publishing flips a draft to active
	code, envelope = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d", courseID), instructorToken, fiber.Map{
		"is_published": true,
	})
	require.Equal(t, fiber.StatusOK, code)
	updated := envelope["data"].(map[string]interface{})
	assert.Equal(t, "ACTIVE", updated["status"])
	assert.Equal(t, true, updated["is_published"])

	// Another instructor cannot touch it
	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d", courseID), otherToken, fiber.Map{
		"title": "Hijacked",
	})
	assert.Equal(t, fiber.StatusForbidden, code)

	// Soft delete hides it from the owner's list
	code, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/instructor/courses/%d", courseID), instructorToken, nil)
	require.Equal(t, fiber.StatusOK, code)

	var course models.Course
	require.NoError(t, database.Database.Db.Unscoped().Where("id = ?", courseID).First(&course).Error)
	assert.True(t, course.IsDeleted)
	assert.False(t, course.IsPublished)
}

func TestContentLifecycle(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	instructor, instructorToken := createUser(t, "Dr. Varga", models.RoleInstructor)
	_, otherToken := createUser(t, "Dr. Kemp", models.RoleInstructor)
	course := createCourse(t, instructor.ID, "Linguistics")

	code, envelope := doJSON(t, app, "POST", fmt.Sprintf("/instructor/courses/%d/content", course.ID), instructorToken, fiber.Map{
		"title":        "Week 1 notes",
		"content_type": "TEXT",
		"body":         "Phonemes and morphemes.",
	})
	require.Equal(t, fiber.StatusCreated, code)
	contentID := uint(envelope["data"].(map[string]interface{})["ID"].(float64))

	code, envelope = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/content/%d", course.ID, contentID), instructorToken, fiber.Map{
		"title":        "Week 1 notes (revised)",
		"is_published": true,
	})
	require.Equal(t, fiber.StatusOK, code)
	updated := envelope["data"].(map[string]interface{})
	assert.Equal(t, "Week 1 notes (revised)", updated["title"])
	assert.Equal(t, true, updated["is_published"])

	// Bad type enum is a validation error
	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/content/%d", course.ID, contentID), instructorToken, fiber.Map{
		"content_type": "PODCAST",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	// Other instructors cannot edit or delete
	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/content/%d", course.ID, contentID), otherToken, fiber.Map{
		"title": "Hijacked",
	})
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/instructor/courses/%d/content/%d", course.ID, contentID), instructorToken, nil)
	require.Equal(t, fiber.StatusOK, code)

	var content models.Content
	require.NoError(t, db.Where("id = ?", contentID).First(&content).Error)
	assert.True(t, content.IsDeleted)

	// Deleted content is gone for further edits
	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/content/%d", course.ID, contentID), instructorToken, fiber.Map{
		"title": "Back from the dead",
	})
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestAnnouncementLifecycle(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	instructor, instructorToken := createUser(t, "Dr. Bell", models.RoleInstructor)
	_, otherToken := createUser(t, "Dr. Cho", models.RoleInstructor)
	course := createCourse(t, instructor.ID, "Astronomy")

	code, envelope := doJSON(t, app, "POST", fmt.Sprintf("/instructor/courses/%d/announcements", course.ID), instructorToken, fiber.Map{
		"title": "Exam moved",
		"body":  "The midterm is now on Friday.",
	})
	require.Equal(t, fiber.StatusCreated, code)
	announcementID := uint(envelope["data"].(map[string]interface{})["ID"].(float64))

	code, envelope = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/announcements/%d", course.ID, announcementID), instructorToken, fiber.Map{
		"body":      "The midterm is now on Friday at noon.",
		"is_pinned": true,
	})
	require.Equal(t, fiber.StatusOK, code)
	updated := envelope["data"].(map[string]interface{})
	assert.Equal(t, "The midterm is now on Friday at noon.", updated["body"])
	assert.Equal(t, true, updated["is_pinned"])

	code, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/instructor/courses/%d/announcements/%d", course.ID, announcementID), otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/instructor/courses/%d/announcements/%d", course.ID, announcementID), instructorToken, nil)
	require.Equal(t, fiber.StatusOK, code)

	var announcement models.Announcement
	require.NoError(t, db.Where("id = ?", announcementID).First(&announcement).Error)
	assert.True(t, announcement.IsDeleted)
}

func TestGradebook(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	instructor, instructorToken := createUser(t, "Dr. Mehta", models.RoleInstructor)
	alice, _ := createUser(t, "Alice Grant", models.RoleStudent)
	bob, _ := createUser(t, "Bob Finch", models.RoleStudent)
	course := createCourse(t, instructor.ID, "Statistics")
	enroll(t, alice.ID, course.ID)
	enroll(t, bob.ID, course.ID)

	code, envelope := doJSON(t, app, "POST", fmt.Sprintf("/instructor/courses/%d/assignments", course.ID), instructorToken, fiber.Map{
		"title":        "Problem Set 1",
		"max_points":   100,
		"weight":       1,
		"is_published": true,
	})
	require.Equal(t, fiber.StatusCreated, code)
	assignmentID := uint(envelope["data"].(map[string]interface{})["ID"].(float64))

	// Alice submits, Bob does not
	require.NoError(t, db.Create(&models.Submission{
		AssignmentID: assignmentID,
		StudentID:    alice.ID,
		Text:         "my answers",
		SubmittedAt:  time.Now(),
	}).Error)

	code, envelope = doJSON(t, app, "GET", fmt.Sprintf("/instructor/courses/%d/gradebook", course.ID), instructorToken, nil)
	require.Equal(t, fiber.StatusOK, code)

	rows := envelope["data"].(map[string]interface{})["rows"].([]interface{})
	require.Len(t, rows, 2)
	statuses := map[uint]string{}
	for _, r := range rows {
		row := r.(map[string]interface{})
		cell := row["cells"].([]interface{})[0].(map[string]interface{})
		statuses[uint(row["student_id"].(float64))] = cell["status"].(string)
	}
	assert.Equal(t, "SUBMITTED", statuses[alice.ID])
	assert.Equal(t, "MISSING", statuses[bob.ID])

	// Scores above max points are rejected
	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/grades", course.ID), instructorToken, fiber.Map{
		"assignment_id": assignmentID,
		"student_id":    alice.ID,
		"score":         150,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/grades", course.ID), instructorToken, fiber.Map{
		"assignment_id": assignmentID,
		"student_id":    alice.ID,
		"score":         70,
		"feedback":      "Decent start.",
	})
	require.Equal(t, fiber.StatusOK, code)

	// Regrade replaces the same row, last write wins
	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/grades", course.ID), instructorToken, fiber.Map{
		"assignment_id": assignmentID,
		"student_id":    alice.ID,
		"score":         85,
		"feedback":      "Better after regrade.",
	})
	require.Equal(t, fiber.StatusOK, code)

	var grades []models.Grade
	require.NoError(t, db.Where("assignment_id = ? AND student_id = ? AND is_deleted = ?",
		assignmentID, alice.ID, false).Find(&grades).Error)
	require.Len(t, grades, 1)
	assert.Equal(t, 85.0, grades[0].Score)
	assert.Equal(t, "Better after regrade.", grades[0].Feedback)
	assert.Equal(t, instructor.ID, grades[0].GradedByID)
	require.NotNil(t, grades[0].SubmissionID)

	// GRADED filter keeps only Alice
	code, envelope = doJSON(t, app, "GET", fmt.Sprintf("/instructor/courses/%d/gradebook?status=GRADED", course.ID), instructorToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	rows = envelope["data"].(map[string]interface{})["rows"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, float64(alice.ID), row["student_id"])
	assert.InDelta(t, 85.0, row["average"].(float64), 0.001)

	// Search filter matches name substrings
	code, envelope = doJSON(t, app, "GET", fmt.Sprintf("/instructor/courses/%d/gradebook?search=finch", course.ID), instructorToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	rows = envelope["data"].(map[string]interface{})["rows"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, float64(bob.ID), rows[0].(map[string]interface{})["student_id"])

	// Grading a non-enrolled student fails
	outsider, _ := createUser(t, "Eve Marsh", models.RoleStudent)
	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/grades", course.ID), instructorToken, fiber.Map{
		"assignment_id": assignmentID,
		"student_id":    outsider.ID,
		"score":         50,
	})
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestDueDateChangeRearmsReminder(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	instructor, instructorToken := createUser(t, "Dr. Haas", models.RoleInstructor)
	course := createCourse(t, instructor.ID, "Geology")

	dueAt := time.Now().Add(12 * time.Hour)
	remindedAt := time.Now().Add(-time.Hour)
	assignment := models.Assignment{
		CourseID:       course.ID,
		Title:          "Field report",
		DueAt:          &dueAt,
		MaxPoints:      100,
		Weight:         1,
		IsPublished:    true,
		ReminderSentAt: &remindedAt,
	}
	require.NoError(t, db.Create(&assignment).Error)

	newDue := time.Now().Add(96 * time.Hour).UTC().Format(time.RFC3339)
	code, _ := doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/assignments/%d", course.ID, assignment.ID), instructorToken, fiber.Map{
		"due_at": newDue,
	})
	require.Equal(t, fiber.StatusOK, code)

	var reloaded models.Assignment
	require.NoError(t, db.First(&reloaded, assignment.ID).Error)
	assert.Nil(t, reloaded.ReminderSentAt, "moving the due date must re-arm the reminder")

	// Updates that leave the due date alone keep the mark
	require.NoError(t, db.Model(&models.Assignment{}).Where("id = ?", assignment.ID).
		Update("reminder_sent_at", remindedAt).Error)

	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/assignments/%d", course.ID, assignment.ID), instructorToken, fiber.Map{
		"title": "Field report (final)",
	})
	require.Equal(t, fiber.StatusOK, code)

	require.NoError(t, db.First(&reloaded, assignment.ID).Error)
	assert.NotNil(t, reloaded.ReminderSentAt)
}

func TestGradebookCSVExport(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	instructor, instructorToken := createUser(t, "Dr. Laurent", models.RoleInstructor)
	student, _ := createUser(t, "Casey Reed", models.RoleStudent)
	course := createCourse(t, instructor.ID, "Chemistry")
	enroll(t, student.ID, course.ID)

	assignment := models.Assignment{
		CourseID:    course.ID,
		Title:       "Midterm",
		MaxPoints:   50,
		Weight:      1,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&assignment).Error)
	require.NoError(t, db.Create(&models.Grade{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		Score:        42,
		GradedByID:   instructor.ID,
		GradedAt:     time.Now(),
	}).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/instructor/courses/%d/gradebook/export", course.ID), nil)
	req.Header.Set("Authorization", "Bearer "+instructorToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), fmt.Sprintf("gradebook-%s.csv", course.Code))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Student,Email,Midterm (50 pts),Average %", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Casey Reed")
	assert.Contains(t, lines[1], "42.0")
	assert.Contains(t, lines[1], "84.0")
}

func TestFeedbackTemplates(t *testing.T) {
	app := setupApp(t)

	instructor, instructorToken := createUser(t, "Dr. Ito", models.RoleInstructor)
	_, otherToken := createUser(t, "Dr. Webb", models.RoleInstructor)
	student, _ := createUser(t, "Maria Lopez", models.RoleStudent)
	course := createCourse(t, instructor.ID, "Biology")
	enroll(t, student.ID, course.ID)

	assignment := models.Assignment{
		CourseID:    course.ID,
		Title:       "Lab Report",
		MaxPoints:   100,
		Weight:      1,
		IsPublished: true,
	}
	require.NoError(t, database.Database.Db.Create(&assignment).Error)

	code, envelope := doJSON(t, app, "POST", "/instructor/templates", instructorToken, fiber.Map{
		"name": "Standard praise",
		"body": "Great work {{student_name}}, you scored {{score}}/{{max_points}} on {{assignment_title}}.",
	})
	require.Equal(t, fiber.StatusCreated, code)
	templateID := uint(envelope["data"].(map[string]interface{})["ID"].(float64))

	// Preview renders with sample data
	code, envelope = doJSON(t, app, "POST", "/instructor/templates/preview", instructorToken, fiber.Map{
		"body": "Hi {{student_name}}!",
	})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Hi Alex Johnson!", envelope["data"].(map[string]interface{})["rendered"])

	// Templates are private to their owner
	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/templates/%d", templateID), otherToken, fiber.Map{
		"name": "Stolen",
		"body": "x",
	})
	assert.Equal(t, fiber.StatusNotFound, code)

	// Applying the template substitutes real values into the feedback
	code, _ = doJSON(t, app, "PUT", fmt.Sprintf("/instructor/courses/%d/grades", course.ID), instructorToken, fiber.Map{
		"assignment_id":        assignment.ID,
		"student_id":           student.ID,
		"score":                87.5,
		"feedback_template_id": templateID,
	})
	require.Equal(t, fiber.StatusOK, code)

	var grade models.Grade
	require.NoError(t, database.Database.Db.
		Where("assignment_id = ? AND student_id = ?", assignment.ID, student.ID).First(&grade).Error)
	assert.Equal(t, "Great work Maria Lopez, you scored 87.5/100 on Lab Report.", grade.Feedback)
}

package courseController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseRoutes "lms/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var emailSeq int

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	os.Setenv("SALT_ROUND", "4")
	config.LoadConfig()
	if database.Database.Db == nil {
		database.ConnectTestDb()
	}
	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func createUser(t *testing.T, name, role string) (models.User, string) {
	t.Helper()
	emailSeq++
	user := models.User{
		Name:            name,
		Email:           fmt.Sprintf("user%d@example.com", emailSeq),
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

func createCourse(t *testing.T, instructorID uint, title, term string, published bool) models.Course {
	t.Helper()
	status := models.CourseDraft
	if published {
		status = models.CourseActive
	}
	course := models.Course{
		Title:        title,
		Code:         fmt.Sprintf("C-%d", emailSeq),
		Description:  "A test course",
		InstructorID: instructorID,
		Term:         term,
		Credits:      3,
		Status:       status,
		IsPublished:  published,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
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

func TestEnrollment(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "Dr. Chen", models.RoleInstructor)
	student, studentToken := createUser(t, "Sam Ellis", models.RoleStudent)
	course := createCourse(t, instructor.ID, "Algorithms", "FALL-2026", true)

	path := fmt.Sprintf("/course/%d/enroll", course.ID)

	// Unauthenticated requests are rejected
	code, _ := doJSON(t, app, "POST", path, "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = doJSON(t, app, "POST", path, studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	// Double enrollment conflicts
	code, _ = doJSON(t, app, "POST", path, studentToken, nil)
	assert.Equal(t, fiber.StatusConflict, code)

	// Enrollment is visible in the detail view
	code, envelope := doJSON(t, app, "GET", fmt.Sprintf("/course/%d", course.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_enrolled"])
	assert.Equal(t, float64(1), data["enrolled_count"])

	// Drop, then re-enroll
	code, _ = doJSON(t, app, "DELETE", path, studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = doJSON(t, app, "POST", path, studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	var count int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count, "re-enroll should reuse the enrollment row")
}

func TestEnrollmentRoleAndVisibility(t *testing.T) {
	app := setupApp(t)

	instructor, instructorToken := createUser(t, "Dr. Osei", models.RoleInstructor)
	_, studentToken := createUser(t, "Lee Quinn", models.RoleStudent)
	draft := createCourse(t, instructor.ID, "Unreleased Course", "FALL-2026", false)
	published := createCourse(t, instructor.ID, "Released Course", "FALL-2026", true)

	// Instructors cannot enroll
	code, _ := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", published.ID), instructorToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	// Draft courses are not enrollable or visible
	code, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/enroll", draft.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = doJSON(t, app, "GET", fmt.Sprintf("/course/%d", draft.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestCatalogFilters(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "Dr. Ueda", models.RoleInstructor)
	_, studentToken := createUser(t, "Noa Levi", models.RoleStudent)
	createCourse(t, instructor.ID, "Quantum Mechanics", "SPRING-2027", true)
	createCourse(t, instructor.ID, "Quantum Computing", "FALL-2026", true)

	code, envelope := doJSON(t, app, "GET", "/course/list?search=Quantum&term=SPRING-2027", studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)

	data := envelope["data"].(map[string]interface{})
	courses := data["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Quantum Mechanics", courses[0].(map[string]interface{})["title"])

	// Bad pagination is a validation error
	code, _ = doJSON(t, app, "GET", "/course/list?page=0", studentToken, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}

func TestDiscussions(t *testing.T) {
	app := setupApp(t)

	instructor, _ := createUser(t, "Dr. Silva", models.RoleInstructor)
	student, studentToken := createUser(t, "Ira Wolf", models.RoleStudent)
	_, outsiderToken := createUser(t, "Out Sider", models.RoleStudent)
	course := createCourse(t, instructor.ID, "Philosophy 101", "FALL-2026", true)

	require.NoError(t, database.Database.Db.Create(&models.Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
		Status:    models.EnrollmentEnrolled,
	}).Error)

	// Non-enrolled students cannot post
	code, _ := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/discussions", course.ID), outsiderToken, fiber.Map{
		"title": "Hello?",
		"body":  "Can I post here?",
	})
	assert.Equal(t, fiber.StatusForbidden, code)

	code, envelope := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/discussions", course.ID), studentToken, fiber.Map{
		"title": "Week 1 reading",
		"body":  "What did everyone think of the allegory of the cave?",
	})
	require.Equal(t, fiber.StatusCreated, code)
	discussionID := uint(envelope["data"].(map[string]interface{})["ID"].(float64))

	code, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/discussions/%d/replies", discussionID), studentToken, fiber.Map{
		"body": "Loved it.",
	})
	assert.Equal(t, fiber.StatusCreated, code)

	// Locked threads refuse replies
	require.NoError(t, database.Database.Db.Model(&models.Discussion{}).
		Where("id = ?", discussionID).Update("is_locked", true).Error)

	code, _ = doJSON(t, app, "POST", fmt.Sprintf("/course/discussions/%d/replies", discussionID), studentToken, fiber.Map{
		"body": "One more thing...",
	})
	assert.Equal(t, fiber.StatusForbidden, code)

	// Thread and existing replies still readable
	code, envelope = doJSON(t, app, "GET", fmt.Sprintf("/course/discussions/%d", discussionID), studentToken, nil)
	assert.Equal(t, fiber.StatusOK, code)
	replies := envelope["data"].(map[string]interface{})["replies"].([]interface{})
	assert.Len(t, replies, 1)
}

func TestDiscussionDeletion(t *testing.T) {
	app := setupApp(t)
	db := database.Database.Db

	instructor, instructorToken := createUser(t, "Dr. Okafor", models.RoleInstructor)
	author, authorToken := createUser(t, "Jo Byrne", models.RoleStudent)
	peer, peerToken := createUser(t, "Ada Kent", models.RoleStudent)
	course := createCourse(t, instructor.ID, "Ethics", "FALL-2026", true)

	for _, id := range []uint{author.ID, peer.ID} {
		require.NoError(t, db.Create(&models.Enrollment{
			StudentID: id,
			CourseID:  course.ID,
			Status:    models.EnrollmentEnrolled,
		}).Error)
	}

	code, envelope := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/discussions", course.ID), authorToken, fiber.Map{
		"title": "Trolley problems",
		"body":  "Is there ever a right answer?",
	})
	require.Equal(t, fiber.StatusCreated, code)
	discussionID := uint(envelope["data"].(map[string]interface{})["ID"].(float64))

	code, envelope = doJSON(t, app, "POST", fmt.Sprintf("/course/discussions/%d/replies", discussionID), authorToken, fiber.Map{
		"body": "I think not.",
	})
	require.Equal(t, fiber.StatusCreated, code)
	replyID := uint(envelope["data"].(map[string]interface{})["ID"].(float64))

	// Other students cannot remove someone else's post
	code, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/course/discussions/%d/replies/%d", discussionID, replyID), peerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	// Authors can remove their own reply
	code, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/course/discussions/%d/replies/%d", discussionID, replyID), authorToken, nil)
	require.Equal(t, fiber.StatusOK, code)

	var reply models.DiscussionReply
	require.NoError(t, db.Where("id = ?", replyID).First(&reply).Error)
	assert.True(t, reply.IsDeleted)

	code, envelope = doJSON(t, app, "GET", fmt.Sprintf("/course/discussions/%d", discussionID), authorToken, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Empty(t, envelope["data"].(map[string]interface{})["replies"])

	// Non-authors cannot remove the thread either
	code, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/course/discussions/%d", discussionID), peerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	// The course instructor can moderate away any thread
	code, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/course/discussions/%d", discussionID), instructorToken, nil)
	require.Equal(t, fiber.StatusOK, code)

	code, _ = doJSON(t, app, "GET", fmt.Sprintf("/course/discussions/%d", discussionID), authorToken, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}

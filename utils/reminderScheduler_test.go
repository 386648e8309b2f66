package utils

import (
	"fmt"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seq int

func setupDb(t *testing.T) {
	t.Helper()
	config.LoadConfig()
	if database.Database.Db == nil {
		database.ConnectTestDb()
	}
}

func seedUser(t *testing.T, role string) models.User {
	t.Helper()
	seq++
	user := models.User{
		Name:            fmt.Sprintf("Job User %d", seq),
		Email:           fmt.Sprintf("job%d@example.com", seq),
		Password:        "x",
		Role:            role,
		IsActive:        true,
		IsEmailVerified: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, instructorID uint) models.Course {
	t.Helper()
	seq++
	course := models.Course{
		Title:        fmt.Sprintf("Job Course %d", seq),
		Code:         fmt.Sprintf("JOB-%d", seq),
		Description:  "Course for scheduler tests",
		InstructorID: instructorID,
		Term:         "FALL-2026",
		Credits:      3,
		Status:       models.CourseActive,
		IsPublished:  true,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func seedEnrollment(t *testing.T, studentID, courseID uint) models.Enrollment {
	t.Helper()
	enrollment := models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Status:    models.EnrollmentEnrolled,
	}
	require.NoError(t, database.Database.Db.Create(&enrollment).Error)
	return enrollment
}

func TestProcessDueReminders(t *testing.T) {
	setupDb(t)
	db := database.Database.Db

	instructor := seedUser(t, models.RoleInstructor)
	student := seedUser(t, models.RoleStudent)
	course := seedCourse(t, instructor.ID)
	seedEnrollment(t, student.ID, course.ID)

	dueSoon := time.Now().Add(2 * time.Hour)
	dueLater := time.Now().Add(48 * time.Hour)

	withinHorizon := models.Assignment{
		CourseID: course.ID, Title: "Due tomorrow", DueAt: &dueSoon,
		MaxPoints: 100, Weight: 1, IsPublished: true,
	}
	require.NoError(t, db.Create(&withinHorizon).Error)

	outsideHorizon := models.Assignment{
		CourseID: course.ID, Title: "Due next week", DueAt: &dueLater,
		MaxPoints: 100, Weight: 1, IsPublished: true,
	}
	require.NoError(t, db.Create(&outsideHorizon).Error)

	unpublished := models.Assignment{
		CourseID: course.ID, Title: "Unreleased", DueAt: &dueSoon,
		MaxPoints: 100, Weight: 1,
	}
	require.NoError(t, db.Create(&unpublished).Error)

	processDueReminders()

	var reloaded models.Assignment
	require.NoError(t, db.First(&reloaded, withinHorizon.ID).Error)
	require.NotNil(t, reloaded.ReminderSentAt, "due-soon assignment should be marked")
	firstMark := *reloaded.ReminderSentAt

	reloaded = models.Assignment{}
	require.NoError(t, db.First(&reloaded, outsideHorizon.ID).Error)
	assert.Nil(t, reloaded.ReminderSentAt, "assignments outside the horizon stay unmarked")

	reloaded = models.Assignment{}
	require.NoError(t, db.First(&reloaded, unpublished.ID).Error)
	assert.Nil(t, reloaded.ReminderSentAt, "unpublished assignments stay unmarked")

	// A second run must not pick the assignment up again
	processDueReminders()

	reloaded = models.Assignment{}
	require.NoError(t, db.First(&reloaded, withinHorizon.ID).Error)
	require.NotNil(t, reloaded.ReminderSentAt)
	assert.True(t, firstMark.Equal(*reloaded.ReminderSentAt), "sent-mark must not change on reruns")
}

func TestProcessCompletedEnrollments(t *testing.T) {
	setupDb(t)
	db := database.Database.Db

	instructor := seedUser(t, models.RoleInstructor)
	done := seedUser(t, models.RoleStudent)
	partial := seedUser(t, models.RoleStudent)
	idle := seedUser(t, models.RoleStudent)

	course := seedCourse(t, instructor.ID)
	doneEnrollment := seedEnrollment(t, done.ID, course.ID)
	partialEnrollment := seedEnrollment(t, partial.ID, course.ID)

	emptyCourse := seedCourse(t, instructor.ID)
	idleEnrollment := seedEnrollment(t, idle.ID, emptyCourse.ID)

	first := models.Assignment{
		CourseID: course.ID, Title: "First", MaxPoints: 100, Weight: 1, IsPublished: true,
	}
	require.NoError(t, db.Create(&first).Error)
	second := models.Assignment{
		CourseID: course.ID, Title: "Second", MaxPoints: 100, Weight: 1, IsPublished: true,
	}
	require.NoError(t, db.Create(&second).Error)

	now := time.Now()
	for _, assignmentID := range []uint{first.ID, second.ID} {
		require.NoError(t, db.Create(&models.Grade{
			AssignmentID: assignmentID, StudentID: done.ID, Score: 90,
			GradedByID: instructor.ID, GradedAt: now,
		}).Error)
	}
	require.NoError(t, db.Create(&models.Grade{
		AssignmentID: first.ID, StudentID: partial.ID, Score: 80,
		GradedByID: instructor.ID, GradedAt: now,
	}).Error)

	processCompletedEnrollments()

	var reloaded models.Enrollment
	require.NoError(t, db.First(&reloaded, doneEnrollment.ID).Error)
	assert.Equal(t, models.EnrollmentCompleted, reloaded.Status)
	assert.NotNil(t, reloaded.CompletedAt)

	reloaded = models.Enrollment{}
	require.NoError(t, db.First(&reloaded, partialEnrollment.ID).Error)
	assert.Equal(t, models.EnrollmentEnrolled, reloaded.Status, "one ungraded assignment keeps the enrollment open")

	reloaded = models.Enrollment{}
	require.NoError(t, db.First(&reloaded, idleEnrollment.ID).Error)
	assert.Equal(t, models.EnrollmentEnrolled, reloaded.Status, "courses without assignments never complete")
}

package utils

import (
	"fmt"
	"log"
	"time"

	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[LMS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// processDueReminders emails enrolled students whose work is due within 24h
// and who have not submitted yet. Each assignment is only processed once,
// tracked via ReminderSentAt.
func processDueReminders() {
	db := database.Database.Db
	now := time.Now()
	horizon := now.Add(24 * time.Hour)

	var assignments []models.Assignment
	if err := db.Where("is_published = true AND is_deleted = false AND reminder_sent_at IS NULL AND due_at IS NOT NULL AND due_at > ? AND due_at <= ?",
		now, horizon).Find(&assignments).Error; err != nil {
		logScheduler("Error fetching due assignments: " + err.Error())
		return
	}

	for _, assignment := range assignments {
		var course models.Course
		if err := db.Where("id = ? AND is_deleted = false", assignment.CourseID).First(&course).Error; err != nil {
			continue
		}

		var enrollments []models.Enrollment
		if err := db.Where("course_id = ? AND status = ? AND is_deleted = false",
			assignment.CourseID, models.EnrollmentEnrolled).Find(&enrollments).Error; err != nil {
			logScheduler("Error fetching enrollments: " + err.Error())
			continue
		}

		reminded := 0
		for _, enrollment := range enrollments {
			var submitted int64
			db.Model(&models.Submission{}).
				Where("assignment_id = ? AND student_id = ? AND is_deleted = false", assignment.ID, enrollment.StudentID).
				Count(&submitted)
			if submitted > 0 {
				continue
			}

			var student models.User
			if err := db.Where("id = ? AND is_deleted = false AND is_active = true", enrollment.StudentID).First(&student).Error; err != nil {
				continue
			}

			SendDueReminderEmail(student.Email, student.Name, course.Title, assignment.Title,
				assignment.DueAt.Format("Jan 2, 2006 15:04 MST"))
			reminded++
		}

		db.Model(&models.Assignment{}).Where("id = ?", assignment.ID).Update("reminder_sent_at", now)
		logScheduler(fmt.Sprintf("Assignment %d: reminded %d students", assignment.ID, reminded))
	}
}

// processCompletedEnrollments marks enrollments COMPLETED once every published
// assignment of the course has a grade for the student.
func processCompletedEnrollments() {
	db := database.Database.Db
	now := time.Now()

	var enrollments []models.Enrollment
	if err := db.Where("status = ? AND is_deleted = false", models.EnrollmentEnrolled).Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching enrollments: " + err.Error())
		return
	}

	for _, enrollment := range enrollments {
		var assignmentIDs []uint
		db.Model(&models.Assignment{}).
			Where("course_id = ? AND is_published = true AND is_deleted = false", enrollment.CourseID).
			Pluck("id", &assignmentIDs)
		if len(assignmentIDs) == 0 {
			continue
		}

		var graded int64
		db.Model(&models.Grade{}).
			Where("assignment_id IN ? AND student_id = ? AND is_deleted = false", assignmentIDs, enrollment.StudentID).
			Count(&graded)

		if graded >= int64(len(assignmentIDs)) {
			enrollment.Status = models.EnrollmentCompleted
			enrollment.CompletedAt = &now
			db.Save(&enrollment)
			logScheduler(fmt.Sprintf("Enrollment %d marked COMPLETED", enrollment.ID))
		}
	}
}

// StartScheduler launches the background jobs. Call once from main.
func StartScheduler() *cron.Cron {
	c := cron.New()

	// Hourly due-date reminders
	if _, err := c.AddFunc("@hourly", processDueReminders); err != nil {
		log.Fatalf("Failed to register reminder job: %v", err)
	}

	// Nightly completion sweep
	if _, err := c.AddFunc("0 2 * * *", processCompletedEnrollments); err != nil {
		log.Fatalf("Failed to register completion job: %v", err)
	}

	c.Start()
	logScheduler("Scheduler started")
	return c
}

package studentController

import (
	"encoding/json"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// enrolledIn reports whether the student has a live enrollment in the course
func enrolledIn(db *gorm.DB, studentID uint, courseID uint) bool {
	var count int64
	db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND status <> ? AND is_deleted = ?",
			studentID, courseID, models.EnrollmentDropped, false).
		Count(&count)
	return count > 0
}

// GetCourseAssignments lists published assignments of an enrolled course
// together with the student's own submission and grade status
func GetCourseAssignments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	if !enrolledIn(db, userID, uint(courseID)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var assignments []models.Assignment
	if err := db.Where("course_id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).
		Order("due_at asc, created_at asc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	type assignmentStatus struct {
		models.Assignment
		Submitted bool     `json:"submitted"`
		IsLate    bool     `json:"is_late"`
		Score     *float64 `json:"score"`
		Feedback  string   `json:"feedback"`
	}

	result := make([]assignmentStatus, len(assignments))
	for i, assignment := range assignments {
		status := assignmentStatus{Assignment: assignment}

		var submission models.Submission
		if err := db.Where("assignment_id = ? AND student_id = ? AND is_deleted = ?",
			assignment.ID, userID, false).First(&submission).Error; err == nil {
			status.Submitted = true
			status.IsLate = submission.IsLate
		}

		var grade models.Grade
		if err := db.Where("assignment_id = ? AND student_id = ? AND is_deleted = ?",
			assignment.ID, userID, false).First(&grade).Error; err == nil {
			score := grade.Score
			status.Score = &score
			status.Feedback = grade.Feedback
		}

		result[i] = status
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": result,
	})
}

// SubmitAssignment creates or replaces the student's submission. Uploaded
// files are stored under the configured upload dir; the prior submission's
// text and attachments are overwritten.
func SubmitAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)
	text := c.Locals("submissionText").(string)
	db := database.Database.Db

	var assignment models.Assignment
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", assignmentID, true, false).
		First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	if !enrolledIn(db, userID, assignment.CourseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	now := time.Now()
	isLate := assignment.DueAt != nil && now.After(*assignment.DueAt)
	if isLate && !assignment.AllowLate {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The due date has passed and late submissions are not allowed!", nil)
	}

	// Store uploaded files
	var fileURLs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["files"] {
			path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
			}
			fileURLs = append(fileURLs, utils.GetFileURL(path))
		}
	}

	attachments, err := json.Marshal(fileURLs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process attachments!", nil)
	}

	// Resubmission replaces the previous one, last write wins
	var submission models.Submission
	if err := db.Where("assignment_id = ? AND student_id = ? AND is_deleted = ?",
		assignmentID, userID, false).First(&submission).Error; err == nil {
		submission.Text = text
		submission.Attachments = datatypes.JSON(attachments)
		submission.SubmittedAt = now
		submission.IsLate = isLate
		if err := db.Save(&submission).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment resubmitted successfully!", submission)
	}

	submission = models.Submission{
		AssignmentID: uint(assignmentID),
		StudentID:    userID,
		Text:         text,
		Attachments:  datatypes.JSON(attachments),
		SubmittedAt:  now,
		IsLate:       isLate,
	}

	if err := db.Create(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

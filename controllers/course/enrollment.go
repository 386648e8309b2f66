package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Check if course exists and is open for enrollment
	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ? AND status = ?",
		courseID, false, true, models.CourseActive).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not open for enrollment!", nil)
	}

	// Check if user is already enrolled
	var existing models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existing).Error; err == nil {
		if existing.Status != models.EnrollmentDropped {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		}
		// Re-enroll after a drop
		existing.Status = models.EnrollmentEnrolled
		existing.CompletedAt = nil
		if err := db.Save(&existing).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
		utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", existing)
	}

	enrollment := models.Enrollment{
		StudentID: userID,
		CourseID:  uint(courseID),
		Status:    models.EnrollmentEnrolled,
	}

	tx := db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// DropCourse marks the enrollment DROPPED
func DropCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, models.EnrollmentEnrolled, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active enrollment found!", nil)
	}

	enrollment.Status = models.EnrollmentDropped
	if err := db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to drop course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course dropped successfully!", enrollment)
}

// GetMyCourses lists the student's enrollments with course details
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("student_id = ? AND status <> ? AND is_deleted = ?", userID, models.EnrollmentDropped, false).
		Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}

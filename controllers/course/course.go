package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// isEnrolled reports whether the student has a live enrollment in the course
func isEnrolled(db *gorm.DB, studentID uint, courseID uint) bool {
	var count int64
	db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND status <> ? AND is_deleted = ?",
			studentID, courseID, models.EnrollmentDropped, false).
		Count(&count)
	return count > 0
}

// GetAllCourses lists published courses with pagination and optional
// search/term filters
func GetAllCourses(c *fiber.Ctx) error {
	query, ok := c.Locals("validatedList").(*courseValidators.ListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db.Model(&models.Course{}).
		Where("is_published = ? AND is_deleted = ? AND status = ?", true, false, models.CourseActive)

	if query.Search != "" {
		like := "%" + query.Search + "%"
		db = db.Where("title LIKE ? OR code LIKE ?", like, like)
	}
	if query.Term != "" {
		db = db.Where("term = ?", query.Term)
	}

	var total int64
	db.Count(&total)

	offset := (query.Page - 1) * query.Limit

	var courses []models.Course
	if err := db.Offset(offset).Limit(query.Limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  query.Page,
			"limit": query.Limit,
		},
	})
}

// GetCourseDetails returns one published course with instructor and counts
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var instructor models.User
	db.Select("id, name, email").Where("id = ?", course.InstructorID).First(&instructor)

	var enrolledCount int64
	db.Model(&models.Enrollment{}).
		Where("course_id = ? AND status = ? AND is_deleted = ?", course.ID, models.EnrollmentEnrolled, false).
		Count(&enrolledCount)

	var assignmentCount int64
	db.Model(&models.Assignment{}).
		Where("course_id = ? AND is_published = ? AND is_deleted = ?", course.ID, true, false).
		Count(&assignmentCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":           course,
		"instructor_name":  instructor.Name,
		"enrolled_count":   enrolledCount,
		"assignment_count": assignmentCount,
		"is_enrolled":      isEnrolled(db, userID, course.ID),
	})
}

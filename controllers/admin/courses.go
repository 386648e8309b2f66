package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists courses across all statuses (admin view)
func GetAllCourses(c *fiber.Ctx) error {
	query, ok := c.Locals("validatedList").(*courseValidators.ListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db.Model(&models.Course{}).Where("is_deleted = ?", false)

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

// ArchiveCourse moves a course to ARCHIVED and unpublishes it
func ArchiveCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Status = models.CourseArchived
	course.IsPublished = false
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to archive course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course archived successfully!", course)
}

// RestoreCourse moves an archived course back to ACTIVE
func RestoreCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Status != models.CourseArchived {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is not archived!", nil)
	}

	course.Status = models.CourseActive
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to restore course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course restored successfully!", course)
}

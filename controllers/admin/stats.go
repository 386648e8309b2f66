package adminController

import (
	"sort"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// GetDetailedStats aggregates platform-wide counts for the admin dashboard.
// The route is wrapped in the response cache middleware, so repeated loads
// within the TTL are served with X-Cache: HIT.
func GetDetailedStats(c *fiber.Ctx) error {
	db := database.Database.Db

	usersByRole := fiber.Map{}
	for _, role := range []string{models.RoleStudent, models.RoleInstructor, models.RoleAdmin} {
		var count int64
		db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", role, false).Count(&count)
		usersByRole[role] = count
	}

	coursesByStatus := fiber.Map{}
	for _, status := range []string{models.CourseDraft, models.CourseActive, models.CourseArchived} {
		var count int64
		db.Model(&models.Course{}).Where("status = ? AND is_deleted = ?", status, false).Count(&count)
		coursesByStatus[status] = count
	}

	var totalEnrollments, totalSubmissions, totalGrades int64
	db.Model(&models.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&models.Submission{}).Where("is_deleted = ?", false).Count(&totalSubmissions)
	db.Model(&models.Grade{}).Where("is_deleted = ?", false).Count(&totalGrades)

	// Signups this calendar month
	monthStart := now.BeginningOfMonth()
	monthEnd := now.EndOfMonth()
	var signupsThisMonth int64
	db.Model(&models.User{}).
		Where("created_at BETWEEN ? AND ? AND is_deleted = ?", monthStart, monthEnd, false).
		Count(&signupsThisMonth)

	// Top courses by live enrollment
	type topCourse struct {
		CourseID uint   `json:"course_id"`
		Title    string `json:"title"`
		Enrolled int64  `json:"enrolled"`
	}

	var courses []models.Course
	db.Where("is_deleted = ? AND is_published = ?", false, true).Find(&courses)

	top := make([]topCourse, 0, len(courses))
	for _, course := range courses {
		var enrolled int64
		db.Model(&models.Enrollment{}).
			Where("course_id = ? AND status = ? AND is_deleted = ?", course.ID, models.EnrollmentEnrolled, false).
			Count(&enrolled)
		top = append(top, topCourse{CourseID: course.ID, Title: course.Title, Enrolled: enrolled})
	}
	sort.Slice(top, func(i, j int) bool { return top[i].Enrolled > top[j].Enrolled })
	if len(top) > 5 {
		top = top[:5]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"users_by_role":      usersByRole,
		"courses_by_status":  coursesByStatus,
		"total_enrollments":  totalEnrollments,
		"total_submissions":  totalSubmissions,
		"total_grades":       totalGrades,
		"signups_this_month": signupsThisMonth,
		"top_courses":        top,
	})
}

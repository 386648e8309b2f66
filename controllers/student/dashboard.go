package studentController

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// CourseResult is one course's standing on the student dashboard
type CourseResult struct {
	CourseID    uint     `json:"course_id"`
	CourseTitle string   `json:"course_title"`
	CourseCode  string   `json:"course_code"`
	Credits     float64  `json:"credits"`
	Status      string   `json:"status"`
	Average     *float64 `json:"average"` // Weighted percent; nil until graded
	GradedCount int      `json:"graded_count"`
	TotalCount  int      `json:"total_count"`
}

// GetDashboard returns per-course averages, overall GPA and upcoming work
func GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("student_id = ? AND status <> ? AND is_deleted = ?",
		userID, models.EnrollmentDropped, false).Preload("Course").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	results := make([]CourseResult, 0, len(enrollments))
	var percents, credits []float64

	for _, enrollment := range enrollments {
		course := enrollment.Course

		var assignments []models.Assignment
		db.Where("course_id = ? AND is_published = ? AND is_deleted = ?", course.ID, true, false).
			Find(&assignments)

		result := CourseResult{
			CourseID:    course.ID,
			CourseTitle: course.Title,
			CourseCode:  course.Code,
			Credits:     course.Credits,
			Status:      enrollment.Status,
			TotalCount:  len(assignments),
		}

		var items []utils.GradedItem
		for _, assignment := range assignments {
			var grade models.Grade
			if err := db.Where("assignment_id = ? AND student_id = ? AND is_deleted = ?",
				assignment.ID, userID, false).First(&grade).Error; err == nil {
				items = append(items, utils.GradedItem{
					Score:     grade.Score,
					MaxPoints: assignment.MaxPoints,
					Weight:    assignment.Weight,
				})
			}
		}
		result.GradedCount = len(items)

		if len(items) > 0 {
			avg := utils.WeightedAverage(items)
			result.Average = &avg
			percents = append(percents, avg)
			credits = append(credits, course.Credits)
		}

		results = append(results, result)
	}

	gpa := utils.GPA(percents, credits)

	// Upcoming assignments due within 7 days, not yet submitted
	type upcomingItem struct {
		AssignmentID uint      `json:"assignment_id"`
		Title        string    `json:"title"`
		CourseTitle  string    `json:"course_title"`
		DueAt        time.Time `json:"due_at"`
	}

	var upcoming []upcomingItem
	now := time.Now()
	horizon := now.Add(7 * 24 * time.Hour)

	for _, enrollment := range enrollments {
		if enrollment.Status != models.EnrollmentEnrolled {
			continue
		}

		var assignments []models.Assignment
		db.Where("course_id = ? AND is_published = ? AND is_deleted = ? AND due_at > ? AND due_at <= ?",
			enrollment.CourseID, true, false, now, horizon).Find(&assignments)

		for _, assignment := range assignments {
			var submitted int64
			db.Model(&models.Submission{}).
				Where("assignment_id = ? AND student_id = ? AND is_deleted = ?", assignment.ID, userID, false).
				Count(&submitted)
			if submitted > 0 {
				continue
			}
			upcoming = append(upcoming, upcomingItem{
				AssignmentID: assignment.ID,
				Title:        assignment.Title,
				CourseTitle:  enrollment.Course.Title,
				DueAt:        *assignment.DueAt,
			})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"courses":  results,
		"gpa":      gpa,
		"upcoming": upcoming,
	})
}

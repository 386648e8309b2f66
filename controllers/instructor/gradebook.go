package instructorController

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	instructorValidators "lms/validators/instructor"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GradebookCell is one student x assignment cell in the grid
type GradebookCell struct {
	AssignmentID uint     `json:"assignment_id"`
	SubmissionID *uint    `json:"submission_id"`
	Score        *float64 `json:"score"`
	Status       string   `json:"status"` // MISSING, SUBMITTED, LATE, GRADED
}

// GradebookRow is one student's row in the grid
type GradebookRow struct {
	StudentID    uint            `json:"student_id"`
	StudentName  string          `json:"student_name"`
	StudentEmail string          `json:"student_email"`
	Cells        []GradebookCell `json:"cells"`
	Average      *float64        `json:"average"` // Weighted percent over graded cells
}

// buildGradebook assembles the grid for a course, honoring the filter
func buildGradebook(db *gorm.DB, course *models.Course, query *instructorValidators.GradebookQuery) ([]models.Assignment, []GradebookRow, error) {
	var assignments []models.Assignment
	if err := db.Where("course_id = ? AND is_published = ? AND is_deleted = ?", course.ID, true, false).
		Order("due_at asc, created_at asc").Find(&assignments).Error; err != nil {
		return nil, nil, err
	}

	enrollDB := db.Model(&models.Enrollment{}).
		Where("course_id = ? AND status <> ? AND is_deleted = ?", course.ID, models.EnrollmentDropped, false)

	var enrollments []models.Enrollment
	if err := enrollDB.Preload("Student").Order("created_at asc").Find(&enrollments).Error; err != nil {
		return nil, nil, err
	}

	rows := make([]GradebookRow, 0, len(enrollments))
	for _, enrollment := range enrollments {
		student := enrollment.Student

		if query != nil && query.Search != "" {
			needle := strings.ToLower(query.Search)
			if !strings.Contains(strings.ToLower(student.Name), needle) &&
				!strings.Contains(strings.ToLower(student.Email), needle) {
				continue
			}
		}

		row := GradebookRow{
			StudentID:    student.ID,
			StudentName:  student.Name,
			StudentEmail: student.Email,
			Cells:        make([]GradebookCell, 0, len(assignments)),
		}

		var gradedItems []utils.GradedItem
		gradedAny := false

		for _, assignment := range assignments {
			cell := GradebookCell{AssignmentID: assignment.ID, Status: "MISSING"}

			var submission models.Submission
			if err := db.Where("assignment_id = ? AND student_id = ? AND is_deleted = ?",
				assignment.ID, student.ID, false).First(&submission).Error; err == nil {
				cell.SubmissionID = &submission.ID
				if submission.IsLate {
					cell.Status = "LATE"
				} else {
					cell.Status = "SUBMITTED"
				}
			}

			var grade models.Grade
			if err := db.Where("assignment_id = ? AND student_id = ? AND is_deleted = ?",
				assignment.ID, student.ID, false).First(&grade).Error; err == nil {
				score := grade.Score
				cell.Score = &score
				cell.Status = "GRADED"
				gradedAny = true
				gradedItems = append(gradedItems, utils.GradedItem{
					Score:     grade.Score,
					MaxPoints: assignment.MaxPoints,
					Weight:    assignment.Weight,
				})
			}

			row.Cells = append(row.Cells, cell)
		}

		if query != nil && query.Status == "GRADED" && !gradedAny {
			continue
		}
		if query != nil && query.Status == "UNGRADED" && gradedAny && len(gradedItems) == len(assignments) {
			continue
		}

		if len(gradedItems) > 0 {
			avg := utils.WeightedAverage(gradedItems)
			row.Average = &avg
		}

		rows = append(rows, row)
	}

	return assignments, rows, nil
}

// GetGradebook returns the grid for an owned course
func GetGradebook(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	query, _ := c.Locals("validatedGradebookQuery").(*instructorValidators.GradebookQuery)

	assignments, rows, err := buildGradebook(db, course, query)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build gradebook!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Gradebook fetched successfully!", fiber.Map{
		"course":      course,
		"assignments": assignments,
		"rows":        rows,
	})
}

// UpsertGrade creates or replaces the grade for one (assignment, student)
// pair. Last write wins. An optional feedback template is rendered with the
// student/assignment context before saving.
func UpsertGrade(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedGrade").(*struct {
		AssignmentID uint    `json:"assignment_id"`
		StudentID    uint    `json:"student_id"`
		Score        float64 `json:"score"`
		Feedback     string  `json:"feedback"`
		TemplateID   *uint   `json:"feedback_template_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var assignment models.Assignment
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		reqData.AssignmentID, course.ID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found in this course!", nil)
	}

	if reqData.Score > assignment.MaxPoints {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"score": fmt.Sprintf("Score cannot exceed max points (%.1f)!", assignment.MaxPoints),
		})
	}

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND status <> ? AND is_deleted = ?",
		reqData.StudentID, course.ID, models.EnrollmentDropped, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student is not enrolled in this course!", nil)
	}

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", reqData.StudentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	feedback := reqData.Feedback
	if reqData.TemplateID != nil {
		var template models.FeedbackTemplate
		if err := db.Where("id = ? AND instructor_id = ? AND is_deleted = ?",
			*reqData.TemplateID, userID, false).First(&template).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Feedback template not found!", nil)
		}
		rendered := utils.RenderFeedbackTemplate(template.Body, utils.TemplateData{
			StudentName:     student.Name,
			CourseName:      course.Title,
			AssignmentTitle: assignment.Title,
			Score:           reqData.Score,
			MaxPoints:       assignment.MaxPoints,
		})
		if feedback != "" {
			feedback = rendered + "\n\n" + feedback
		} else {
			feedback = rendered
		}
	}

	var submissionID *uint
	var submission models.Submission
	if err := db.Where("assignment_id = ? AND student_id = ? AND is_deleted = ?",
		reqData.AssignmentID, reqData.StudentID, false).First(&submission).Error; err == nil {
		submissionID = &submission.ID
	}

	now := time.Now()

	// Last write wins: update the existing grade row if present
	var grade models.Grade
	err := db.Where("assignment_id = ? AND student_id = ? AND is_deleted = ?",
		reqData.AssignmentID, reqData.StudentID, false).First(&grade).Error
	if err == nil {
		grade.Score = reqData.Score
		grade.Feedback = feedback
		grade.GradedByID = userID
		grade.GradedAt = now
		grade.SubmissionID = submissionID
		if err := db.Save(&grade).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save grade!", nil)
		}
	} else {
		grade = models.Grade{
			AssignmentID: reqData.AssignmentID,
			StudentID:    reqData.StudentID,
			SubmissionID: submissionID,
			Score:        reqData.Score,
			Feedback:     feedback,
			GradedByID:   userID,
			GradedAt:     now,
		}
		if err := db.Create(&grade).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save grade!", nil)
		}
	}

	utils.SendGradePostedEmail(student.Email, student.Name, assignment.Title, grade.Score, assignment.MaxPoints)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grade saved successfully!", grade)
}

// ExportGradebookCSV serializes the grid as CSV
func ExportGradebookCSV(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	query, _ := c.Locals("validatedGradebookQuery").(*instructorValidators.GradebookQuery)

	assignments, rows, err := buildGradebook(db, course, query)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build gradebook!", nil)
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	header := []string{"Student", "Email"}
	for _, assignment := range assignments {
		header = append(header, fmt.Sprintf("%s (%.0f pts)", assignment.Title, assignment.MaxPoints))
	}
	header = append(header, "Average %")
	writer.Write(header)

	for _, row := range rows {
		record := []string{row.StudentName, row.StudentEmail}
		for _, cell := range row.Cells {
			if cell.Score != nil {
				record = append(record, fmt.Sprintf("%.1f", *cell.Score))
			} else {
				record = append(record, "")
			}
		}
		if row.Average != nil {
			record = append(record, fmt.Sprintf("%.1f", *row.Average))
		} else {
			record = append(record, "")
		}
		writer.Write(record)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to write CSV!", nil)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="gradebook-%s.csv"`, course.Code))
	return c.SendString(buf.String())
}

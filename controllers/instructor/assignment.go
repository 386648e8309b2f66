package instructorController

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// CreateAssignment adds an assignment to an owned course
func CreateAssignment(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedAssignment").(*struct {
		Title        string  `json:"title"`
		Instructions string  `json:"instructions"`
		DueAt        string  `json:"due_at"`
		MaxPoints    float64 `json:"max_points"`
		Weight       float64 `json:"weight"`
		AllowLate    bool    `json:"allow_late"`
		IsPublished  bool    `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	dueAt, _ := c.Locals("validatedDueAt").(*time.Time)

	assignment := models.Assignment{
		CourseID:     course.ID,
		Title:        reqData.Title,
		Instructions: reqData.Instructions,
		DueAt:        dueAt,
		MaxPoints:    reqData.MaxPoints,
		Weight:       reqData.Weight,
		AllowLate:    reqData.AllowLate,
		IsPublished:  reqData.IsPublished,
	}

	if err := db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// GetAssignments lists all assignments of an owned course
func GetAssignments(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	var assignments []models.Assignment
	if err := db.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("due_at asc, created_at asc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": assignments,
	})
}

// UpdateAssignment applies partial updates to an assignment of an owned course
func UpdateAssignment(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	assignmentID := c.Locals("assignmentID").(int)

	var assignment models.Assignment
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", assignmentID, course.ID, false).
		First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	reqData := new(struct {
		Title        *string  `json:"title"`
		Instructions *string  `json:"instructions"`
		DueAt        *string  `json:"due_at"`
		MaxPoints    *float64 `json:"max_points"`
		Weight       *float64 `json:"weight"`
		AllowLate    *bool    `json:"allow_late"`
		IsPublished  *bool    `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		assignment.Title = *reqData.Title
	}
	if reqData.Instructions != nil {
		assignment.Instructions = *reqData.Instructions
	}
	if reqData.DueAt != nil {
		parsed, err := time.Parse(time.RFC3339, *reqData.DueAt)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"due_at": "Due date must be RFC3339 formatted!"})
		}
		assignment.DueAt = &parsed
		assignment.ReminderSentAt = nil // Re-arm the reminder for the new date
	}
	if reqData.MaxPoints != nil {
		if *reqData.MaxPoints <= 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"max_points": "Max points must be greater than 0!"})
		}
		assignment.MaxPoints = *reqData.MaxPoints
	}
	if reqData.Weight != nil {
		if *reqData.Weight <= 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"weight": "Weight must be greater than 0!"})
		}
		assignment.Weight = *reqData.Weight
	}
	if reqData.AllowLate != nil {
		assignment.AllowLate = *reqData.AllowLate
	}
	if reqData.IsPublished != nil {
		assignment.IsPublished = *reqData.IsPublished
	}

	if err := db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment updated successfully!", assignment)
}

// DeleteAssignment soft-deletes an assignment of an owned course
func DeleteAssignment(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	assignmentID := c.Locals("assignmentID").(int)

	var assignment models.Assignment
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", assignmentID, course.ID, false).
		First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	assignment.IsDeleted = true
	if err := db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment deleted successfully!", nil)
}

// GetSubmissions lists submissions for one assignment of an owned course
func GetSubmissions(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	assignmentID := c.Locals("assignmentID").(int)

	var assignment models.Assignment
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", assignmentID, course.ID, false).
		First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	var submissions []models.Submission
	if err := db.Where("assignment_id = ? AND is_deleted = ?", assignmentID, false).
		Order("submitted_at desc").Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	type submissionWithStudent struct {
		models.Submission
		StudentName  string `json:"student_name"`
		StudentEmail string `json:"student_email"`
	}

	result := make([]submissionWithStudent, len(submissions))
	for i, s := range submissions {
		var student models.User
		db.Select("id, name, email").Where("id = ?", s.StudentID).First(&student)
		result[i] = submissionWithStudent{
			Submission:   s,
			StudentName:  student.Name,
			StudentEmail: student.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", fiber.Map{
		"assignment":  assignment,
		"submissions": result,
	})
}

package instructorValidators

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// GradebookQuery is the validated gradebook filter
type GradebookQuery struct {
	Search string // Matches student name/email
	Status string // "" (all), GRADED, UNGRADED
}

func GradebookFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Search string `query:"search"`
			Status string `query:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		status := strings.ToUpper(strings.TrimSpace(reqData.Status))
		switch status {
		case "", "GRADED", "UNGRADED":
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be GRADED or UNGRADED!",
			})
		}

		c.Locals("validatedGradebookQuery", &GradebookQuery{
			Search: strings.TrimSpace(reqData.Search),
			Status: status,
		})
		return c.Next()
	}
}

func UpsertGrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			AssignmentID uint    `json:"assignment_id"`
			StudentID    uint    `json:"student_id"`
			Score        float64 `json:"score"`
			Feedback     string  `json:"feedback"`
			TemplateID   *uint   `json:"feedback_template_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.AssignmentID == 0 {
			errors["assignment_id"] = "Assignment ID is required!"
		}
		if reqData.StudentID == 0 {
			errors["student_id"] = "Student ID is required!"
		}
		if reqData.Score < 0 {
			errors["score"] = "Score cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}

func CreateTemplate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name string `json:"name"`
			Body string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Body is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTemplate", reqData)
		return c.Next()
	}
}

func CreateAnnouncement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title    string `json:"title"`
			Body     string `json:"body"`
			IsPinned bool   `json:"is_pinned"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Body is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnnouncement", reqData)
		return c.Next()
	}
}

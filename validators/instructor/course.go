package instructorValidators

import (
	"strconv"
	"strings"
	"time"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string  `json:"title"`
			Code        string  `json:"code"`
			Description string  `json:"description"`
			Term        string  `json:"term"`
			Credits     float64 `json:"credits"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Code
		if strings.TrimSpace(reqData.Code) == "" {
			errors["code"] = "Course code is required!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		} else if len(strings.TrimSpace(reqData.Description)) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Credits < 0 || reqData.Credits > 12 {
			errors["credits"] = "Credits must be between 0 and 12!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        *string  `json:"title"`
			Code         *string  `json:"code"`
			Description  *string  `json:"description"`
			Term         *string  `json:"term"`
			Credits      *float64 `json:"credits"`
			ThumbnailURL *string  `json:"thumbnail_url"`
			IsPublished  *bool    `json:"is_published"`
			Status       *string  `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Credits != nil && (*reqData.Credits < 0 || *reqData.Credits > 12) {
			errors["credits"] = "Credits must be between 0 and 12!"
		}
		if reqData.Status != nil {
			switch *reqData.Status {
			case "DRAFT", "ACTIVE", "ARCHIVED":
			default:
				errors["status"] = "Status must be DRAFT, ACTIVE or ARCHIVED!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			ContentType string `json:"content_type"`
			Body        string `json:"body"`
			URL         string `json:"url"`
			OrderIndex  int    `json:"order_index"`
			IsPublished bool   `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		switch reqData.ContentType {
		case "":
			reqData.ContentType = "TEXT"
		case "TEXT", "VIDEO", "FILE", "LINK":
		default:
			errors["content_type"] = "Content type must be TEXT, VIDEO, FILE or LINK!"
		}

		if reqData.ContentType == "TEXT" && strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Body is required for TEXT content!"
		}
		if reqData.ContentType != "TEXT" && strings.TrimSpace(reqData.URL) == "" {
			errors["url"] = "URL is required for non-text content!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string  `json:"title"`
			Instructions string  `json:"instructions"`
			DueAt        string  `json:"due_at"` // RFC3339
			MaxPoints    float64 `json:"max_points"`
			Weight       float64 `json:"weight"`
			AllowLate    bool    `json:"allow_late"`
			IsPublished  bool    `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		var dueAt *time.Time

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.DueAt != "" {
			parsed, err := time.Parse(time.RFC3339, reqData.DueAt)
			if err != nil {
				errors["due_at"] = "Due date must be RFC3339 formatted!"
			} else {
				dueAt = &parsed
			}
		}
		if reqData.MaxPoints <= 0 {
			errors["max_points"] = "Max points must be greater than 0!"
		}
		if reqData.Weight <= 0 {
			errors["weight"] = "Weight must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		c.Locals("validatedDueAt", dueAt)
		return c.Next()
	}
}

// AssignmentID validates the :assignment_id path parameter
func AssignmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("assignment_id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assignment ID!", nil)
		}

		c.Locals("assignmentID", id)
		return c.Next()
	}
}

package courseValidators

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// ListQuery is the validated catalog/list query
type ListQuery struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search"`
	Term   string `json:"term"`
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `query:"page"`
			Limit  *int   `query:"limit"`
			Search string `query:"search"`
			Term   string `query:"term"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		query := &ListQuery{
			Page:   1,
			Limit:  10,
			Search: strings.TrimSpace(reqData.Search),
			Term:   strings.TrimSpace(reqData.Term),
		}

		errors := make(map[string]string)

		if reqData.Page != nil {
			if *reqData.Page < 1 {
				errors["page"] = "Page must be greater than 0!"
			} else {
				query.Page = *reqData.Page
			}
		}
		if reqData.Limit != nil {
			if *reqData.Limit < 1 || *reqData.Limit > 100 {
				errors["limit"] = "Limit must be between 1 and 100!"
			} else {
				query.Limit = *reqData.Limit
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", query)
		return c.Next()
	}
}

// CourseID validates the :id path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// DiscussionID validates the :discussion_id path parameter
func DiscussionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("discussion_id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Discussion ID!", nil)
		}

		c.Locals("discussionID", id)
		return c.Next()
	}
}

func CreateDiscussion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Body is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDiscussion", reqData)
		return c.Next()
	}
}

func CreateReply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		discussionIDStr := strings.TrimSpace(c.Params("discussion_id"))
		discussionID, err := strconv.Atoi(discussionIDStr)
		if err != nil || discussionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Discussion ID!", nil)
		}

		reqData := new(struct {
			Body string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Body) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"body": "Body is required!"})
		}

		c.Locals("discussionID", discussionID)
		c.Locals("validatedReply", reqData)
		return c.Next()
	}
}

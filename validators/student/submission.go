package studentValidators

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitAssignment validates the :assignment_id parameter and the multipart
// form fields of a submission. Files are handled by the controller.
func SubmitAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("assignment_id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assignment ID!", nil)
		}

		text := strings.TrimSpace(c.FormValue("text"))
		form, formErr := c.MultipartForm()
		hasFiles := formErr == nil && form != nil && len(form.File["files"]) > 0

		if text == "" && !hasFiles {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"text": "Submission must include text or at least one file!",
			})
		}

		c.Locals("assignmentID", id)
		c.Locals("submissionText", text)
		return c.Next()
	}
}

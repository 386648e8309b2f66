package middleware

import (
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// TelemetryMiddleware reports 5xx responses to the error webhook
func TelemetryMiddleware(c *fiber.Ctx) error {
	err := c.Next()

	statusCode := c.Response().StatusCode()
	if statusCode >= fiber.StatusInternalServerError {
		utils.ReportError(c.Path(), c.Method(), statusCode, string(c.Response().Body()))
	}

	return err
}

package authRoutes

import (
	authController "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authController.Signup)
	authGroup.Post("/login", authValidators.Login(), authController.Login)
	authGroup.Get("/login/history", middleware.JWTMiddleware, authController.LoginHistoryList)
	authGroup.Post("/send/otp", authValidators.SendOTP(), authController.SendOTP)
	authGroup.Patch("/verify/otp", authValidators.VerifyOTP(), authController.VerifyOTP)
	authGroup.Post("/forgot/password/send/otp", authValidators.SendOTP(), authController.ForgotPasswordSendOTP)
	authGroup.Patch("/reset/password", authValidators.ResetPassword(), authController.ResetPassword)
	authGroup.Put("/change/password", middleware.JWTMiddleware, authValidators.ChangePassword(), authController.ChangePassword)
}

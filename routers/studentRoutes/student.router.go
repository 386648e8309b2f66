package studentRoutes

import (
	courseController "lms/controllers/course"
	studentController "lms/controllers/student"
	"lms/middleware"
	courseValidators "lms/validators/course"
	studentValidators "lms/validators/student"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes sets up the dashboard and submission routes
func SetupStudentRoutes(app *fiber.App) {
	group := app.Group("/student", middleware.JWTMiddleware, middleware.RequireRole("STUDENT"))

	group.Get("/dashboard", studentController.GetDashboard)
	group.Get("/courses", courseController.GetMyCourses)
	group.Get("/courses/:id/assignments", courseValidators.CourseID(), studentController.GetCourseAssignments)
	group.Post("/assignments/:assignment_id/submit", studentValidators.SubmitAssignment(), studentController.SubmitAssignment)
}

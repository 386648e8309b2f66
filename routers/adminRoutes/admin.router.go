package adminRoutes

import (
	"time"

	"lms/config"
	adminController "lms/controllers/admin"
	"lms/middleware"
	adminValidators "lms/validators/admin"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up user/course administration and the cached stats
// dashboard
func SetupAdminRoutes(app *fiber.App) {
	group := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Users
	group.Get("/users", adminValidators.UserList(), adminController.GetUsers)
	group.Post("/users", adminValidators.CreateUser(), adminController.CreateUser)
	group.Put("/users/:id", adminValidators.UpdateUser(), adminController.UpdateUser)
	group.Delete("/users/:id", adminController.DeleteUser)

	// Courses
	group.Get("/courses", courseValidators.CourseList(), adminController.GetAllCourses)
	group.Patch("/courses/:id/archive", courseValidators.CourseID(), adminController.ArchiveCourse)
	group.Patch("/courses/:id/restore", courseValidators.CourseID(), adminController.RestoreCourse)

	// Stats (read-through cached, X-Cache header reports HIT/MISS)
	statsTTL := time.Duration(config.AppConfig.StatsCacheTTL) * time.Second
	group.Get("/stats/detailed", middleware.CacheResponse(statsTTL), adminController.GetDetailedStats)
}

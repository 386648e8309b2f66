package instructorRoutes

import (
	instructorController "lms/controllers/instructor"
	"lms/middleware"
	courseValidators "lms/validators/course"
	instructorValidators "lms/validators/instructor"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up course management, assignments, the gradebook
// and feedback templates
func SetupInstructorRoutes(app *fiber.App) {
	group := app.Group("/instructor", middleware.JWTMiddleware, middleware.RequireRole("INSTRUCTOR", "ADMIN"))

	// Own courses
	group.Get("/courses", instructorController.GetMyTaughtCourses)
	group.Post("/courses", instructorValidators.CreateCourse(), instructorController.CreateCourse)
	group.Put("/courses/:id", courseValidators.CourseID(), instructorValidators.UpdateCourse(), instructorController.UpdateCourse)
	group.Delete("/courses/:id", courseValidators.CourseID(), instructorController.DeleteCourse)
	group.Get("/courses/:id/roster", courseValidators.CourseID(), instructorController.GetRoster)

	// Materials and announcements
	group.Post("/courses/:id/content", courseValidators.CourseID(), instructorValidators.CreateContent(), instructorController.CreateContent)
	group.Put("/courses/:id/content/:content_id", courseValidators.CourseID(), instructorController.UpdateContent)
	group.Delete("/courses/:id/content/:content_id", courseValidators.CourseID(), instructorController.DeleteContent)
	group.Post("/courses/:id/announcements", courseValidators.CourseID(), instructorValidators.CreateAnnouncement(), instructorController.CreateAnnouncement)
	group.Put("/courses/:id/announcements/:announcement_id", courseValidators.CourseID(), instructorController.UpdateAnnouncement)
	group.Delete("/courses/:id/announcements/:announcement_id", courseValidators.CourseID(), instructorController.DeleteAnnouncement)

	// Discussion moderation
	group.Patch("/courses/:id/discussions/:discussion_id", courseValidators.CourseID(), courseValidators.DiscussionID(), instructorController.ModerateDiscussion)

	// Assignments
	group.Get("/courses/:id/assignments", courseValidators.CourseID(), instructorController.GetAssignments)
	group.Post("/courses/:id/assignments", courseValidators.CourseID(), instructorValidators.CreateAssignment(), instructorController.CreateAssignment)
	group.Put("/courses/:id/assignments/:assignment_id", courseValidators.CourseID(), instructorValidators.AssignmentID(), instructorController.UpdateAssignment)
	group.Delete("/courses/:id/assignments/:assignment_id", courseValidators.CourseID(), instructorValidators.AssignmentID(), instructorController.DeleteAssignment)
	group.Get("/courses/:id/assignments/:assignment_id/submissions", courseValidators.CourseID(), instructorValidators.AssignmentID(), instructorController.GetSubmissions)

	// Gradebook
	group.Get("/courses/:id/gradebook", courseValidators.CourseID(), instructorValidators.GradebookFilter(), instructorController.GetGradebook)
	group.Put("/courses/:id/grades", courseValidators.CourseID(), instructorValidators.UpsertGrade(), instructorController.UpsertGrade)
	group.Get("/courses/:id/gradebook/export", courseValidators.CourseID(), instructorValidators.GradebookFilter(), instructorController.ExportGradebookCSV)

	// Feedback templates
	group.Get("/templates", instructorController.GetTemplates)
	group.Post("/templates", instructorValidators.CreateTemplate(), instructorController.CreateTemplate)
	group.Put("/templates/:template_id", instructorValidators.CreateTemplate(), instructorController.UpdateTemplate)
	group.Delete("/templates/:template_id", instructorController.DeleteTemplate)
	group.Post("/templates/preview", instructorController.PreviewTemplate)
}

package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, enrollment and course-community routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	// Catalog
	courseGroup.Get("/list", courseValidators.CourseList(), courseController.GetAllCourses)
	courseGroup.Get("/:id", courseValidators.CourseID(), courseController.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.RequireRole("STUDENT"), courseValidators.CourseID(), courseController.EnrollInCourse)
	courseGroup.Delete("/:id/enroll", middleware.RequireRole("STUDENT"), courseValidators.CourseID(), courseController.DropCourse)

	// Materials and announcements (for enrolled users and the instructor)
	courseGroup.Get("/:id/content", courseValidators.CourseID(), courseController.GetCourseContent)
	courseGroup.Get("/:id/announcements", courseValidators.CourseID(), courseController.GetAnnouncements)

	// Discussions
	courseGroup.Get("/:id/discussions", courseValidators.CourseID(), courseController.GetDiscussions)
	courseGroup.Post("/:id/discussions", courseValidators.CourseID(), courseValidators.CreateDiscussion(), courseController.CreateDiscussion)
	courseGroup.Get("/discussions/:discussion_id", courseValidators.DiscussionID(), courseController.GetDiscussionReplies)
	courseGroup.Delete("/discussions/:discussion_id", courseValidators.DiscussionID(), courseController.DeleteDiscussion)
	courseGroup.Post("/discussions/:discussion_id/replies", courseValidators.CreateReply(), courseController.ReplyToDiscussion)
	courseGroup.Delete("/discussions/:discussion_id/replies/:reply_id", courseValidators.DiscussionID(), courseController.DeleteReply)
}

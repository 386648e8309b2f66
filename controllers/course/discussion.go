package courseController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// GetDiscussions lists threads in a course, pinned first
func GetDiscussions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID && !isEnrolled(db, userID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var discussions []models.Discussion
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("is_pinned desc, created_at desc").Find(&discussions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch discussions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussions fetched successfully!", fiber.Map{
		"discussions": discussions,
	})
}

// CreateDiscussion opens a new thread
func CreateDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID && !isEnrolled(db, userID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	reqData, ok := c.Locals("validatedDiscussion").(*struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	discussion := models.Discussion{
		CourseID: uint(courseID),
		AuthorID: userID,
		Title:    reqData.Title,
		Body:     reqData.Body,
	}

	if err := db.Create(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Discussion created successfully!", discussion)
}

// GetDiscussionReplies returns a thread with its replies
func GetDiscussionReplies(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID := c.Locals("discussionID").(int)
	db := database.Database.Db

	var discussion models.Discussion
	if err := db.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", discussion.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID && !isEnrolled(db, userID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var replies []models.DiscussionReply
	if err := db.Where("discussion_id = ? AND is_deleted = ?", discussionID, false).
		Order("created_at asc").Find(&replies).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch replies!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion fetched successfully!", fiber.Map{
		"discussion": discussion,
		"replies":    replies,
	})
}

// ReplyToDiscussion posts a reply to an unlocked thread
func ReplyToDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID := c.Locals("discussionID").(int)
	db := database.Database.Db

	var discussion models.Discussion
	if err := db.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	if discussion.IsLocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Discussion is locked!", nil)
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", discussion.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID && !isEnrolled(db, userID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	reqData := c.Locals("validatedReply").(*struct {
		Body string `json:"body"`
	})

	reply := models.DiscussionReply{
		DiscussionID: uint(discussionID),
		AuthorID:     userID,
		Body:         reqData.Body,
	}

	if err := db.Create(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post reply!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reply posted successfully!", reply)
}

// DeleteDiscussion soft-deletes a thread. Only the author or the course
// instructor may remove it.
func DeleteDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID := c.Locals("discussionID").(int)
	db := database.Database.Db

	var discussion models.Discussion
	if err := db.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", discussion.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if discussion.AuthorID != userID && course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own posts!", nil)
	}

	discussion.IsDeleted = true
	if err := db.Save(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion deleted successfully!", nil)
}

// DeleteReply soft-deletes a reply. Only the author or the course instructor
// may remove it.
func DeleteReply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID := c.Locals("discussionID").(int)

	replyID, err := c.ParamsInt("reply_id")
	if err != nil || replyID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Reply ID!", nil)
	}

	db := database.Database.Db

	var reply models.DiscussionReply
	if err := db.Where("id = ? AND discussion_id = ? AND is_deleted = ?", replyID, discussionID, false).
		First(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reply not found!", nil)
	}

	var discussion models.Discussion
	if err := db.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", discussion.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reply.AuthorID != userID && course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own posts!", nil)
	}

	reply.IsDeleted = true
	if err := db.Save(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete reply!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reply deleted successfully!", nil)
}

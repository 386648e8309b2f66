package instructorController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ownedCourse loads the :id course and verifies the requester teaches it.
// Returns nil after writing the error response when the check fails.
func ownedCourse(c *fiber.Ctx, db *gorm.DB) *models.Course {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return nil
	}

	courseID, ok := c.Locals("courseID").(int)
	if !ok {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		return nil
	}

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		return nil
	}

	if course.InstructorID != userID {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not teach this course!", nil)
		return nil
	}

	return &course
}

// GetMyTaughtCourses lists courses taught by the instructor
func GetMyTaughtCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.Where("instructor_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// CreateCourse creates a draft course owned by the instructor
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string  `json:"title"`
		Code        string  `json:"code"`
		Description string  `json:"description"`
		Term        string  `json:"term"`
		Credits     float64 `json:"credits"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Code:         reqData.Code,
		Description:  reqData.Description,
		Term:         reqData.Term,
		Credits:      reqData.Credits,
		InstructorID: userID,
		Status:       models.CourseDraft,
	}
	if course.Credits == 0 {
		course.Credits = 3
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse applies partial updates to an owned course
func UpdateCourse(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title        *string  `json:"title"`
		Code         *string  `json:"code"`
		Description  *string  `json:"description"`
		Term         *string  `json:"term"`
		Credits      *float64 `json:"credits"`
		ThumbnailURL *string  `json:"thumbnail_url"`
		IsPublished  *bool    `json:"is_published"`
		Status       *string  `json:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Code != nil {
		course.Code = *reqData.Code
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Term != nil {
		course.Term = *reqData.Term
	}
	if reqData.Credits != nil {
		course.Credits = *reqData.Credits
	}
	if reqData.ThumbnailURL != nil {
		course.ThumbnailURL = *reqData.ThumbnailURL
	}
	if reqData.IsPublished != nil {
		course.IsPublished = *reqData.IsPublished
		if course.IsPublished && course.Status == models.CourseDraft {
			course.Status = models.CourseActive
		}
	}
	if reqData.Status != nil {
		course.Status = *reqData.Status
	}

	if err := db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes an owned course
func DeleteCourse(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	course.IsDeleted = true
	course.IsPublished = false
	if err := db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetRoster lists enrolled students for an owned course
func GetRoster(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	var enrollments []models.Enrollment
	if err := db.Where("course_id = ? AND status <> ? AND is_deleted = ?",
		course.ID, models.EnrollmentDropped, false).
		Preload("Student").Order("created_at asc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch roster!", nil)
	}

	type rosterRow struct {
		EnrollmentID uint   `json:"enrollment_id"`
		StudentID    uint   `json:"student_id"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		Status       string `json:"status"`
	}

	rows := make([]rosterRow, len(enrollments))
	for i, e := range enrollments {
		rows[i] = rosterRow{
			EnrollmentID: e.ID,
			StudentID:    e.StudentID,
			Name:         e.Student.Name,
			Email:        e.Student.Email,
			Status:       e.Status,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roster fetched successfully!", fiber.Map{
		"roster": rows,
		"total":  len(rows),
	})
}

// CreateContent adds a material item to an owned course
func CreateContent(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedContent").(*struct {
		Title       string `json:"title"`
		ContentType string `json:"content_type"`
		Body        string `json:"body"`
		URL         string `json:"url"`
		OrderIndex  int    `json:"order_index"`
		IsPublished bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	content := models.Content{
		CourseID:    course.ID,
		Title:       reqData.Title,
		ContentType: reqData.ContentType,
		Body:        reqData.Body,
		URL:         reqData.URL,
		OrderIndex:  reqData.OrderIndex,
		IsPublished: reqData.IsPublished,
	}

	if err := db.Create(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// UpdateContent applies partial updates to a material item of an owned course
func UpdateContent(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	contentID, err := c.ParamsInt("content_id")
	if err != nil || contentID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
	}

	var content models.Content
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", contentID, course.ID, false).
		First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	reqData := new(struct {
		Title       *string `json:"title"`
		ContentType *string `json:"content_type"`
		Body        *string `json:"body"`
		URL         *string `json:"url"`
		OrderIndex  *int    `json:"order_index"`
		IsPublished *bool   `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.ContentType != nil {
		switch *reqData.ContentType {
		case "TEXT", "VIDEO", "FILE", "LINK":
			content.ContentType = *reqData.ContentType
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"content_type": "Content type must be TEXT, VIDEO, FILE or LINK!",
			})
		}
	}
	if reqData.Title != nil {
		content.Title = *reqData.Title
	}
	if reqData.Body != nil {
		content.Body = *reqData.Body
	}
	if reqData.URL != nil {
		content.URL = *reqData.URL
	}
	if reqData.OrderIndex != nil {
		content.OrderIndex = *reqData.OrderIndex
	}
	if reqData.IsPublished != nil {
		content.IsPublished = *reqData.IsPublished
	}

	if err := db.Save(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", content)
}

// DeleteContent soft-deletes a material item of an owned course
func DeleteContent(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	contentID, err := c.ParamsInt("content_id")
	if err != nil || contentID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
	}

	var content models.Content
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", contentID, course.ID, false).
		First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	content.IsDeleted = true
	if err := db.Save(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

// CreateAnnouncement posts an announcement to an owned course
func CreateAnnouncement(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedAnnouncement").(*struct {
		Title    string `json:"title"`
		Body     string `json:"body"`
		IsPinned bool   `json:"is_pinned"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	announcement := models.Announcement{
		CourseID: course.ID,
		AuthorID: userID,
		Title:    reqData.Title,
		Body:     reqData.Body,
		IsPinned: reqData.IsPinned,
	}

	if err := db.Create(&announcement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create announcement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Announcement created successfully!", announcement)
}

// UpdateAnnouncement edits an announcement of an owned course
func UpdateAnnouncement(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	announcementID, err := c.ParamsInt("announcement_id")
	if err != nil || announcementID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Announcement ID!", nil)
	}

	var announcement models.Announcement
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", announcementID, course.ID, false).
		First(&announcement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Announcement not found!", nil)
	}

	reqData := new(struct {
		Title    *string `json:"title"`
		Body     *string `json:"body"`
		IsPinned *bool   `json:"is_pinned"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		announcement.Title = *reqData.Title
	}
	if reqData.Body != nil {
		announcement.Body = *reqData.Body
	}
	if reqData.IsPinned != nil {
		announcement.IsPinned = *reqData.IsPinned
	}

	if err := db.Save(&announcement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update announcement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcement updated successfully!", announcement)
}

// DeleteAnnouncement soft-deletes an announcement of an owned course
func DeleteAnnouncement(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	announcementID, err := c.ParamsInt("announcement_id")
	if err != nil || announcementID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Announcement ID!", nil)
	}

	var announcement models.Announcement
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", announcementID, course.ID, false).
		First(&announcement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Announcement not found!", nil)
	}

	announcement.IsDeleted = true
	if err := db.Save(&announcement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete announcement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcement deleted successfully!", nil)
}

// ModerateDiscussion pins, unpins, locks or unlocks a thread in an owned course
func ModerateDiscussion(c *fiber.Ctx) error {
	db := database.Database.Db
	course := ownedCourse(c, db)
	if course == nil {
		return nil
	}

	discussionID := c.Locals("discussionID").(int)

	reqData := new(struct {
		IsPinned *bool `json:"is_pinned"`
		IsLocked *bool `json:"is_locked"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var discussion models.Discussion
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", discussionID, course.ID, false).
		First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	if reqData.IsPinned != nil {
		discussion.IsPinned = *reqData.IsPinned
	}
	if reqData.IsLocked != nil {
		discussion.IsLocked = *reqData.IsLocked
	}

	if err := db.Save(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion updated successfully!", discussion)
}

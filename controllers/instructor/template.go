package instructorController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetTemplates lists the instructor's feedback templates
func GetTemplates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var templates []models.FeedbackTemplate
	if err := database.Database.Db.Where("instructor_id = ? AND is_deleted = ?", userID, false).
		Order("name asc").Find(&templates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch templates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Templates fetched successfully!", fiber.Map{
		"templates": templates,
	})
}

// CreateTemplate saves a new feedback template
func CreateTemplate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTemplate").(*struct {
		Name string `json:"name"`
		Body string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	template := models.FeedbackTemplate{
		InstructorID: userID,
		Name:         reqData.Name,
		Body:         reqData.Body,
	}

	if err := database.Database.Db.Create(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Template created successfully!", template)
}

// UpdateTemplate edits an owned template
func UpdateTemplate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	templateID, err := c.ParamsInt("template_id")
	if err != nil || templateID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Template ID!", nil)
	}

	reqData, ok := c.Locals("validatedTemplate").(*struct {
		Name string `json:"name"`
		Body string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var template models.FeedbackTemplate
	if err := db.Where("id = ? AND instructor_id = ? AND is_deleted = ?", templateID, userID, false).
		First(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Template not found!", nil)
	}

	template.Name = reqData.Name
	template.Body = reqData.Body

	if err := db.Save(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template updated successfully!", template)
}

// DeleteTemplate soft-deletes an owned template
func DeleteTemplate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	templateID, err := c.ParamsInt("template_id")
	if err != nil || templateID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Template ID!", nil)
	}

	db := database.Database.Db

	var template models.FeedbackTemplate
	if err := db.Where("id = ? AND instructor_id = ? AND is_deleted = ?", templateID, userID, false).
		First(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Template not found!", nil)
	}

	template.IsDeleted = true
	if err := db.Save(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template deleted successfully!", nil)
}

// PreviewTemplate renders a template body with sample values so the
// instructor can check placeholder usage
func PreviewTemplate(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Body string `json:"body"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	rendered := utils.RenderFeedbackTemplate(reqData.Body, utils.TemplateData{
		StudentName:     "Alex Johnson",
		CourseName:      "Sample Course",
		AssignmentTitle: "Sample Assignment",
		Score:           87.5,
		MaxPoints:       100,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template rendered successfully!", fiber.Map{
		"rendered": rendered,
	})
}

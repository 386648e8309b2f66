package adminValidators

import (
	"strconv"
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// UserListQuery is the validated admin user filter
type UserListQuery struct {
	Page     int
	Limit    int
	Search   string
	Role     string
	IsActive *bool
}

func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int   `query:"page"`
			Limit    *int   `query:"limit"`
			Search   string `query:"search"`
			Role     string `query:"role"`
			IsActive *bool  `query:"is_active"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		query := &UserListQuery{
			Page:     1,
			Limit:    20,
			Search:   strings.TrimSpace(reqData.Search),
			Role:     strings.ToUpper(strings.TrimSpace(reqData.Role)),
			IsActive: reqData.IsActive,
		}

		errors := make(map[string]string)

		if reqData.Page != nil {
			if *reqData.Page < 1 {
				errors["page"] = "Page must be greater than 0!"
			} else {
				query.Page = *reqData.Page
			}
		}
		if reqData.Limit != nil {
			if *reqData.Limit < 1 || *reqData.Limit > 100 {
				errors["limit"] = "Limit must be between 1 and 100!"
			} else {
				query.Limit = *reqData.Limit
			}
		}
		switch query.Role {
		case "", models.RoleStudent, models.RoleInstructor, models.RoleAdmin:
		default:
			errors["role"] = "Role must be STUDENT, INSTRUCTOR or ADMIN!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserList", query)
		return c.Next()
	}
}

func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		if reqData.Email == "" || validate.Var(reqData.Email, "email") != nil {
			errors["email"] = "A valid email is required!"
		}
		if len(reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}
		switch reqData.Role {
		case models.RoleStudent, models.RoleInstructor, models.RoleAdmin:
		default:
			errors["role"] = "Role must be STUDENT, INSTRUCTOR or ADMIN!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNewUser", reqData)
		return c.Next()
	}
}

func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		reqData := new(struct {
			Name     *string `json:"name"`
			Role     *string `json:"role"`
			IsActive *bool   `json:"is_active"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Role != nil {
			switch *reqData.Role {
			case models.RoleStudent, models.RoleInstructor, models.RoleAdmin:
			default:
				errors["role"] = "Role must be STUDENT, INSTRUCTOR or ADMIN!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("targetUserID", id)
		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}

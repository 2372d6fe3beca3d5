package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/book-catalog/internal/api/dto"
	"github.com/spec-kit/book-catalog/internal/domain"
	"github.com/spec-kit/book-catalog/internal/service"
	"github.com/spec-kit/book-catalog/pkg/util"
)

// UsersHandler exposes registration, login and account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Register handles POST /api/v1/users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewBadRequest("Invalid request body.")
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return util.NewValidation(fieldErrors)
	}

	user, token, err := h.users.Register(c.Context(), req.Email, req.Name, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

// Login handles POST /api/v1/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewBadRequest("Invalid request body.")
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return util.NewValidation(fieldErrors)
	}

	user, token, err := h.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

// List handles GET /api/v1/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, len(users))
	for i, user := range users {
		out[i] = dto.NewUserResponse(user)
	}
	return c.JSON(out)
}

// GetByID handles GET /api/v1/users/:user_id.
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Context(), c.Params("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /api/v1/users/:user_id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Context(), c.Params("user_id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-service/internal/api/dto"
	"github.com/spec-kit/tenant-service/internal/service"
)

// UsersHandler exposes admin-facing account queries.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users/all. Admin-gated at the route.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.NewUserResponse(user))
	}
	return c.JSON(out)
}

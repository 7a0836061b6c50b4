package handler

import (
	"go-gudang/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the admin-only user management routes.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /admin/users
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// PUT /admin/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req service.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.userService.UpdateUser(id, &req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// DeleteUser removes the user with all of its items and logs.
// DELETE /admin/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User dihapus total"})
}

// ResetPassword is authorized by the reset secret in the body, not a token.
// PUT /admin/reset-password
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var req service.ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.userService.ResetPassword(&req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password " + req.Username + " diganti!"})
}

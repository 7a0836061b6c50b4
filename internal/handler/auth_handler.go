package handler

import (
	"go-gudang/internal/service"
	"go-gudang/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user authentication
// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// Register creates an account. The bearer token is optional here.
// POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	// A missing or malformed header simply means no token.
	token, _ := jwt.ExtractBearer(c.Get(fiber.HeaderAuthorization))

	role, err := h.authService.Register(&req, token)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Berhasil mendaftar sebagai " + role.String(),
		"role":    role,
	})
}

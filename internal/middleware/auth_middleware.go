package middleware

import (
	"go-gudang/internal/model"
	"go-gudang/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Keys under which RequireAuth stores the caller in c.Locals.
const (
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
)

// RequireAuth is middleware that validates the bearer token and sets the
// caller's id and role in context. It never touches the database.
func RequireAuth(tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := jwt.ExtractBearer(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token Hilang"})
		}

		claims, err := tokens.ValidateToken(tokenString)
		role := model.Role("")
		if err == nil {
			role = model.Role(claims.Role)
		}
		if err != nil || !role.Valid() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Token Tidak Sah"})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserRole, role)

		return c.Next()
	}
}

// RequireRole lets the request through only when RequireAuth stored one of roles.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalUserRole).(model.Role)
		if ok {
			for _, r := range roles {
				if role == r {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Akses Ditolak"})
	}
}

// UserID returns the authenticated caller's id, or 0 outside RequireAuth.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}

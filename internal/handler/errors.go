package handler

import (
	"errors"
	"strconv"

	"go-gudang/internal/service"
	"go-gudang/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// NewErrorHandler is the app-wide fiber.ErrorHandler. Handlers return service
// errors as they are and this maps them to a status and a {message} body.
func NewErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return respondError(c, err, log)
	}
}

func respondError(c *fiber.Ctx, err error, log zerolog.Logger) error {
	status, message := statusFor(err)

	var pErr *service.PersistenceError
	if status >= fiber.StatusInternalServerError || errors.As(err, &pErr) {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(status).JSON(fiber.Map{"message": message})
}

var sentinels = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{service.ErrRegistrationDenied, fiber.StatusUnauthorized},
	{service.ErrInvalidResetSecret, fiber.StatusForbidden},
	{service.ErrDuplicateUsername, fiber.StatusBadRequest},
	{service.ErrUserNotFound, fiber.StatusBadRequest},
	{service.ErrItemNotFound, fiber.StatusBadRequest},
}

func statusFor(err error) (int, string) {
	var vErr *service.ValidationError
	var pErr *service.PersistenceError
	var fErr *fiber.Error

	// Sentinels answer with their own text; wrap context stays in the logs.
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.status, s.err.Error()
		}
	}

	switch {
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest, vErr.Message
	case errors.Is(err, jwt.ErrMissingToken):
		return fiber.StatusUnauthorized, "Token Hilang"
	case errors.Is(err, jwt.ErrInvalidToken):
		return fiber.StatusForbidden, "Token tidak sah"
	case errors.As(err, &pErr):
		return fiber.StatusBadRequest, pErr.Message
	case errors.As(err, &fErr):
		return fErr.Code, fErr.Message
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

// parseBody decodes the JSON body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return &service.ValidationError{Message: "Invalid request body: " + err.Error()}
	}
	return nil
}

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, &service.ValidationError{Message: "ID tidak valid"}
	}
	return uint(id), nil
}

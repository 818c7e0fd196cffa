package middleware

import (
	"image-judge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const ValidatedSessionIDKey = "validated_session_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateSessionID(id); len(errors) > 0 {
			return errors // handled by ErrorHandler
		}
		c.Locals(ValidatedSessionIDKey, id)
		return c.Next()
	}
}

// SessionID returns the id stored by ValidateSessionID.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(ValidatedSessionIDKey).(string)
	return id
}

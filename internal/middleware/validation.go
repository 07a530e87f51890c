package middleware

import (
	"strings"

	"qbank/internal/domain"
	"qbank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware runs request checks that do not need a handler's DTOs.
type ValidationMiddleware struct {
	validator *validation.Validator
}

func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateIDParam rejects malformed path identifiers before the handler runs.
func (vm *ValidationMiddleware) ValidateIDParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateID(param, c.Params(param)); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}

// RequireJSON rejects non-empty POST and PUT bodies that are not JSON.
// Empty bodies pass so endpoints with optional bodies keep working.
func (vm *ValidationMiddleware) RequireJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut:
		default:
			return c.Next()
		}
		if len(c.Body()) == 0 {
			return c.Next()
		}
		ct := strings.ToLower(c.Get(fiber.HeaderContentType))
		if !strings.HasPrefix(ct, fiber.MIMEApplicationJSON) {
			return domain.ValidationErrors{domain.NewInvalidFormatError("Content-Type", ct)}
		}
		return c.Next()
	}
}

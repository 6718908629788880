package middleware

import (
	"strings"

	"athletrack/internal/access"
	"athletrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// TokenValidator verifies an access token and returns the principal it asserts.
type TokenValidator interface {
	ValidateToken(token string) (access.Principal, error)
}

// AuthRequired is a Fiber middleware that authenticates every request from its
// "Authorization: Bearer <token>" header and attaches the principal to the context.
func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return services.ErrTokenMissing
		}

		principal, err := validator.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			return err
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// Principal returns the authenticated principal, or the zero Principal when the
// request did not pass AuthRequired.
func Principal(c *fiber.Ctx) access.Principal {
	p, _ := c.Locals(principalKey).(access.Principal)
	return p
}

package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// SessionChecker reports whether the session has logged in.
type SessionChecker interface {
	Authenticated() bool
}

// RequireAuthenticated rejects requests until the session has logged in.
func RequireAuthenticated(session SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if session == nil || !session.Authenticated() {
			return fiber.NewError(http.StatusUnauthorized, "login required")
		}
		return c.Next()
	}
}

package middleware

import (
	"strings"

	"streaming-backend/internal/services"
	"streaming-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "user_id"

// Auth resolves the per-request user identity from a bearer token. The
// identity is carried in request locals so every handler receives it
// explicitly rather than through shared state.
type Auth struct {
	tokens *services.TokenService
}

func NewAuth(tokens *services.TokenService) *Auth {
	return &Auth{tokens: tokens}
}

// Identify parses the Authorization header when present. Requests without a
// valid token continue anonymously; gating happens in Require or in the
// handler.
func (a *Auth) Identify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if userID, err := a.tokens.Parse(token); err == nil {
				c.Locals(userIDKey, userID)
			}
		}
		return c.Next()
	}
}

// Require rejects requests that did not resolve to an authenticated user.
func (a *Auth) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUserID(c) == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
		}
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, or nil for anonymous
// requests.
func CurrentUserID(c *fiber.Ctx) *uint {
	if id, ok := c.Locals(userIDKey).(uint); ok {
		return &id
	}
	return nil
}

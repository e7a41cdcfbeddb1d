package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/xaabbigautam/Work-Tracker/internal/dto"
	"github.com/xaabbigautam/Work-Tracker/internal/models"
	"github.com/xaabbigautam/Work-Tracker/internal/services"
)

// SessionCookie is the name of the login session cookie.
const SessionCookie = "session_token"

const userKey = "current_user"

// SessionProtected resolves the session cookie into a user and rejects the
// request with 401 otherwise. The resolved user is stored in the request
// locals for CurrentUser.
func SessionProtected(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.Resolve(c.Cookies(SessionCookie))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by SessionProtected, or nil when the
// middleware has not run on this route.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

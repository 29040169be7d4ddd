package middleware

import (
	"starwars/internal/identity"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const userIDKey = "user_id"

// CurrentUser resolves the user a request acts for and stores the id in
// Fiber locals for subsequent handlers.
func CurrentUser(resolver identity.Resolver, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := resolver.Resolve(c)
		if err != nil {
			log.WithError(err).WithField("path", c.Path()).Debug("Current user not resolved")
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the id stored by CurrentUser, or 0 when the middleware did
// not run.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDKey).(uint)
	return id
}

package middleware

import (
	"log"

	"assetdesk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session"

const identityKey = "identity"

// SessionRequired is a Fiber middleware that requires a valid session
// cookie. Requests without one are redirected to the login page before any
// handler logic runs.
func SessionRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			return c.Redirect("/login")
		}

		identity, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("Session validation failed: %v", err)
			return c.Redirect("/login")
		}

		c.Locals(identityKey, *identity)
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by SessionRequired. It must
// only be called from handlers behind the guard.
func CurrentIdentity(c *fiber.Ctx) services.Identity {
	identity, _ := c.Locals(identityKey).(services.Identity)
	return identity
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/apiclient"
	applog "storeadmin/internal/log"
	"storeadmin/internal/services"
)

// RequireAuth enforces a signed-in session; otherwise redirect to login.
// The session's bearer token is attached to the request context.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		sess, err := auth.Session(c.UserContext(), sid)
		if err != nil || !sess.Authenticated {
			applog.Security(c, "access.denied", map[string]any{"sid": sid})
			return c.Redirect("/login")
		}
		c.Locals("user", sess.UserName)
		c.SetUserContext(apiclient.WithToken(c.UserContext(), sess.Token))
		return c.Next()
	}
}

package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storeadmin/internal/log"
	"storeadmin/internal/services"
	"storeadmin/internal/validate"
)

const (
	msgBadCreds     = "Invalid username or password"
	msgMissingCreds = "Username and password are required"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if h.Auth.IsAuthenticated(c.UserContext(), c.Cookies("sid")) {
		return c.Redirect("/")
	}
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return c.Render("login", fiber.Map{"Err": "", "CSRFToken": tok, "UserName": ""})
}

func (h *AuthHandler) loginFail(c *fiber.Ctx, status int, msg, user string) error {
	tok := c.Cookies("csrf_")
	return c.Status(status).Render("login", fiber.Map{"Err": msg, "CSRFToken": tok, "UserName": user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	user := strings.TrimSpace(c.FormValue("username"))
	pass := c.FormValue("password")
	if user == "" || pass == "" {
		log.Security(c, "auth.login.fail", map[string]any{"user": user, "reason": "missing"})
		return h.loginFail(c, fiber.StatusBadRequest, msgMissingCreds, user)
	}
	if _, ok := validate.UserName(user); !ok || !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"user": user, "reason": "bad_format"})
		return h.loginFail(c, fiber.StatusUnauthorized, msgBadCreds, user)
	}

	err := h.Auth.Login(c.UserContext(), sid, user, pass)
	switch {
	case errors.Is(err, services.ErrBadCreds):
		log.Security(c, "auth.login.fail", map[string]any{"user": user})
		return h.loginFail(c, fiber.StatusUnauthorized, msgBadCreds, user)
	case err != nil:
		log.Error(c, "auth.login.error", err, map[string]any{"user": user})
		return h.loginFail(c, statusFor(err), userMessage("Sign-in failed", err), user)
	}

	log.Audit(c, "auth.login.success", map[string]any{"user": user})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
		log.Error(c, "auth.logout.fail", err, map[string]any{"sid": sid})
	}
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}

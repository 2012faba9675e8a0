package handlers_test

import (
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	con := newConsole(t)
	paths := []string{"/", "/brands", "/categories", "/categories/1", "/subcategories/1", "/products", "/colors"}
	for _, p := range paths {
		expectRedirect(t, con.get(t, p, ""), "/login")
		expectRedirect(t, con.get(t, p, "not-a-session"), "/login")
	}
	expectRedirect(t, con.post(t, "/brands", "", url.Values{"name": {"Nokia"}}), "/login")
}

func TestLoginFlowAndThrottle(t *testing.T) {
	con := newConsole(t)

	// 1: blank fields never reach the API
	resp := con.post(t, "/login", "", url.Values{"username": {""}, "password": {""}})
	expectPage(t, resp, fiber.StatusBadRequest, "Username and password are required")

	// 2: wrong password
	resp = con.post(t, "/login", "", url.Values{"username": {"admin"}, "password": {"wrong-pass"}})
	expectPage(t, resp, fiber.StatusUnauthorized, "Invalid username or password")

	// 3: success lands on the dashboard
	sid := con.login(t)
	expectPage(t, con.get(t, "/", sid), fiber.StatusOK, "Brands", "Products")

	// a signed-in user skips the form
	expectRedirect(t, con.get(t, "/login", sid), "/")

	// 4, 5: more failures still answer normally
	for i := 0; i < 2; i++ {
		resp = con.post(t, "/login", "", url.Values{"username": {"admin"}, "password": {"nope-nope"}})
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+4, resp.StatusCode)
		}
	}
	// 6: throttled
	resp = con.post(t, "/login", "", url.Values{"username": {"admin"}, "password": {"admin123"}})
	expectPage(t, resp, fiber.StatusTooManyRequests, "Too many attempts")
}

func TestWhitespaceUsernameIsBlank(t *testing.T) {
	con := newConsole(t)
	resp := con.post(t, "/login", "", url.Values{"username": {"   "}, "password": {"admin123"}})
	expectPage(t, resp, fiber.StatusBadRequest, "Username and password are required")

	resp = con.post(t, "/login", "", url.Values{"username": {"  admin "}, "password": {"admin123"}})
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("padded username: expected 302, got %d body=%s", resp.StatusCode, readBody(resp))
	}
}

func TestLogoutEndsSession(t *testing.T) {
	con := newConsole(t)
	sid := con.login(t)
	expectPage(t, con.get(t, "/brands", sid), fiber.StatusOK, "Apple")

	expectRedirect(t, con.post(t, "/logout", sid, nil), "/login")
	expectRedirect(t, con.get(t, "/brands", sid), "/login")
}

func TestSandboxOutageShowsLoginError(t *testing.T) {
	con := newConsole(t)
	con.faults.Set("server_error")

	resp := con.post(t, "/login", "", url.Values{"username": {"admin"}, "password": {"admin123"}})
	expectPage(t, resp, fiber.StatusBadGateway, "Sign-in failed")
	if extractCookie(resp, "sid") == "" {
		t.Fatal("expected a session cookie even on failure")
	}
}

package handlers_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"storeadmin/internal/http/handlers"
)

// friendly error surface, no internal leakage
func TestErrorHandlerFriendlyMessage(t *testing.T) {
	app := fiber.New(fiber.Config{
		Views:        handlers.NewEngine("../../web/templates", nil),
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "api timeout: secret trace")
	})

	var status int
	var body string
	entries := captureLogs(t, func() {
		r, err := app.Test(httptest.NewRequest("GET", "/err", nil))
		if err != nil {
			t.Fatalf("test request failed: %v", err)
		}
		status, body = r.StatusCode, readBody(r)
	})
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if !strings.Contains(body, "Something went wrong") {
		t.Fatalf("friendly message missing; body=%s", body)
	}
	if strings.Contains(body, "api timeout") || strings.Contains(body, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", body)
	}
	e, ok := findAction(entries, "server.error")
	if !ok {
		t.Fatal("server.error not logged")
	}
	if e.ReqID == "" {
		t.Fatal("server.error missing req_id")
	}
}

func TestAuthLogging(t *testing.T) {
	con := newConsole(t)

	failLogs := captureLogs(t, func() {
		con.post(t, "/login", "", url.Values{"username": {"admin"}, "password": {"badpass!"}})
	})
	e, ok := findAction(failLogs, "auth.login.fail")
	if !ok {
		t.Fatalf("auth.login.fail not logged: %+v", failLogs)
	}
	if e.Kind != "security" || e.Fields["user"] != "admin" {
		t.Fatalf("unexpected fail entry: %+v", e)
	}
	if _, leaked := e.Fields["password"]; leaked {
		t.Fatal("password must never be logged")
	}

	okLogs := captureLogs(t, func() { con.login(t) })
	e, ok = findAction(okLogs, "auth.login.success")
	if !ok {
		t.Fatalf("auth.login.success not logged: %+v", okLogs)
	}
	if e.Kind != "audit" || e.Fields["user"] != "admin" {
		t.Fatalf("unexpected success entry: %+v", e)
	}
}

func TestWritesAreAudited(t *testing.T) {
	con := newConsole(t)
	sid := con.login(t)

	entries := captureLogs(t, func() {
		con.post(t, "/brands", sid, url.Values{"name": {"Nokia"}})
		con.get(t, "/brands", "forged-session")
	})
	e, ok := findAction(entries, "brand.create")
	if !ok || e.Kind != "audit" || e.Fields["name"] != "Nokia" {
		t.Fatalf("brand.create audit missing: %+v", entries)
	}
	if _, ok := findAction(entries, "access.denied"); !ok {
		t.Fatalf("access.denied not logged: %+v", entries)
	}
}

func TestLoginBodySizeLimit(t *testing.T) {
	con := newConsole(t)
	huge := strings.Repeat("A", (1<<20)+10)
	req := httptest.NewRequest("POST", "/login", strings.NewReader("username="+huge))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := con.app.Test(req, -1)
	// fasthttp may refuse the body before a response exists
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversize, got %d", resp.StatusCode)
	}
}

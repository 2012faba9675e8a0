package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"storeadmin/internal/apiclient"
	"storeadmin/internal/config"
	"storeadmin/internal/http/handlers"
	applog "storeadmin/internal/log"
	"storeadmin/internal/repos"
	"storeadmin/internal/sandbox"
)

// console is the admin app wired to a seeded sandbox API.
type console struct {
	app    *fiber.App
	faults *sandbox.Faults
	csrf   string
}

func newConsole(t *testing.T) *console {
	t.Helper()
	gin.SetMode(gin.TestMode)
	faults := sandbox.NewFaults(nil)
	srv, err := sandbox.NewSeeded(faults)
	if err != nil {
		t.Fatalf("seed sandbox: %v", err)
	}
	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	client := apiclient.New(ts.URL)
	cfg := config.Config{ProductPageSize: 50, ColorPageSize: 20}
	deps := handlers.NewDeps(cfg, client, repos.NewSQLSessionRepo(db))

	app := fiber.New(fiber.Config{
		Views:        handlers.NewEngine("../../web/templates", client),
		BodyLimit:    1 << 20,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	handlers.Routes(app, deps)

	con := &console{app: app, faults: faults}
	resp := con.do(t, httptest.NewRequest("GET", "/login", nil))
	con.csrf = extractCookie(resp, "csrf_")
	if con.csrf == "" {
		t.Fatal("csrf token missing")
	}
	return con
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// do runs req without the default one second deadline; the sandbox hashes passwords.
func (con *console) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := con.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func (con *console) get(t *testing.T, path, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return con.do(t, req)
}

func (con *console) post(t *testing.T, path, sid string, form url.Values) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", con.csrf)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: con.csrf})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return con.do(t, req)
}

// postMultipart sends fields plus one file per entry in files.
func (con *console) postMultipart(t *testing.T, path, sid string, fields map[string]string, fileField string, files map[string][]byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("csrf", con.csrf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile(fileField, name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(content)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: con.csrf})
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	return con.do(t, req)
}

// login signs in as the seeded admin and returns the session id.
func (con *console) login(t *testing.T) string {
	t.Helper()
	resp := con.post(t, "/login", "", url.Values{"username": {"admin"}, "password": {"admin123"}})
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("login: expected 302, got %d body=%s", resp.StatusCode, readBody(resp))
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("login did not set sid")
	}
	return sid
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func expectRedirect(t *testing.T, resp *http.Response, to string) {
	t.Helper()
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 to %s, got %d body=%s", to, resp.StatusCode, readBody(resp))
	}
	if loc := resp.Header.Get("Location"); loc != to {
		t.Fatalf("expected redirect to %s, got %s", to, loc)
	}
}

func expectPage(t *testing.T, resp *http.Response, status int, wants ...string) string {
	t.Helper()
	body := readBody(resp)
	if resp.StatusCode != status {
		t.Fatalf("expected %d, got %d body=%s", status, resp.StatusCode, body)
	}
	for _, w := range wants {
		if !strings.Contains(body, w) {
			t.Fatalf("page missing %q; body=%s", w, body)
		}
	}
	return body
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	ReqID  string         `json:"req_id"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.buf.Write(p)
}

// captureLogs collects the events written while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var w lockedWriter
	restore := applog.SetOutput(&w)
	func() {
		defer restore()
		fn()
	}()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}

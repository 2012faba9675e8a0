package sandbox

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := NewSeeded(nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func do(t *testing.T, s *Server, method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func login(t *testing.T, s *Server) string {
	t.Helper()
	body := bytes.NewBufferString(`{"userName":"admin","password":"admin123"}`)
	w := do(t, s, http.MethodPost, "/Account/login", "", body, "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("login code %v: %s", w.Code, w.Body.String())
	}
	var env struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil || env.Data == "" {
		t.Fatalf("bad login body: %s", w.Body.String())
	}
	return env.Data
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := setupServer(t)
	body := bytes.NewBufferString(`{"userName":"admin","password":"nope"}`)
	w := do(t, s, http.MethodPost, "/Account/login", "", body, "application/json")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %v", w.Code)
	}
}

func TestWritesRequireToken(t *testing.T) {
	s := setupServer(t)
	w := do(t, s, http.MethodPost, "/Brand/add-brand?BrandName=Nokia", "", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %v", w.Code)
	}
	w = do(t, s, http.MethodGet, "/Brand/get-brands", "", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("reads are public, got %v", w.Code)
	}
}

func TestBrandFlow(t *testing.T) {
	s := setupServer(t)
	tok := login(t, s)

	w := do(t, s, http.MethodPost, "/Brand/add-brand?BrandName=Nokia", tok, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("create code %v", w.Code)
	}
	w = do(t, s, http.MethodPut, "/Brand/update-brand?BrandId=4&BrandName=HMD", tok, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("update code %v", w.Code)
	}
	w = do(t, s, http.MethodGet, "/Brand/get-brands", "", nil, "")
	var env struct {
		Data []struct {
			ID   int    `json:"brandId"`
			Name string `json:"brandName"`
		} `json:"data"`
		TotalRecord int `json:"totalRecord"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.TotalRecord != 4 || env.Data[3].Name != "HMD" {
		t.Fatalf("unexpected list: %+v", env)
	}
	w = do(t, s, http.MethodDelete, "/Brand/delete-brand?id=4", tok, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete code %v", w.Code)
	}
	w = do(t, s, http.MethodDelete, "/Brand/delete-brand?id=4", tok, nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete code %v", w.Code)
	}
}

func TestValidationReturnsErrors(t *testing.T) {
	s := setupServer(t)
	tok := login(t, s)
	w := do(t, s, http.MethodPost, "/Color/add-color?ColorName=", tok, nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %v", w.Code)
	}
	var env struct {
		Errors []string `json:"errors"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	if len(env.Errors) == 0 {
		t.Fatalf("expected errors in body: %s", w.Body.String())
	}
}

func TestCategoryMultipartWithImage(t *testing.T) {
	s := setupServer(t)
	tok := login(t, s)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("CategoryName", "Garden")
	fw, _ := mw.CreateFormFile("CategoryImage", "garden.png")
	_, _ = fw.Write([]byte("\x89PNG\r\n\x1a\nfake"))
	_ = mw.Close()

	w := do(t, s, http.MethodPost, "/Category/add-category", tok, &buf, mw.FormDataContentType())
	if w.Code != http.StatusOK {
		t.Fatalf("create code %v: %s", w.Code, w.Body.String())
	}
	var env struct {
		Data struct {
			ID    int    `json:"id"`
			Image string `json:"categoryImage"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Image == "" {
		t.Fatal("expected stored image name")
	}
	w = do(t, s, http.MethodGet, "/images/"+env.Data.Image, "", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("image code %v", w.Code)
	}
}

func TestProductListFilters(t *testing.T) {
	s := setupServer(t)
	w := do(t, s, http.MethodGet, "/Product/get-products?MinPrice=100&PageNumber=1&PageSize=10", "", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list code %v", w.Code)
	}
	var env struct {
		Data struct {
			Products []struct {
				Name string `json:"productName"`
			} `json:"products"`
			Brands      []any `json:"brands"`
			MinMaxPrice struct {
				MinPrice json.Number `json:"minPrice"`
			} `json:"minMaxPrice"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data.Products) != 2 {
		t.Fatalf("want 2 products over 100, got %+v", env.Data.Products)
	}
	if len(env.Data.Brands) != 3 {
		t.Fatalf("brands should be unfiltered, got %d", len(env.Data.Brands))
	}
}

func TestFaultInjection(t *testing.T) {
	s := setupServer(t)
	tok := login(t, s)

	w := do(t, s, http.MethodPost, "/admin/inject-error", "", bytes.NewBufferString(`{"mode":"fail_writes"}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("inject code %v", w.Code)
	}
	w = do(t, s, http.MethodPost, "/Brand/add-brand?BrandName=Nokia", tok, nil, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %v", w.Code)
	}
	w = do(t, s, http.MethodGet, "/Brand/get-brands", "", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("reads should pass in fail_writes, got %v", w.Code)
	}

	w = do(t, s, http.MethodPost, "/admin/inject-error", "", bytes.NewBufferString(`{"mode":"bogus"}`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for unknown mode, got %v", w.Code)
	}
	w = do(t, s, http.MethodPost, "/admin/reset", "", nil, "")
	if w.Code != http.StatusOK || s.faults.Mode() != ModeNormal {
		t.Fatalf("reset failed: %v %s", w.Code, s.faults.Mode())
	}
}

func TestFailReadsLetsWritesThrough(t *testing.T) {
	s := setupServer(t)
	tok := login(t, s)
	if !s.faults.Set(ModeFailReads) {
		t.Fatal("fail_reads rejected")
	}

	w := do(t, s, http.MethodPost, "/Brand/add-brand?BrandName=Nokia", tok, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("writes should pass in fail_reads, got %v body=%s", w.Code, w.Body.String())
	}
	w = do(t, s, http.MethodGet, "/Brand/get-brands", "", nil, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %v", w.Code)
	}

	s.faults.Reset()
	w = do(t, s, http.MethodGet, "/Brand/get-brands", "", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Nokia") {
		t.Fatalf("accepted write missing after reset: %v %s", w.Code, w.Body.String())
	}
}

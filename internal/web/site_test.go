package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServeIndex(t *testing.T) {
	h, err := NewHandler(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeIndex(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="lead-form"`) {
		t.Error("expected the lead form on the page")
	}
	if !strings.Contains(body, "/static/app.js") {
		t.Error("expected the page to load the form script")
	}
}

func TestServeIndexUnknownPathIs404(t *testing.T) {
	h, err := NewHandler(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeIndex(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestServeAssets(t *testing.T) {
	h, err := NewHandler(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/static/app.js", nil)
	rec := httptest.NewRecorder()
	h.ServeAssets(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age") {
		t.Fatalf("expected cache header on assets, got %q", cc)
	}
	if !strings.Contains(rec.Body.String(), "/api/contact") {
		t.Error("expected the script to target the contact endpoint")
	}
}

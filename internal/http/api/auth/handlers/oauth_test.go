package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newOAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOAuthHandler()
	r.GET("/api/auth/mock/:provider", h.Consent)
	return r
}

func TestConsentPageContents(t *testing.T) {
	r := newOAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/mock/google", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}

	page := w.Body.String()
	for _, want := range []string{"oauth-success", "Google Login", "window.location.origin", "#DB4437"} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestConsentPageGenericProvider(t *testing.T) {
	r := newOAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/mock/facebook", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	page := w.Body.String()
	if !strings.Contains(page, "Facebook Login") {
		t.Fatal("provider name not title-cased")
	}
	if !strings.Contains(page, "#333") {
		t.Fatal("generic button color missing")
	}
}

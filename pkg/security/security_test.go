package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORSAllowListSwap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	origins := NewOriginList([]string{"http://localhost:3000"})

	r := gin.New()
	r.Use(CORS(origins))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	get := func(origin string) string {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Header().Get("Access-Control-Allow-Origin")
	}

	if got := get("http://localhost:3000"); got != "http://localhost:3000" {
		t.Fatalf("allowed origin header = %q", got)
	}
	if got := get("https://evil.example"); got != "" {
		t.Fatalf("unlisted origin got header %q", got)
	}

	origins.Replace([]string{"https://app.example"})
	if got := get("http://localhost:3000"); got != "" {
		t.Fatalf("removed origin still allowed: %q", got)
	}
	if got := get("https://app.example"); got != "https://app.example" {
		t.Fatalf("new origin header = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(NewOriginList(nil)))
	r.OPTIONS("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/x", handlers...)
	r.OPTIONS("/x", handlers...)
	return r
}

func TestCORSAllowList(t *testing.T) {
	r := newEngine(CORSMiddleware([]string{"https://salon.test"}))

	tests := []struct {
		origin string
		want   string
	}{
		{"https://salon.test", "https://salon.test"},
		{"https://evil.test", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", tt.origin)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Fatalf("origin %s: allow = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(CORSMiddleware([]string{"*"}))

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://any.test")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthAndRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour, time.Minute)
	r := newEngine(AuthMiddleware(tokens), RequireAdmin())

	adminToken, _, err := tokens.Issue("a1", "owner@salon.test", models.RoleBusinessAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	clientToken, _, err := tokens.Issue("c1", "ana@salon.test", models.RoleClient)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"client", "Bearer " + clientToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

package middleware

import (
	"KingdomWar/internal/shared/security"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAuthEngine(enabled bool, gotUID *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(Auth(enabled))
	e.GET("/me", func(c *gin.Context) {
		*gotUID = UIDFrom(c)
		c.Status(http.StatusOK)
	})
	return e
}

func TestAuth_未启用直接放行(t *testing.T) {
	var uid int
	e := newAuthEngine(false, &uid)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if w.Code != http.StatusOK || uid != 0 {
		t.Fatalf("期望放行且 uid==0, code=%d uid=%d", w.Code, uid)
	}
}

func TestAuth_缺少token返回401(t *testing.T) {
	var uid int
	e := newAuthEngine(true, &uid)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401, got=%d", w.Code)
	}
}

func TestAuth_合法token写入uid(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	token, err := security.Award(42)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	var uid int
	e := newAuthEngine(true, &uid)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	e.ServeHTTP(w, req)
	if w.Code != http.StatusOK || uid != 42 {
		t.Fatalf("期望 200 且 uid==42, code=%d uid=%d", w.Code, uid)
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kunal7725/QR-Attendence/config"
	"github.com/Kunal7725/QR-Attendence/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubChecker struct {
	revoked map[string]bool
	err     error
}

func (s *stubChecker) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], s.err
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: time.Hour,
	})
}

func setupAuthRouter(mgr *jwt.Manager, checker TokenChecker, roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/protected", JWTAuth(mgr, checker, zap.NewNop()), RoleAuth(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account_id": c.GetString(CtxAccountID)})
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	mgr := newTestJWT()
	r := setupAuthRouter(mgr, &stubChecker{}, jwt.RoleAdmin)

	token, _ := mgr.GenerateAccessToken("admin-1", jwt.RoleAdmin)
	w := doGet(r, token)
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d: %s", w.Code, w.Body.String())
	}
}

func TestJWTAuth_MissingOrMalformed(t *testing.T) {
	r := setupAuthRouter(newTestJWT(), &stubChecker{}, jwt.RoleAdmin)

	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("缺少认证头期望 401，实际 %d", w.Code)
	}
	if w := doGet(r, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("非法 Token 期望 401，实际 %d", w.Code)
	}
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	mgr := newTestJWT()
	token, _ := mgr.GenerateAccessToken("admin-1", jwt.RoleAdmin)
	claims, _ := mgr.ParseToken(token)
	r := setupAuthRouter(mgr, &stubChecker{revoked: map[string]bool{claims.ID: true}}, jwt.RoleAdmin)

	if w := doGet(r, token); w.Code != http.StatusUnauthorized {
		t.Errorf("已注销 Token 期望 401，实际 %d", w.Code)
	}
}

func TestJWTAuth_BlacklistUnavailable(t *testing.T) {
	mgr := newTestJWT()
	token, _ := mgr.GenerateAccessToken("admin-1", jwt.RoleAdmin)
	r := setupAuthRouter(mgr, &stubChecker{err: errors.New("redis down")}, jwt.RoleAdmin)

	if w := doGet(r, token); w.Code != http.StatusInternalServerError {
		t.Errorf("黑名单不可用期望 500，实际 %d", w.Code)
	}
}

func TestRoleAuth_WrongRole(t *testing.T) {
	mgr := newTestJWT()
	r := setupAuthRouter(mgr, &stubChecker{}, jwt.RoleAdmin)

	token, _ := mgr.GenerateAccessToken("student-1", jwt.RoleStudent)
	if w := doGet(r, token); w.Code != http.StatusForbidden {
		t.Errorf("学生访问管理员接口期望 403，实际 %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(requestIDHeader) != "trace-123" || w.Body.String() != "trace-123" {
		t.Errorf("应沿用传入的 Request-ID，实际 header=%s body=%s", w.Header().Get(requestIDHeader), w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get(requestIDHeader)) != 36 {
		t.Errorf("缺失时应生成 UUID，实际 %q", w.Header().Get(requestIDHeader))
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("预检请求期望 204，实际 %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("允许的来源应回写，实际 %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("未允许的来源不应设置 CORS 头")
	}
}

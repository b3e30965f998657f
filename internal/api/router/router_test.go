package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Kunal7725/QR-Attendence/config"
	"github.com/Kunal7725/QR-Attendence/internal/api/handler"
	"github.com/Kunal7725/QR-Attendence/internal/service"
	"github.com/Kunal7725/QR-Attendence/pkg/jwt"
)

func testConfig(requireAuth bool) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 8000, MaxBodyBytes: 1 << 20, CORS: config.CORSConfig{AllowOrigins: []string{"*"}}},
		Auth:    config.AuthConfig{JWTSecret: "router-test-secret-key-2026", AccessTokenTTL: time.Hour},
		Feature: config.FeatureConfig{RequireAuth: requireAuth},
	}
}

// 路由层测试只覆盖不会进入 Service 的路径，因此 Service 全部为空
func setup(requireAuth bool) (http.Handler, *jwt.Manager) {
	cfg := testConfig(requireAuth)
	jwtMgr := jwt.NewManager(&cfg.Auth)
	h := handler.NewHandler(&service.Service{})
	return Setup(cfg, h, jwtMgr, nil, nil, zap.NewNop()), jwtMgr
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	r, _ := setup(false)

	w := do(r, "GET", "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["message"] != "QR Backend API is running" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestHealth_NoDatabase(t *testing.T) {
	r, _ := setup(false)

	w := do(r, "GET", "/health", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without db, got %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["db"] != "unavailable" || body["redis"] != "unavailable" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setup(false)
	do(r, "GET", "/", "")

	w := do(r, "GET", "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "qr_attendance_http_requests_total") {
		t.Error("expected http request counter in exposition")
	}
}

func TestRequireAuth_Disabled_NoTokenNeededForValidation(t *testing.T) {
	r, _ := setup(false)

	// 缺少 adminId 在进入 Service 前即返回 400
	w := do(r, "GET", "/api/admin/stats", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRequireAuth_Enabled(t *testing.T) {
	r, jwtMgr := setup(true)

	w := do(r, "GET", "/api/admin/pending-students", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}

	studentToken, err := jwtMgr.GenerateAccessToken("0c9e8d7b-6a54-4321-8fed-cba987654321", jwt.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	w = do(r, "GET", "/api/admin/pending-students", studentToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("student on admin route: expected 403, got %d", w.Code)
	}

	adminToken, _ := jwtMgr.GenerateAccessToken("7a1f4c0e-2b8d-4e57-9f0a-3c6d1e2b4a51", jwt.RoleAdmin)
	w = do(r, "GET", "/api/student/stats/0c9e8d7b-6a54-4321-8fed-cba987654321", adminToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("admin on student route: expected 403, got %d", w.Code)
	}

	// 登录接口始终开放，空请求体在绑定阶段返回 400
	w = do(r, "POST", "/api/student/login", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("login should stay open: expected 400, got %d", w.Code)
	}
}

func TestLogout_AlwaysRequiresToken(t *testing.T) {
	r, _ := setup(false)

	w := do(r, "POST", "/api/auth/logout", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	r, _ := setup(false)

	if w := do(r, "GET", "/api/nope", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

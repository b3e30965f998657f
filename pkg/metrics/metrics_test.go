package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestObserveScan(t *testing.T) {
	before := testutil.ToFloat64(scans.WithLabelValues(ScanExpired))
	ObserveScan(ScanExpired)
	after := testutil.ToFloat64(scans.WithLabelValues(ScanExpired))
	if after-before != 1 {
		t.Errorf("期望计数 +1，实际 %v -> %v", before, after)
	}
}

func TestMiddleware_AndHandler(t *testing.T) {
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	if !strings.Contains(body, `qr_attendance_http_requests_total{method="GET",route="/ping",status="200"}`) {
		t.Errorf("指标输出缺少 /ping 请求计数:\n%s", body)
	}
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	m := New()

	m.RequestsTotal.WithLabelValues("GET", "200").Inc()
	m.RequestDuration.WithLabelValues("GET").Observe(0.05)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	output := string(body)

	if !strings.Contains(output, "lifelog_http_requests_total") {
		t.Error("output missing lifelog_http_requests_total")
	}
	if !strings.Contains(output, "lifelog_http_request_duration_seconds") {
		t.Error("output missing lifelog_http_request_duration_seconds")
	}
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// 独自レジストリなので複数生成してもpanicしない
	_ = New()
	_ = New()
}

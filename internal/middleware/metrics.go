package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/hitoshi/lifelog/internal/metrics"
)

// NewMetricsMiddleware はリクエスト数とレイテンシを記録するミドルウェアを返す。
// パスはカーディナリティ爆発を避けるためラベルに含めない。
func NewMetricsMiddleware(m *metrics.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			m.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.statusCode)).Inc()
			m.RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

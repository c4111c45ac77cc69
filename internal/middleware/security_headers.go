package middleware

import "net/http"

// サーバーレンダリングHTML向けのCSP。スタイルは自己ホストのCSS、
// スクリプトはポモドーロタイマーのインラインJSのみを許可する。
const contentSecurityPolicy = "default-src 'self'; " +
	"style-src 'self'; " +
	"script-src 'self' 'unsafe-inline'; " +
	"img-src 'self'; " +
	"form-action 'self' https://github.com https://accounts.google.com; " +
	"frame-ancestors 'none'"

// NewSecurityHeadersMiddleware はセキュリティ関連のHTTPレスポンスヘッダーを付与するミドルウェアを返す。
func NewSecurityHeadersMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
			next.ServeHTTP(w, r)
		})
	}
}

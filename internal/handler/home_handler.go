package handler

import (
	"net/http"

	"github.com/hitoshi/lifelog/internal/middleware"
)

// HomeHandler はトップページとポモドーロタイマーのハンドラー。
type HomeHandler struct {
	base
	service AuthServiceInterface
}

// NewHomeHandler はHomeHandlerを生成する。
func NewHomeHandler(b base, service AuthServiceInterface) *HomeHandler {
	return &HomeHandler{base: b, service: service}
}

// Home はトップページを表示する。ログインの有無どちらでも閲覧できる。
// GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	// セッションがあればナビゲーション表示用にユーザーを解決する
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if user, err := h.service.GetCurrentUser(r.Context(), cookie.Value); err == nil && user != nil {
			r = r.WithContext(middleware.ContextWithUserID(r.Context(), user.ID))
		}
	}
	h.render(w, r, "home", nil)
}

// Pomodoro はポモドーロタイマーを表示する。
// GET /pomodoro
func (h *HomeHandler) Pomodoro(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pomodoro", nil)
}

package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/lifelog/internal/user"
)

// UserServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	GetProfile(ctx context.Context, userID string) (*user.Profile, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword, confirmPassword string) error
	Withdraw(ctx context.Context, userID string) error
}

// ProfileHandler はプロフィール関連のHTTPハンドラー。
type ProfileHandler struct {
	base
	service      UserServiceInterface
	cookieSecure bool
	cookieDomain string
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(b base, service UserServiceInterface, cookieSecure bool, cookieDomain string) *ProfileHandler {
	return &ProfileHandler{
		base:         b,
		service:      service,
		cookieSecure: cookieSecure,
		cookieDomain: cookieDomain,
	}
}

// Show はプロフィール画面を表示する。
// GET /profile
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/")
		return
	}

	h.render(w, r, "profile", profile)
}

// ShowEdit はパスワード変更フォームを表示する。
// GET /profile/edit
func (h *ProfileHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "profile_edit", nil)
}

// Edit はパスワード変更を処理する。
// POST /profile/edit
func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := h.service.ChangePassword(
		r.Context(),
		userID,
		r.PostFormValue("current_password"),
		r.PostFormValue("new_password"),
		r.PostFormValue("confirm_password"),
	)
	if err != nil {
		h.redirectWithError(w, r, err, "/profile/edit")
		return
	}

	h.redirectWithSuccess(w, r, "パスワードを変更しました", "/profile")
}

// Delete はアカウントを削除し、セッションCookieを破棄する。
// POST /profile/delete
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Withdraw(r.Context(), userID); err != nil {
		h.redirectWithError(w, r, err, "/profile")
		return
	}

	http.SetCookie(w, sessionCookie("", -1, h.cookieSecure, h.cookieDomain))
	h.redirectWithSuccess(w, r, "アカウントを削除しました", "/login")
}

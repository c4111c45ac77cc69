// Package handler はHTTPハンドラーを提供する。
// 画面遷移型アプリのため、処理結果はフラッシュメッセージ付きのリダイレクトで返す。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/lifelog/internal/flash"
	"github.com/hitoshi/lifelog/internal/middleware"
	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/view"
)

// UserFinder は描画用にユーザーを取得するインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// base は各ハンドラーが共有する描画まわりの依存をまとめる。
type base struct {
	renderer   *view.Renderer
	flashStore *flash.Store
	userFinder UserFinder
}

// render は共通データ（ユーザー・フラッシュ・CSRFトークン）を組み立ててページを描画する。
func (b *base) render(w http.ResponseWriter, r *http.Request, page string, content any) {
	data := view.Data{
		Flash:     b.flashStore.Pop(w, r),
		CSRFToken: middleware.CSRFTokenFromContext(r.Context()),
		Content:   content,
	}

	if userID, err := middleware.UserIDFromContext(r.Context()); err == nil {
		user, err := b.userFinder.FindByID(r.Context(), userID)
		if err != nil {
			slog.Error("failed to load user for rendering", slog.String("error", err.Error()))
		} else {
			data.User = user
		}
	}

	if err := b.renderer.Render(w, page, data); err != nil {
		slog.Error("failed to render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// redirectWithError はエラーをフラッシュメッセージに変換してリダイレクトする。
// AppErrorは利用者向けメッセージをそのまま表示し、それ以外は汎用メッセージに落とす。
func (b *base) redirectWithError(w http.ResponseWriter, r *http.Request, err error, location string) {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		b.flashStore.Set(w, flash.KindError, appErr.Message)
	} else {
		slog.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		b.flashStore.Set(w, flash.KindError, "処理に失敗しました。時間をおいて再度お試しください")
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// redirectWithSuccess は成功メッセージ付きでリダイレクトする。
func (b *base) redirectWithSuccess(w http.ResponseWriter, r *http.Request, text, location string) {
	b.flashStore.Set(w, flash.KindSuccess, text)
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// requireUserID はコンテキストからユーザーIDを取り出す。
// セッションミドルウェア配下でのみ呼ばれる前提で、取れない場合はログインへ送る。
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return "", false
	}
	return userID, true
}

// sessionCookie はセッションCookieを組み立てる。maxAgeに-1を渡すと破棄になる。
func sessionCookie(value string, maxAge int, secure bool, domain string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

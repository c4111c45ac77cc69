package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/lifelog/internal/auth"
	"github.com/hitoshi/lifelog/internal/flash"
	"github.com/hitoshi/lifelog/internal/middleware"
	"github.com/hitoshi/lifelog/internal/model"
)

const oauthStateCookie = "oauth_state"

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (*model.Session, error)
	Provider(name string) (auth.OAuthProvider, bool)
	HandleCallback(ctx context.Context, provider, code string) (*model.Session, error)
	Logout(ctx context.Context, sessionID string) error
	GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
	GitHubEnabled bool
	GoogleEnabled bool
}

// LoginContent はログイン画面の表示データ。
type LoginContent struct {
	GitHubEnabled bool
	GoogleEnabled bool
}

// AuthHandler はログイン・登録・OAuth認証のHTTPハンドラー。
type AuthHandler struct {
	base
	service AuthServiceInterface
	config  AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(b base, service AuthServiceInterface, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		base:    b,
		service: service,
		config:  config,
	}
}

// ShowLogin はログインフォームを表示する。
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	// ログイン済みならホームへ
	if h.currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, "login", LoginContent{
		GitHubEnabled: h.config.GitHubEnabled,
		GoogleEnabled: h.config.GoogleEnabled,
	})
}

// Login はローカル認証を処理する。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	session, err := h.service.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		h.redirectWithError(w, r, err, "/login")
		return
	}

	http.SetCookie(w, sessionCookie(session.ID, h.config.SessionMaxAge, h.config.CookieSecure, h.config.CookieDomain))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowRegister は登録フォームを表示する。
// GET /register
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if h.currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, "register", nil)
}

// Register は新規ユーザー登録を処理する。
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := h.service.Register(r.Context(), r.PostFormValue("username"), r.PostFormValue("password")); err != nil {
		h.redirectWithError(w, r, err, "/register")
		return
	}

	h.redirectWithSuccess(w, r, "アカウントを作成しました。ログインしてください", "/login")
}

// Logout はセッションを破棄してホームへ戻す。
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if logoutErr := h.service.Logout(r.Context(), cookie.Value); logoutErr != nil {
			slog.Error("failed to logout", slog.String("error", logoutErr.Error()))
			// ログアウト失敗してもCookieはクリアする
		}
	}

	http.SetCookie(w, sessionCookie("", -1, h.config.CookieSecure, h.config.CookieDomain))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// OAuthLogin は外部IdPの認可フローを開始する。
// GET /auth/{provider}
func (h *AuthHandler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")
	provider, ok := h.service.Provider(providerName)
	if !ok {
		h.flashStore.Set(w, flash.KindError, model.NewProviderNotConfiguredError(providerName).Message)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		slog.Error("failed to generate oauth state", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// stateをCookieに保存（CSRF対策）
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10分
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, provider.GetLoginURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallback は外部IdPからのコールバックを処理する。
// GET /auth/{provider}/callback?code=xxx&state=yyy
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")

	// 1. stateの検証（CSRF対策）
	state := r.URL.Query().Get("state")
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || stateCookie.Value != state {
		slog.Warn("oauth state mismatch",
			slog.String("provider", providerName),
		)
		http.Error(w, "invalid state parameter", http.StatusBadRequest)
		return
	}

	// stateクッキーを削除
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	// 2. 認可コードの取得
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	// 3. 認証処理
	session, err := h.service.HandleCallback(r.Context(), providerName, code)
	if err != nil {
		slog.Error("oauth callback failed",
			slog.String("provider", providerName),
			slog.String("error", err.Error()),
		)
		h.flashStore.Set(w, flash.KindError, "外部アカウントでのログインに失敗しました")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// 4. セッションCookieを設定（HTTP Only）
	http.SetCookie(w, sessionCookie(session.ID, h.config.SessionMaxAge, h.config.CookieSecure, h.config.CookieDomain))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// currentUser はセッションCookieからログイン中のユーザーを返す。未ログインはnil。
func (h *AuthHandler) currentUser(r *http.Request) *model.User {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	user, err := h.service.GetCurrentUser(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return user
}

// generateState はCSRF対策用のランダムなstate値を生成する。
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

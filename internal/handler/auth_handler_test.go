package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/lifelog/internal/auth"
	"github.com/hitoshi/lifelog/internal/flash"
	"github.com/hitoshi/lifelog/internal/middleware"
	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/view"
)

// --- モック定義 ---

type mockAuthService struct {
	registerFn       func(ctx context.Context, username, password string) error
	loginFn          func(ctx context.Context, username, password string) (*model.Session, error)
	providerFn       func(name string) (auth.OAuthProvider, bool)
	handleCallbackFn func(ctx context.Context, provider, code string) (*model.Session, error)
	logoutFn         func(ctx context.Context, sessionID string) error
	getCurrentUserFn func(ctx context.Context, sessionID string) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, password string) error {
	if m.registerFn != nil {
		return m.registerFn(ctx, username, password)
	}
	return nil
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*model.Session, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return nil, nil
}

func (m *mockAuthService) Provider(name string) (auth.OAuthProvider, bool) {
	if m.providerFn != nil {
		return m.providerFn(name)
	}
	return nil, false
}

func (m *mockAuthService) HandleCallback(ctx context.Context, provider, code string) (*model.Session, error) {
	if m.handleCallbackFn != nil {
		return m.handleCallbackFn(ctx, provider, code)
	}
	return nil, nil
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if m.getCurrentUserFn != nil {
		return m.getCurrentUserFn(ctx, sessionID)
	}
	return nil, nil
}

type mockUserFinder struct {
	findByIDFn func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserFinder) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

type mockOAuthProvider struct {
	loginURL string
}

func (m *mockOAuthProvider) GetLoginURL(state string) string {
	return m.loginURL + "?state=" + state
}

func (m *mockOAuthProvider) ExchangeCode(_ context.Context, _ string) (*auth.OAuthUserInfo, error) {
	return nil, nil
}

var _ AuthServiceInterface = (*mockAuthService)(nil)
var _ UserFinder = (*mockUserFinder)(nil)
var _ auth.OAuthProvider = (*mockOAuthProvider)(nil)

func newTestBase(t *testing.T) base {
	t.Helper()
	renderer, err := view.New()
	if err != nil {
		t.Fatal(err)
	}
	return base{
		renderer:   renderer,
		flashStore: flash.NewStore("test-secret", false, ""),
		userFinder: &mockUserFinder{},
	}
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// --- Login ---

func TestLogin_Success_SetsSessionCookieAndRedirects(t *testing.T) {
	service := &mockAuthService{
		loginFn: func(ctx context.Context, username, password string) (*model.Session, error) {
			return &model.Session{ID: "sess-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	h := NewAuthHandler(newTestBase(t), service, AuthHandlerConfig{SessionMaxAge: 3600})

	req := postForm("/login", url.Values{"username": {"alice"}, "password": {"correct-horse"}})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Errorf("Location = %q, want /", got)
	}

	var sessionSet bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value == "sess-1" {
			sessionSet = true
			if !c.HttpOnly {
				t.Error("session cookie must be HttpOnly")
			}
		}
	}
	if !sessionSet {
		t.Error("session cookie was not set")
	}
}

func TestLogin_InvalidCredentials_RedirectsBackWithFlash(t *testing.T) {
	service := &mockAuthService{
		loginFn: func(ctx context.Context, username, password string) (*model.Session, error) {
			return nil, model.NewInvalidCredentialsError()
		},
	}
	h := NewAuthHandler(newTestBase(t), service, AuthHandlerConfig{})

	req := postForm("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/login" {
		t.Errorf("Location = %q, want /login", got)
	}

	var flashSet, sessionSet bool
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case "lifelog_flash":
			flashSet = c.Value != ""
		case middleware.SessionCookieName:
			sessionSet = c.Value != ""
		}
	}
	if !flashSet {
		t.Error("flash cookie was not set")
	}
	if sessionSet {
		t.Error("session cookie must not be set on failed login")
	}
}

// --- Register ---

func TestRegister_Success_RedirectsToLogin(t *testing.T) {
	registered := false
	service := &mockAuthService{
		registerFn: func(ctx context.Context, username, password string) error {
			registered = true
			return nil
		},
	}
	h := NewAuthHandler(newTestBase(t), service, AuthHandlerConfig{})

	req := postForm("/register", url.Values{"username": {"alice"}, "password": {"correct-horse"}})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if !registered {
		t.Error("Register was not called")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("response = %d %q, want 303 /login", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRegister_DuplicateUsername_RedirectsBack(t *testing.T) {
	service := &mockAuthService{
		registerFn: func(ctx context.Context, username, password string) error {
			return model.NewUsernameTakenError(username)
		},
	}
	h := NewAuthHandler(newTestBase(t), service, AuthHandlerConfig{})

	req := postForm("/register", url.Values{"username": {"alice"}, "password": {"correct-horse"}})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/register" {
		t.Errorf("response = %d %q, want 303 /register", rec.Code, rec.Header().Get("Location"))
	}
}

// --- Logout ---

func TestLogout_ClearsSessionCookie(t *testing.T) {
	loggedOut := ""
	service := &mockAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	h := NewAuthHandler(newTestBase(t), service, AuthHandlerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if loggedOut != "sess-1" {
		t.Errorf("logged out session = %q, want sess-1", loggedOut)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie was not cleared")
	}
}

// --- OAuth ---

func TestOAuthLogin_RedirectsToProviderWithState(t *testing.T) {
	service := &mockAuthService{
		providerFn: func(name string) (auth.OAuthProvider, bool) {
			if name != "github" {
				return nil, false
			}
			return &mockOAuthProvider{loginURL: "https://github.example.com/authorize"}, true
		},
	}
	h := NewAuthHandler(newTestBase(t), service, AuthHandlerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/auth/github", nil)
	req = withChiParam(req, "provider", "github")
	rec := httptest.NewRecorder()
	h.OAuthLogin(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "https://github.example.com/authorize?state=") {
		t.Errorf("Location = %q", location)
	}

	var stateCookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == oauthStateCookie {
			stateCookie = c.Value
		}
	}
	if stateCookie == "" {
		t.Fatal("state cookie was not set")
	}
	if !strings.HasSuffix(location, stateCookie) {
		t.Error("redirect state does not match state cookie")
	}
}

func TestOAuthLogin_UnknownProvider_RedirectsToLogin(t *testing.T) {
	h := NewAuthHandler(newTestBase(t), &mockAuthService{}, AuthHandlerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/auth/github", nil)
	req = withChiParam(req, "provider", "github")
	rec := httptest.NewRecorder()
	h.OAuthLogin(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("response = %d %q, want 303 /login", rec.Code, rec.Header().Get("Location"))
	}
}

func TestOAuthCallback_StateMismatch_BadRequest(t *testing.T) {
	h := NewAuthHandler(newTestBase(t), &mockAuthService{}, AuthHandlerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=c&state=whatever", nil)
	req = withChiParam(req, "provider", "github")
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "different"})
	rec := httptest.NewRecorder()
	h.OAuthCallback(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOAuthCallback_Success_SetsSessionCookie(t *testing.T) {
	service := &mockAuthService{
		handleCallbackFn: func(ctx context.Context, provider, code string) (*model.Session, error) {
			if provider != "github" || code != "auth-code" {
				t.Errorf("provider=%q code=%q", provider, code)
			}
			return &model.Session{ID: "sess-2", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	h := NewAuthHandler(newTestBase(t), service, AuthHandlerConfig{SessionMaxAge: 3600})

	req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=auth-code&state=st", nil)
	req = withChiParam(req, "provider", "github")
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "st"})
	rec := httptest.NewRecorder()
	h.OAuthCallback(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("response = %d %q, want 303 /", rec.Code, rec.Header().Get("Location"))
	}

	var sessionSet bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value == "sess-2" {
			sessionSet = true
		}
	}
	if !sessionSet {
		t.Error("session cookie was not set")
	}
}

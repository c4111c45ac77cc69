package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGoogleGetLoginURL(t *testing.T) {
	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{
		ClientID:    "test-client-id",
		RedirectURL: "http://localhost:8080/auth/google/callback",
	})

	loginURL := provider.GetLoginURL("test-state")

	checks := []string{
		"https://accounts.google.com/o/oauth2/auth?",
		"client_id=test-client-id",
		"response_type=code",
		"state=test-state",
		"scope=openid+email+profile",
	}
	for _, want := range checks {
		if !strings.Contains(loginURL, want) {
			t.Errorf("login URL %q missing %q", loginURL, want)
		}
	}
}

func TestGoogleExchangeCode(t *testing.T) {
	userInfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-access-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub": "google-sub-1", "email": "alice@example.com", "name": "Alice", "picture": "https://example.com/p.png"}`))
	}))
	defer userInfoServer.Close()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.PostForm.Get("grant_type"); got != "authorization_code" {
			t.Errorf("grant_type = %q", got)
		}
		if got := r.PostForm.Get("code"); got != "test-code" {
			t.Errorf("code = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "test-access-token", "token_type": "Bearer", "expires_in": 3600}`))
	}))
	defer tokenServer.Close()

	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:8080/auth/google/callback",
		TokenURL:     tokenServer.URL,
		UserInfoURL:  userInfoServer.URL,
	})

	info, err := provider.ExchangeCode(context.Background(), "test-code")
	if err != nil {
		t.Fatalf("ExchangeCode() error = %v", err)
	}

	if info.ProviderUserID != "google-sub-1" {
		t.Errorf("ProviderUserID = %q, want google-sub-1", info.ProviderUserID)
	}
	if info.Email != "alice@example.com" {
		t.Errorf("Email = %q", info.Email)
	}
	if info.Login != "alice" {
		t.Errorf("Login = %q, want alice (local part of email)", info.Login)
	}
	if info.AvatarURL != "https://example.com/p.png" {
		t.Errorf("AvatarURL = %q", info.AvatarURL)
	}
	if info.Provider != "google" {
		t.Errorf("Provider = %q, want google", info.Provider)
	}
}

func TestGoogleExchangeCode_EmptyAccessToken(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type": "Bearer"}`))
	}))
	defer tokenServer.Close()

	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{
		ClientID: "test-client-id",
		TokenURL: tokenServer.URL,
	})

	if _, err := provider.ExchangeCode(context.Background(), "code"); err == nil {
		t.Error("expected error for missing access token")
	}
}

func TestLoginFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@example.com", "alice"},
		{"bob.smith@mail.example.com", "bob.smith"},
		{"no-at-sign", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := loginFromEmail(tt.email); got != tt.want {
			t.Errorf("loginFromEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

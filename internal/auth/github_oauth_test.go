package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGitHubGetLoginURL(t *testing.T) {
	provider := NewGitHubOAuthProvider(GitHubOAuthConfig{
		ClientID:    "test-client-id",
		RedirectURL: "http://localhost:8080/auth/github/callback",
	})

	loginURL := provider.GetLoginURL("test-state")

	checks := []string{
		"https://github.com/login/oauth/authorize?",
		"client_id=test-client-id",
		"state=test-state",
		"redirect_uri=",
	}
	for _, want := range checks {
		if !strings.Contains(loginURL, want) {
			t.Errorf("login URL %q missing %q", loginURL, want)
		}
	}
}

func TestGitHubExchangeCode(t *testing.T) {
	userServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-access-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 12345, "login": "octocat", "name": "Octo Cat", "email": "octo@example.com", "avatar_url": "https://example.com/a.png"}`))
	}))
	defer userServer.Close()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// GitHubはAcceptヘッダがないとフォームエンコードで返す
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want application/json", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.PostForm.Get("code"); got != "test-code" {
			t.Errorf("code = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "test-access-token", "token_type": "bearer"}`))
	}))
	defer tokenServer.Close()

	provider := NewGitHubOAuthProvider(GitHubOAuthConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost:8080/auth/github/callback",
		TokenURL:     tokenServer.URL,
		UserURL:      userServer.URL,
	})

	info, err := provider.ExchangeCode(context.Background(), "test-code")
	if err != nil {
		t.Fatalf("ExchangeCode() error = %v", err)
	}

	if info.ProviderUserID != "12345" {
		t.Errorf("ProviderUserID = %q, want 12345", info.ProviderUserID)
	}
	if info.Login != "octocat" {
		t.Errorf("Login = %q, want octocat", info.Login)
	}
	if info.Name != "Octo Cat" {
		t.Errorf("Name = %q", info.Name)
	}
	if info.AvatarURL != "https://example.com/a.png" {
		t.Errorf("AvatarURL = %q", info.AvatarURL)
	}
	if info.Provider != "github" {
		t.Errorf("Provider = %q, want github", info.Provider)
	}
}

func TestGitHubExchangeCode_TokenError(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad_verification_code"}`))
	}))
	defer tokenServer.Close()

	provider := NewGitHubOAuthProvider(GitHubOAuthConfig{
		ClientID: "test-client-id",
		TokenURL: tokenServer.URL,
	})

	if _, err := provider.ExchangeCode(context.Background(), "expired-code"); err == nil {
		t.Error("expected error for rejected code")
	}
}

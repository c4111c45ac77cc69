// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// ローカル認証ユーザーはUsernameとPasswordHashを持つ。
// 外部IdPのみで登録したユーザーは両方が空のことがあり、
// その場合は少なくとも1つのIdentityが存在しなければならない。
type User struct {
	ID           string
	Username     string // 外部IdP連携ユーザーでは空のことがある
	PasswordHash string // bcryptハッシュ。外部IdP連携ユーザーでは空のことがある
	DisplayName  string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword はローカルパスワードが設定されているかを返す。
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Identity は外部IdPとの紐付け情報を表す。
// 複数のIdP（GitHub, Google）に対応する構造。
type Identity struct {
	ID             string
	UserID         string
	Provider       string
	ProviderUserID string
	ProviderLogin  string // プロバイダー側のログイン名（GitHubのlogin等）
	ProviderEmail  string
	CreatedAt      time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

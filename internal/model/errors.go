// Package model はドメインモデルを定義する。
package model

import "fmt"

// AppError はユーザーに提示可能なアプリケーションエラーを表す。
// ハンドラー層でフラッシュメッセージに変換され、リダイレクト先で表示される。
type AppError struct {
	Code     string // エラーコード
	Message  string // ユーザー向けメッセージ
	Category string // カテゴリ: auth, validation, record, system
}

// Error はerrorインターフェースを実装する。
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodeUsernameTaken         = "USERNAME_TAKEN"
	ErrCodeValidation            = "VALIDATION_FAILED"
	ErrCodeRecordNotFound        = "RECORD_NOT_FOUND"
	ErrCodeUserNotFound          = "USER_NOT_FOUND"
	ErrCodePasswordMismatch      = "PASSWORD_MISMATCH"
	ErrCodePasswordConfirmation  = "PASSWORD_CONFIRMATION"
	ErrCodePasswordRequired      = "PASSWORD_REQUIRED"
	ErrCodeProviderNotConfigured = "PROVIDER_NOT_CONFIGURED"
)

// NewInvalidCredentialsError はログイン失敗エラーを生成する。
// ユーザーの存在有無を区別しない汎用メッセージを返す（列挙攻撃対策）。
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "ユーザー名またはパスワードが正しくありません。",
		Category: "auth",
	}
}

// NewUsernameTakenError はユーザー名重複エラーを生成する。
func NewUsernameTakenError(username string) *AppError {
	return &AppError{
		Code:     ErrCodeUsernameTaken,
		Message:  fmt.Sprintf("ユーザー名 %q は既に使用されています。", username),
		Category: "validation",
	}
}

// NewValidationError は入力バリデーションエラーを生成する。
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
	}
}

// NewRecordNotFoundError はレコード未検出エラーを生成する。
// 他ユーザーのレコードへのアクセスも同じエラーに収束させる。
func NewRecordNotFoundError() *AppError {
	return &AppError{
		Code:     ErrCodeRecordNotFound,
		Message:  "指定された記録が見つかりません。",
		Category: "record",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *AppError {
	return &AppError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。ログインし直してください。",
		Category: "auth",
	}
}

// NewPasswordMismatchError は現在のパスワードが一致しない場合のエラーを生成する。
func NewPasswordMismatchError() *AppError {
	return &AppError{
		Code:     ErrCodePasswordMismatch,
		Message:  "現在のパスワードが正しくありません。",
		Category: "auth",
	}
}

// NewPasswordConfirmationError は新パスワードと確認入力が一致しない場合のエラーを生成する。
func NewPasswordConfirmationError() *AppError {
	return &AppError{
		Code:     ErrCodePasswordConfirmation,
		Message:  "新しいパスワードと確認用パスワードが一致しません。",
		Category: "validation",
	}
}

// NewPasswordRequiredError はパスワード必須制約に違反した場合のエラーを生成する。
// パスワードは外部IdP連携が1つ以上ある場合にのみ省略できる。
func NewPasswordRequiredError() *AppError {
	return &AppError{
		Code:     ErrCodePasswordRequired,
		Message:  "パスワードは必須です。",
		Category: "validation",
	}
}

// NewProviderNotConfiguredError は未設定のOAuthプロバイダーが要求された場合のエラーを生成する。
func NewProviderNotConfiguredError(provider string) *AppError {
	return &AppError{
		Code:     ErrCodeProviderNotConfigured,
		Message:  fmt.Sprintf("%s ログインは現在利用できません。", provider),
		Category: "auth",
	}
}

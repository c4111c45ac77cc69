// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/lifelog/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Create はローカル認証ユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// CreateWithIdentity はユーザーとidentityを同一トランザクションで作成する。
	// 外部IdPでの初回ログイン時に使用する。
	CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error

	// UpdatePassword は指定ユーザーのパスワードハッシュを更新する。
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 関連するidentities、sessionsはCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// IdentityRepository は外部IdP紐付け情報の永続化インターフェース。
type IdentityRepository interface {
	// FindByProviderAndProviderUserID はproviderとprovider_user_idでidentityを検索する。
	// 見つからない場合はnilを返す。
	FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error)

	// CountByUserID は指定ユーザーに紐付くidentityの数を返す。
	// パスワード省略可否の判定（外部IdP連携が1つ以上あるか）に使用する。
	CountByUserID(ctx context.Context, userID string) (int, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
	// DeleteExpired は期限切れセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}

// TodoRepository はToDoデータの永続化インターフェース。
// 読み書きは全て所有ユーザーでスコープする。他ユーザーのレコードは
// 存在しないレコードと区別されない。
type TodoRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.Todo, error)
	// FindByIDAndUser は指定ID・所有者のレコードを取得する。見つからない場合はnilを返す。
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.Todo, error)
	Create(ctx context.Context, todo *model.Todo) error
	// Update は所有者が一致するレコードのみ更新し、更新されたかを返す。
	Update(ctx context.Context, todo *model.Todo) (bool, error)
	// Delete は所有者が一致するレコードのみ削除し、削除されたかを返す。
	// 対象がない場合もエラーにはならない（冪等）。
	Delete(ctx context.Context, id, userID string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// FoodItemRepository は食事記録の永続化インターフェース。
// スコープ規約はTodoRepositoryと同じ。
type FoodItemRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.FoodItem, error)
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.FoodItem, error)
	Create(ctx context.Context, item *model.FoodItem) error
	Update(ctx context.Context, item *model.FoodItem) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// ExerciseRepository は運動記録の永続化インターフェース。
type ExerciseRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.Exercise, error)
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.Exercise, error)
	Create(ctx context.Context, exercise *model.Exercise) error
	Update(ctx context.Context, exercise *model.Exercise) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// SleepRepository は睡眠記録の永続化インターフェース。
type SleepRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.SleepEntry, error)
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.SleepEntry, error)
	Create(ctx context.Context, entry *model.SleepEntry) error
	Update(ctx context.Context, entry *model.SleepEntry) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// CalendarEventRepository はカレンダー予定の永続化インターフェース。
type CalendarEventRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.CalendarEvent, error)
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.CalendarEvent, error)
	Create(ctx context.Context, event *model.CalendarEvent) error
	Update(ctx context.Context, event *model.CalendarEvent) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// Package user はユーザープロフィール管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/repository"
)

// RecordDeleter はユーザーに紐づく記録の一括削除インターフェース。
// 各エンティティのリポジトリがこれを満たす。
type RecordDeleter interface {
	DeleteByUserID(ctx context.Context, userID string) error
}

// Service はプロフィール閲覧・パスワード変更・退会のサービス層。
type Service struct {
	userRepo     repository.UserRepository
	identityRepo repository.IdentityRepository
	sessionRepo  repository.SessionRepository
	deleters     []RecordDeleter
	bcryptCost   int
}

// NewService はServiceの新しいインスタンスを生成する。
// deleters には退会時に削除する記録リポジトリを渡す。
func NewService(
	userRepo repository.UserRepository,
	identityRepo repository.IdentityRepository,
	sessionRepo repository.SessionRepository,
	deleters []RecordDeleter,
	bcryptCost int,
) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:     userRepo,
		identityRepo: identityRepo,
		sessionRepo:  sessionRepo,
		deleters:     deleters,
		bcryptCost:   bcryptCost,
	}
}

// Profile はプロフィール画面の表示データ。
type Profile struct {
	User          *model.User
	IdentityCount int
}

// GetProfile はユーザーのプロフィール情報を取得する。
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	count, err := s.identityRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("外部連携の取得に失敗しました: %w", err)
	}

	return &Profile{User: user, IdentityCount: count}, nil
}

// ChangePassword はパスワードを変更する。
// 現在のパスワード検証、確認入力の一致、最低文字数を検証する。
// 外部IdP専用アカウント（パスワード未設定）は現在のパスワードなしで設定できる。
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword, confirmPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	if user.HasPassword() {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
			return model.NewPasswordMismatchError()
		}
	}

	if newPassword != confirmPassword {
		return model.NewPasswordConfirmationError()
	}
	if len(newPassword) < 8 {
		return model.NewValidationError("パスワードは8文字以上で入力してください")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("パスワードの更新に失敗しました: %w", err)
	}

	slog.Info("パスワードを変更しました",
		slog.String("user_id", userID),
	)

	return nil
}

// Withdraw はユーザーの退会処理を実行する。
// 削除順序: 各記録 → セッション → ユーザー（+ CASCADE: identities）
func (s *Service) Withdraw(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	slog.Info("退会処理を開始します",
		slog.String("user_id", userID),
	)

	// 1. ユーザーの全記録を削除
	for _, d := range s.deleters {
		if err := d.DeleteByUserID(ctx, userID); err != nil {
			return fmt.Errorf("記録の削除に失敗しました: %w", err)
		}
	}

	// 2. セッションを削除（全デバイスのログインが無効化される）
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("セッションの削除に失敗しました: %w", err)
	}

	// 3. ユーザーを削除（identitiesはCASCADE削除）
	if err := s.userRepo.DeleteByID(ctx, userID); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("退会処理が完了しました",
		slog.String("user_id", userID),
	)

	return nil
}

// Package tracker は各種ライフログ記録のドメインロジックを提供する。
// ToDo・食事・運動・睡眠・カレンダーの各サービスが、フォーム入力の
// 検証と所有者スコープの読み書きを担う。
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/repository"
	"github.com/hitoshi/lifelog/internal/security"
)

const maxTextLength = 500

// TodoInput はToDoフォームの生入力。
type TodoInput struct {
	Content   string
	Completed string // チェックボックス: "on"または空
}

// TodoService はToDo管理のサービス層。
type TodoService struct {
	repo      repository.TodoRepository
	sanitizer security.TextSanitizerService
}

// NewTodoService はTodoServiceの新しいインスタンスを生成する。
func NewTodoService(repo repository.TodoRepository, sanitizer security.TextSanitizerService) *TodoService {
	return &TodoService{repo: repo, sanitizer: sanitizer}
}

// parseTodo は生入力を検証し、保存可能な値に変換する。
func (s *TodoService) parseTodo(input TodoInput) (content string, completed bool, err error) {
	content = s.sanitizer.Sanitize(input.Content)
	if content == "" {
		return "", false, model.NewValidationError("内容を入力してください")
	}
	if len([]rune(content)) > maxTextLength {
		return "", false, model.NewValidationError("内容が長すぎます")
	}
	completed = input.Completed == "on" || input.Completed == "true"
	return content, completed, nil
}

// List はユーザーのToDo一覧を返す。
func (s *TodoService) List(ctx context.Context, userID string) ([]*model.Todo, error) {
	todos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ToDo一覧の取得に失敗しました: %w", err)
	}
	return todos, nil
}

// Get は指定IDのToDoを返す。所有者が一致しない場合はRecordNotFound。
func (s *TodoService) Get(ctx context.Context, id, userID string) (*model.Todo, error) {
	todo, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("ToDoの取得に失敗しました: %w", err)
	}
	if todo == nil {
		return nil, model.NewRecordNotFoundError()
	}
	return todo, nil
}

// Create は新しいToDoを作成する。
func (s *TodoService) Create(ctx context.Context, userID string, input TodoInput) (*model.Todo, error) {
	content, completed, err := s.parseTodo(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	todo := &model.Todo{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   content,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("ToDoの作成に失敗しました: %w", err)
	}
	return todo, nil
}

// Update は指定IDのToDoを更新する。所有者が一致しない場合はRecordNotFound。
func (s *TodoService) Update(ctx context.Context, id, userID string, input TodoInput) (*model.Todo, error) {
	content, completed, err := s.parseTodo(input)
	if err != nil {
		return nil, err
	}

	todo := &model.Todo{
		ID:        id,
		UserID:    userID,
		Content:   content,
		Completed: completed,
		UpdatedAt: time.Now(),
	}
	updated, err := s.repo.Update(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("ToDoの更新に失敗しました: %w", err)
	}
	if !updated {
		return nil, model.NewRecordNotFoundError()
	}
	return todo, nil
}

// Toggle は完了状態を反転する。
func (s *TodoService) Toggle(ctx context.Context, id, userID string) (*model.Todo, error) {
	todo, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	todo.Completed = !todo.Completed
	todo.UpdatedAt = time.Now()
	updated, err := s.repo.Update(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("ToDoの更新に失敗しました: %w", err)
	}
	if !updated {
		return nil, model.NewRecordNotFoundError()
	}
	return todo, nil
}

// Delete は指定IDのToDoを削除する。対象がなくてもエラーにしない（冪等）。
func (s *TodoService) Delete(ctx context.Context, id, userID string) error {
	if strings.TrimSpace(id) == "" {
		return model.NewValidationError("IDを指定してください")
	}
	if _, err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("ToDoの削除に失敗しました: %w", err)
	}
	return nil
}

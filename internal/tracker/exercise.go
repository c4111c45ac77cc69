package tracker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/repository"
	"github.com/hitoshi/lifelog/internal/security"
)

// 1日を超える運動時間は入力ミスとみなす。
const maxExerciseMinutes = 1440

// ExerciseInput は運動記録フォームの生入力。
type ExerciseInput struct {
	Name            string
	DurationMinutes string
}

// ExerciseService は運動記録のサービス層。
type ExerciseService struct {
	repo      repository.ExerciseRepository
	sanitizer security.TextSanitizerService
}

// NewExerciseService はExerciseServiceの新しいインスタンスを生成する。
func NewExerciseService(repo repository.ExerciseRepository, sanitizer security.TextSanitizerService) *ExerciseService {
	return &ExerciseService{repo: repo, sanitizer: sanitizer}
}

func (s *ExerciseService) parseExercise(input ExerciseInput) (*model.Exercise, error) {
	name := s.sanitizer.Sanitize(input.Name)
	if name == "" {
		return nil, model.NewValidationError("種目名を入力してください")
	}
	if len([]rune(name)) > maxTextLength {
		return nil, model.NewValidationError("種目名が長すぎます")
	}

	raw := strings.TrimSpace(input.DurationMinutes)
	if raw == "" {
		return nil, model.NewValidationError("時間を入力してください")
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return nil, model.NewValidationError("時間は整数で入力してください")
	}
	if minutes <= 0 || minutes > maxExerciseMinutes {
		return nil, model.NewValidationError("時間は1〜1440分で入力してください")
	}

	return &model.Exercise{Name: name, DurationMinutes: minutes}, nil
}

// List はユーザーの運動記録一覧を返す。
func (s *ExerciseService) List(ctx context.Context, userID string) ([]*model.Exercise, error) {
	exercises, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("運動記録一覧の取得に失敗しました: %w", err)
	}
	return exercises, nil
}

// Get は指定IDの運動記録を返す。所有者が一致しない場合はRecordNotFound。
func (s *ExerciseService) Get(ctx context.Context, id, userID string) (*model.Exercise, error) {
	exercise, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("運動記録の取得に失敗しました: %w", err)
	}
	if exercise == nil {
		return nil, model.NewRecordNotFoundError()
	}
	return exercise, nil
}

// Create は新しい運動記録を作成する。
func (s *ExerciseService) Create(ctx context.Context, userID string, input ExerciseInput) (*model.Exercise, error) {
	exercise, err := s.parseExercise(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	exercise.ID = uuid.New().String()
	exercise.UserID = userID
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("運動記録の作成に失敗しました: %w", err)
	}
	return exercise, nil
}

// Update は指定IDの運動記録を更新する。所有者が一致しない場合はRecordNotFound。
func (s *ExerciseService) Update(ctx context.Context, id, userID string, input ExerciseInput) (*model.Exercise, error) {
	exercise, err := s.parseExercise(input)
	if err != nil {
		return nil, err
	}

	exercise.ID = id
	exercise.UserID = userID
	exercise.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, exercise)
	if err != nil {
		return nil, fmt.Errorf("運動記録の更新に失敗しました: %w", err)
	}
	if !updated {
		return nil, model.NewRecordNotFoundError()
	}
	return exercise, nil
}

// Delete は指定IDの運動記録を削除する。対象がなくてもエラーにしない（冪等）。
func (s *ExerciseService) Delete(ctx context.Context, id, userID string) error {
	if strings.TrimSpace(id) == "" {
		return model.NewValidationError("IDを指定してください")
	}
	if _, err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("運動記録の削除に失敗しました: %w", err)
	}
	return nil
}

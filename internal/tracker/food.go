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

// FoodInput は食事記録フォームの生入力。数値はパース前の文字列で受け取る。
type FoodInput struct {
	Name     string
	Carbs    string
	Protein  string
	Calories string
}

// FoodService は食事記録のサービス層。
type FoodService struct {
	repo      repository.FoodItemRepository
	sanitizer security.TextSanitizerService
}

// NewFoodService はFoodServiceの新しいインスタンスを生成する。
func NewFoodService(repo repository.FoodItemRepository, sanitizer security.TextSanitizerService) *FoodService {
	return &FoodService{repo: repo, sanitizer: sanitizer}
}

// parseNonNegativeFloat は数値文字列を検証付きでパースする。空文字は0扱い。
func parseNonNegativeFloat(value, label string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, model.NewValidationError(label + "は数値で入力してください")
	}
	if f < 0 {
		return 0, model.NewValidationError(label + "は0以上で入力してください")
	}
	return f, nil
}

func (s *FoodService) parseFood(input FoodInput) (*model.FoodItem, error) {
	name := s.sanitizer.Sanitize(input.Name)
	if name == "" {
		return nil, model.NewValidationError("食品名を入力してください")
	}
	if len([]rune(name)) > maxTextLength {
		return nil, model.NewValidationError("食品名が長すぎます")
	}

	carbs, err := parseNonNegativeFloat(input.Carbs, "炭水化物")
	if err != nil {
		return nil, err
	}
	protein, err := parseNonNegativeFloat(input.Protein, "タンパク質")
	if err != nil {
		return nil, err
	}
	calories, err := parseNonNegativeFloat(input.Calories, "カロリー")
	if err != nil {
		return nil, err
	}

	return &model.FoodItem{
		Name:     name,
		Carbs:    carbs,
		Protein:  protein,
		Calories: calories,
	}, nil
}

// List はユーザーの食事記録一覧を返す。
func (s *FoodService) List(ctx context.Context, userID string) ([]*model.FoodItem, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("食事記録一覧の取得に失敗しました: %w", err)
	}
	return items, nil
}

// Get は指定IDの食事記録を返す。所有者が一致しない場合はRecordNotFound。
func (s *FoodService) Get(ctx context.Context, id, userID string) (*model.FoodItem, error) {
	item, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("食事記録の取得に失敗しました: %w", err)
	}
	if item == nil {
		return nil, model.NewRecordNotFoundError()
	}
	return item, nil
}

// Create は新しい食事記録を作成する。
func (s *FoodService) Create(ctx context.Context, userID string, input FoodInput) (*model.FoodItem, error) {
	item, err := s.parseFood(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item.ID = uuid.New().String()
	item.UserID = userID
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("食事記録の作成に失敗しました: %w", err)
	}
	return item, nil
}

// Update は指定IDの食事記録を更新する。所有者が一致しない場合はRecordNotFound。
func (s *FoodService) Update(ctx context.Context, id, userID string, input FoodInput) (*model.FoodItem, error) {
	item, err := s.parseFood(input)
	if err != nil {
		return nil, err
	}

	item.ID = id
	item.UserID = userID
	item.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("食事記録の更新に失敗しました: %w", err)
	}
	if !updated {
		return nil, model.NewRecordNotFoundError()
	}
	return item, nil
}

// Delete は指定IDの食事記録を削除する。対象がなくてもエラーにしない（冪等）。
func (s *FoodService) Delete(ctx context.Context, id, userID string) error {
	if strings.TrimSpace(id) == "" {
		return model.NewValidationError("IDを指定してください")
	}
	if _, err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("食事記録の削除に失敗しました: %w", err)
	}
	return nil
}

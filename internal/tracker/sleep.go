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

const (
	sleepDateLayout = "2006-01-02"
	maxSleepHours   = 24
)

// 睡眠の質の選択肢。フォームのセレクトと対応する。
var sleepQualities = map[string]bool{
	"good":   true,
	"normal": true,
	"bad":    true,
}

// SleepInput は睡眠記録フォームの生入力。
type SleepInput struct {
	Quality       string
	DurationHours string
	SleptOn       string // "2006-01-02"形式
}

// SleepService は睡眠記録のサービス層。
type SleepService struct {
	repo      repository.SleepRepository
	sanitizer security.TextSanitizerService
}

// NewSleepService はSleepServiceの新しいインスタンスを生成する。
func NewSleepService(repo repository.SleepRepository, sanitizer security.TextSanitizerService) *SleepService {
	return &SleepService{repo: repo, sanitizer: sanitizer}
}

func (s *SleepService) parseSleep(input SleepInput) (*model.SleepEntry, error) {
	quality := strings.TrimSpace(strings.ToLower(s.sanitizer.Sanitize(input.Quality)))
	if !sleepQualities[quality] {
		return nil, model.NewValidationError("睡眠の質はgood/normal/badから選択してください")
	}

	raw := strings.TrimSpace(input.DurationHours)
	if raw == "" {
		return nil, model.NewValidationError("睡眠時間を入力してください")
	}
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, model.NewValidationError("睡眠時間は数値で入力してください")
	}
	if hours <= 0 || hours > maxSleepHours {
		return nil, model.NewValidationError("睡眠時間は0〜24時間で入力してください")
	}

	sleptOn, err := time.Parse(sleepDateLayout, strings.TrimSpace(input.SleptOn))
	if err != nil {
		return nil, model.NewValidationError("日付はYYYY-MM-DD形式で入力してください")
	}

	return &model.SleepEntry{
		Quality:       quality,
		DurationHours: hours,
		SleptOn:       sleptOn,
	}, nil
}

// List はユーザーの睡眠記録一覧を返す。
func (s *SleepService) List(ctx context.Context, userID string) ([]*model.SleepEntry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("睡眠記録一覧の取得に失敗しました: %w", err)
	}
	return entries, nil
}

// Get は指定IDの睡眠記録を返す。所有者が一致しない場合はRecordNotFound。
func (s *SleepService) Get(ctx context.Context, id, userID string) (*model.SleepEntry, error) {
	entry, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("睡眠記録の取得に失敗しました: %w", err)
	}
	if entry == nil {
		return nil, model.NewRecordNotFoundError()
	}
	return entry, nil
}

// Create は新しい睡眠記録を作成する。
func (s *SleepService) Create(ctx context.Context, userID string, input SleepInput) (*model.SleepEntry, error) {
	entry, err := s.parseSleep(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry.ID = uuid.New().String()
	entry.UserID = userID
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("睡眠記録の作成に失敗しました: %w", err)
	}
	return entry, nil
}

// Update は指定IDの睡眠記録を更新する。所有者が一致しない場合はRecordNotFound。
func (s *SleepService) Update(ctx context.Context, id, userID string, input SleepInput) (*model.SleepEntry, error) {
	entry, err := s.parseSleep(input)
	if err != nil {
		return nil, err
	}

	entry.ID = id
	entry.UserID = userID
	entry.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("睡眠記録の更新に失敗しました: %w", err)
	}
	if !updated {
		return nil, model.NewRecordNotFoundError()
	}
	return entry, nil
}

// Delete は指定IDの睡眠記録を削除する。対象がなくてもエラーにしない（冪等）。
func (s *SleepService) Delete(ctx context.Context, id, userID string) error {
	if strings.TrimSpace(id) == "" {
		return model.NewValidationError("IDを指定してください")
	}
	if _, err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("睡眠記録の削除に失敗しました: %w", err)
	}
	return nil
}

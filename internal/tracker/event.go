package tracker

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/repository"
	"github.com/hitoshi/lifelog/internal/security"
)

const (
	eventDateLayout    = "2006-01-02"
	maxDescriptionSize = 2000
)

// "14:30"形式。表示用文字列だが形式だけは揃える。
var eventTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// EventInput はカレンダー予定フォームの生入力。
type EventInput struct {
	Title       string
	Description string
	StartDate   string // "2006-01-02"形式
	EventTime   string // "15:04"形式、省略可
}

// EventService はカレンダー予定のサービス層。
type EventService struct {
	repo      repository.CalendarEventRepository
	sanitizer security.TextSanitizerService
}

// NewEventService はEventServiceの新しいインスタンスを生成する。
func NewEventService(repo repository.CalendarEventRepository, sanitizer security.TextSanitizerService) *EventService {
	return &EventService{repo: repo, sanitizer: sanitizer}
}

func (s *EventService) parseEvent(input EventInput) (*model.CalendarEvent, error) {
	title := s.sanitizer.Sanitize(input.Title)
	if title == "" {
		return nil, model.NewValidationError("タイトルを入力してください")
	}
	if len([]rune(title)) > maxTextLength {
		return nil, model.NewValidationError("タイトルが長すぎます")
	}

	description := s.sanitizer.Sanitize(input.Description)
	if len([]rune(description)) > maxDescriptionSize {
		return nil, model.NewValidationError("説明が長すぎます")
	}

	startDate, err := time.Parse(eventDateLayout, strings.TrimSpace(input.StartDate))
	if err != nil {
		return nil, model.NewValidationError("日付はYYYY-MM-DD形式で入力してください")
	}

	eventTime := strings.TrimSpace(input.EventTime)
	if eventTime != "" && !eventTimePattern.MatchString(eventTime) {
		return nil, model.NewValidationError("時刻はHH:MM形式で入力してください")
	}

	return &model.CalendarEvent{
		Title:       title,
		Description: description,
		StartDate:   startDate,
		EventTime:   eventTime,
	}, nil
}

// List はユーザーの予定一覧を返す。
func (s *EventService) List(ctx context.Context, userID string) ([]*model.CalendarEvent, error) {
	events, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("予定一覧の取得に失敗しました: %w", err)
	}
	return events, nil
}

// Get は指定IDの予定を返す。所有者が一致しない場合はRecordNotFound。
func (s *EventService) Get(ctx context.Context, id, userID string) (*model.CalendarEvent, error) {
	event, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("予定の取得に失敗しました: %w", err)
	}
	if event == nil {
		return nil, model.NewRecordNotFoundError()
	}
	return event, nil
}

// Create は新しい予定を作成する。
func (s *EventService) Create(ctx context.Context, userID string, input EventInput) (*model.CalendarEvent, error) {
	event, err := s.parseEvent(input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event.ID = uuid.New().String()
	event.UserID = userID
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("予定の作成に失敗しました: %w", err)
	}
	return event, nil
}

// Update は指定IDの予定を更新する。所有者が一致しない場合はRecordNotFound。
func (s *EventService) Update(ctx context.Context, id, userID string, input EventInput) (*model.CalendarEvent, error) {
	event, err := s.parseEvent(input)
	if err != nil {
		return nil, err
	}

	event.ID = id
	event.UserID = userID
	event.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("予定の更新に失敗しました: %w", err)
	}
	if !updated {
		return nil, model.NewRecordNotFoundError()
	}
	return event, nil
}

// Delete は指定IDの予定を削除する。対象がなくてもエラーにしない（冪等）。
func (s *EventService) Delete(ctx context.Context, id, userID string) error {
	if strings.TrimSpace(id) == "" {
		return model.NewValidationError("IDを指定してください")
	}
	if _, err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("予定の削除に失敗しました: %w", err)
	}
	return nil
}

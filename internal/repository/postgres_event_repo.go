package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/lifelog/internal/model"
)

// PostgresCalendarEventRepo はPostgreSQLを使用したカレンダー予定リポジトリ。
type PostgresCalendarEventRepo struct {
	db *sql.DB
}

// NewPostgresCalendarEventRepo はPostgresCalendarEventRepoを生成する。
func NewPostgresCalendarEventRepo(db *sql.DB) *PostgresCalendarEventRepo {
	return &PostgresCalendarEventRepo{db: db}
}

// ListByUser は指定ユーザーの予定一覧を開始日順で返す。
func (r *PostgresCalendarEventRepo) ListByUser(ctx context.Context, userID string) ([]*model.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, start_date, event_time, created_at, updated_at
		 FROM calendar_events WHERE user_id = $1 ORDER BY start_date, event_time`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	defer rows.Close()

	var events []*model.CalendarEvent
	for rows.Next() {
		event := &model.CalendarEvent{}
		if err := rows.Scan(&event.ID, &event.UserID, &event.Title, &event.Description,
			&event.StartDate, &event.EventTime, &event.CreatedAt, &event.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calendar events: %w", err)
	}

	return events, nil
}

// FindByIDAndUser は指定ID・所有者の予定を取得する。見つからない場合はnilを返す。
func (r *PostgresCalendarEventRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.CalendarEvent, error) {
	event := &model.CalendarEvent{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, start_date, event_time, created_at, updated_at
		 FROM calendar_events WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&event.ID, &event.UserID, &event.Title, &event.Description,
		&event.StartDate, &event.EventTime, &event.CreatedAt, &event.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar event: %w", err)
	}

	return event, nil
}

// Create は新規予定を作成する。
func (r *PostgresCalendarEventRepo) Create(ctx context.Context, event *model.CalendarEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO calendar_events (id, user_id, title, description, start_date, event_time, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.UserID, event.Title, event.Description, event.StartDate,
		event.EventTime, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return nil
}

// Update は所有者が一致する予定のみ更新し、更新されたかを返す。
func (r *PostgresCalendarEventRepo) Update(ctx context.Context, event *model.CalendarEvent) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE calendar_events SET title = $3, description = $4, start_date = $5, event_time = $6, updated_at = $7
		 WHERE id = $1 AND user_id = $2`,
		event.ID, event.UserID, event.Title, event.Description, event.StartDate,
		event.EventTime, event.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update calendar event: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Delete は所有者が一致する予定のみ削除し、削除されたかを返す。
func (r *PostgresCalendarEventRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM calendar_events WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete calendar event: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteByUserID は指定ユーザーの全予定を削除する。退会処理で使用する。
func (r *PostgresCalendarEventRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM calendar_events WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user calendar events: %w", err)
	}
	return nil
}

// compile-time interface check
var _ CalendarEventRepository = (*PostgresCalendarEventRepo)(nil)

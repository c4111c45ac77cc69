package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/lifelog/internal/model"
)

// PostgresSleepRepo はPostgreSQLを使用した睡眠記録リポジトリ。
type PostgresSleepRepo struct {
	db *sql.DB
}

// NewPostgresSleepRepo はPostgresSleepRepoを生成する。
func NewPostgresSleepRepo(db *sql.DB) *PostgresSleepRepo {
	return &PostgresSleepRepo{db: db}
}

// ListByUser は指定ユーザーの睡眠記録一覧を記録日順で返す。
func (r *PostgresSleepRepo) ListByUser(ctx context.Context, userID string) ([]*model.SleepEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, quality, duration_hours, slept_on, created_at, updated_at
		 FROM sleep_entries WHERE user_id = $1 ORDER BY slept_on DESC, created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.SleepEntry
	for rows.Next() {
		entry := &model.SleepEntry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Quality, &entry.DurationHours,
			&entry.SleptOn, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sleep entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sleep entries: %w", err)
	}

	return entries, nil
}

// FindByIDAndUser は指定ID・所有者の睡眠記録を取得する。見つからない場合はnilを返す。
func (r *PostgresSleepRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.SleepEntry, error) {
	entry := &model.SleepEntry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, quality, duration_hours, slept_on, created_at, updated_at
		 FROM sleep_entries WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&entry.ID, &entry.UserID, &entry.Quality, &entry.DurationHours,
		&entry.SleptOn, &entry.CreatedAt, &entry.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sleep entry: %w", err)
	}

	return entry, nil
}

// Create は新規睡眠記録を作成する。
func (r *PostgresSleepRepo) Create(ctx context.Context, entry *model.SleepEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sleep_entries (id, user_id, quality, duration_hours, slept_on, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.UserID, entry.Quality, entry.DurationHours, entry.SleptOn,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sleep entry: %w", err)
	}
	return nil
}

// Update は所有者が一致する睡眠記録のみ更新し、更新されたかを返す。
func (r *PostgresSleepRepo) Update(ctx context.Context, entry *model.SleepEntry) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE sleep_entries SET quality = $3, duration_hours = $4, slept_on = $5, updated_at = $6
		 WHERE id = $1 AND user_id = $2`,
		entry.ID, entry.UserID, entry.Quality, entry.DurationHours, entry.SleptOn, entry.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update sleep entry: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Delete は所有者が一致する睡眠記録のみ削除し、削除されたかを返す。
func (r *PostgresSleepRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sleep_entries WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete sleep entry: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteByUserID は指定ユーザーの全睡眠記録を削除する。退会処理で使用する。
func (r *PostgresSleepRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sleep_entries WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user sleep entries: %w", err)
	}
	return nil
}

// compile-time interface check
var _ SleepRepository = (*PostgresSleepRepo)(nil)

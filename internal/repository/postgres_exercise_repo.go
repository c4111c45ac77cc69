package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/lifelog/internal/model"
)

// PostgresExerciseRepo はPostgreSQLを使用した運動記録リポジトリ。
type PostgresExerciseRepo struct {
	db *sql.DB
}

// NewPostgresExerciseRepo はPostgresExerciseRepoを生成する。
func NewPostgresExerciseRepo(db *sql.DB) *PostgresExerciseRepo {
	return &PostgresExerciseRepo{db: db}
}

// ListByUser は指定ユーザーの運動記録一覧を作成日時順で返す。
func (r *PostgresExerciseRepo) ListByUser(ctx context.Context, userID string) ([]*model.Exercise, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, duration_minutes, created_at, updated_at
		 FROM exercises WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*model.Exercise
	for rows.Next() {
		exercise := &model.Exercise{}
		if err := rows.Scan(&exercise.ID, &exercise.UserID, &exercise.Name,
			&exercise.DurationMinutes, &exercise.CreatedAt, &exercise.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exercises: %w", err)
	}

	return exercises, nil
}

// FindByIDAndUser は指定ID・所有者の運動記録を取得する。見つからない場合はnilを返す。
func (r *PostgresExerciseRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.Exercise, error) {
	exercise := &model.Exercise{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, duration_minutes, created_at, updated_at
		 FROM exercises WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&exercise.ID, &exercise.UserID, &exercise.Name,
		&exercise.DurationMinutes, &exercise.CreatedAt, &exercise.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find exercise: %w", err)
	}

	return exercise, nil
}

// Create は新規運動記録を作成する。
func (r *PostgresExerciseRepo) Create(ctx context.Context, exercise *model.Exercise) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exercises (id, user_id, name, duration_minutes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		exercise.ID, exercise.UserID, exercise.Name, exercise.DurationMinutes,
		exercise.CreatedAt, exercise.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exercise: %w", err)
	}
	return nil
}

// Update は所有者が一致する運動記録のみ更新し、更新されたかを返す。
func (r *PostgresExerciseRepo) Update(ctx context.Context, exercise *model.Exercise) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE exercises SET name = $3, duration_minutes = $4, updated_at = $5
		 WHERE id = $1 AND user_id = $2`,
		exercise.ID, exercise.UserID, exercise.Name, exercise.DurationMinutes, exercise.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update exercise: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Delete は所有者が一致する運動記録のみ削除し、削除されたかを返す。
func (r *PostgresExerciseRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM exercises WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete exercise: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteByUserID は指定ユーザーの全運動記録を削除する。退会処理で使用する。
func (r *PostgresExerciseRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM exercises WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user exercises: %w", err)
	}
	return nil
}

// compile-time interface check
var _ ExerciseRepository = (*PostgresExerciseRepo)(nil)

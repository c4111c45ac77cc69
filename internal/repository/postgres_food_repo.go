package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/lifelog/internal/model"
)

// PostgresFoodItemRepo はPostgreSQLを使用した食事記録リポジトリ。
type PostgresFoodItemRepo struct {
	db *sql.DB
}

// NewPostgresFoodItemRepo はPostgresFoodItemRepoを生成する。
func NewPostgresFoodItemRepo(db *sql.DB) *PostgresFoodItemRepo {
	return &PostgresFoodItemRepo{db: db}
}

// ListByUser は指定ユーザーの食事記録一覧を作成日時順で返す。
func (r *PostgresFoodItemRepo) ListByUser(ctx context.Context, userID string) ([]*model.FoodItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, carbs, protein, calories, created_at, updated_at
		 FROM food_items WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}
	defer rows.Close()

	var items []*model.FoodItem
	for rows.Next() {
		item := &model.FoodItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Carbs,
			&item.Protein, &item.Calories, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate food items: %w", err)
	}

	return items, nil
}

// FindByIDAndUser は指定ID・所有者の食事記録を取得する。見つからない場合はnilを返す。
func (r *PostgresFoodItemRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.FoodItem, error) {
	item := &model.FoodItem{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, carbs, protein, calories, created_at, updated_at
		 FROM food_items WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&item.ID, &item.UserID, &item.Name, &item.Carbs,
		&item.Protein, &item.Calories, &item.CreatedAt, &item.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find food item: %w", err)
	}

	return item, nil
}

// Create は新規食事記録を作成する。
func (r *PostgresFoodItemRepo) Create(ctx context.Context, item *model.FoodItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO food_items (id, user_id, name, carbs, protein, calories, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.UserID, item.Name, item.Carbs, item.Protein, item.Calories,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert food item: %w", err)
	}
	return nil
}

// Update は所有者が一致する食事記録のみ更新し、更新されたかを返す。
func (r *PostgresFoodItemRepo) Update(ctx context.Context, item *model.FoodItem) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE food_items SET name = $3, carbs = $4, protein = $5, calories = $6, updated_at = $7
		 WHERE id = $1 AND user_id = $2`,
		item.ID, item.UserID, item.Name, item.Carbs, item.Protein, item.Calories, item.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update food item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Delete は所有者が一致する食事記録のみ削除し、削除されたかを返す。
func (r *PostgresFoodItemRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM food_items WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete food item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteByUserID は指定ユーザーの全食事記録を削除する。退会処理で使用する。
func (r *PostgresFoodItemRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM food_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user food items: %w", err)
	}
	return nil
}

// compile-time interface check
var _ FoodItemRepository = (*PostgresFoodItemRepo)(nil)

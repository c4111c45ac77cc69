package tracker

import (
	"context"

	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/repository"
	"github.com/hitoshi/lifelog/internal/security"
)

// --- モック定義 ---

// passthroughSanitizer はテスト用のサニタイザ。前後空白の除去のみ行う。
type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(input string) string {
	// 実装と同じく空白のみの入力は空文字になる
	for len(input) > 0 && (input[0] == ' ' || input[0] == '\t' || input[0] == '\n') {
		input = input[1:]
	}
	for len(input) > 0 && (input[len(input)-1] == ' ' || input[len(input)-1] == '\t' || input[len(input)-1] == '\n') {
		input = input[:len(input)-1]
	}
	return input
}

type mockTodoRepo struct {
	listByUserFn      func(ctx context.Context, userID string) ([]*model.Todo, error)
	findByIDAndUserFn func(ctx context.Context, id, userID string) (*model.Todo, error)
	createFn          func(ctx context.Context, todo *model.Todo) error
	updateFn          func(ctx context.Context, todo *model.Todo) (bool, error)
	deleteFn          func(ctx context.Context, id, userID string) (bool, error)
}

func (m *mockTodoRepo) ListByUser(ctx context.Context, userID string) ([]*model.Todo, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTodoRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.Todo, error) {
	if m.findByIDAndUserFn != nil {
		return m.findByIDAndUserFn(ctx, id, userID)
	}
	return nil, nil
}

func (m *mockTodoRepo) Create(ctx context.Context, todo *model.Todo) error {
	if m.createFn != nil {
		return m.createFn(ctx, todo)
	}
	return nil
}

func (m *mockTodoRepo) Update(ctx context.Context, todo *model.Todo) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, todo)
	}
	return true, nil
}

func (m *mockTodoRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return true, nil
}

func (m *mockTodoRepo) DeleteByUserID(_ context.Context, _ string) error { return nil }

type mockFoodRepo struct {
	createFn func(ctx context.Context, item *model.FoodItem) error
	updateFn func(ctx context.Context, item *model.FoodItem) (bool, error)
	deleteFn func(ctx context.Context, id, userID string) (bool, error)
}

func (m *mockFoodRepo) ListByUser(_ context.Context, _ string) ([]*model.FoodItem, error) {
	return nil, nil
}

func (m *mockFoodRepo) FindByIDAndUser(_ context.Context, _, _ string) (*model.FoodItem, error) {
	return nil, nil
}

func (m *mockFoodRepo) Create(ctx context.Context, item *model.FoodItem) error {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return nil
}

func (m *mockFoodRepo) Update(ctx context.Context, item *model.FoodItem) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, item)
	}
	return true, nil
}

func (m *mockFoodRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return true, nil
}

func (m *mockFoodRepo) DeleteByUserID(_ context.Context, _ string) error { return nil }

type mockExerciseRepo struct {
	createFn func(ctx context.Context, exercise *model.Exercise) error
	updateFn func(ctx context.Context, exercise *model.Exercise) (bool, error)
}

func (m *mockExerciseRepo) ListByUser(_ context.Context, _ string) ([]*model.Exercise, error) {
	return nil, nil
}

func (m *mockExerciseRepo) FindByIDAndUser(_ context.Context, _, _ string) (*model.Exercise, error) {
	return nil, nil
}

func (m *mockExerciseRepo) Create(ctx context.Context, exercise *model.Exercise) error {
	if m.createFn != nil {
		return m.createFn(ctx, exercise)
	}
	return nil
}

func (m *mockExerciseRepo) Update(ctx context.Context, exercise *model.Exercise) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, exercise)
	}
	return true, nil
}

func (m *mockExerciseRepo) Delete(_ context.Context, _, _ string) (bool, error) { return true, nil }
func (m *mockExerciseRepo) DeleteByUserID(_ context.Context, _ string) error    { return nil }

type mockSleepRepo struct {
	createFn func(ctx context.Context, entry *model.SleepEntry) error
	updateFn func(ctx context.Context, entry *model.SleepEntry) (bool, error)
}

func (m *mockSleepRepo) ListByUser(_ context.Context, _ string) ([]*model.SleepEntry, error) {
	return nil, nil
}

func (m *mockSleepRepo) FindByIDAndUser(_ context.Context, _, _ string) (*model.SleepEntry, error) {
	return nil, nil
}

func (m *mockSleepRepo) Create(ctx context.Context, entry *model.SleepEntry) error {
	if m.createFn != nil {
		return m.createFn(ctx, entry)
	}
	return nil
}

func (m *mockSleepRepo) Update(ctx context.Context, entry *model.SleepEntry) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, entry)
	}
	return true, nil
}

func (m *mockSleepRepo) Delete(_ context.Context, _, _ string) (bool, error) { return true, nil }
func (m *mockSleepRepo) DeleteByUserID(_ context.Context, _ string) error    { return nil }

type mockEventRepo struct {
	createFn func(ctx context.Context, event *model.CalendarEvent) error
	updateFn func(ctx context.Context, event *model.CalendarEvent) (bool, error)
}

func (m *mockEventRepo) ListByUser(_ context.Context, _ string) ([]*model.CalendarEvent, error) {
	return nil, nil
}

func (m *mockEventRepo) FindByIDAndUser(_ context.Context, _, _ string) (*model.CalendarEvent, error) {
	return nil, nil
}

func (m *mockEventRepo) Create(ctx context.Context, event *model.CalendarEvent) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *model.CalendarEvent) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, event)
	}
	return true, nil
}

func (m *mockEventRepo) Delete(_ context.Context, _, _ string) (bool, error) { return true, nil }
func (m *mockEventRepo) DeleteByUserID(_ context.Context, _ string) error    { return nil }

// --- compile-time interface checks ---
var _ repository.TodoRepository = (*mockTodoRepo)(nil)
var _ repository.FoodItemRepository = (*mockFoodRepo)(nil)
var _ repository.ExerciseRepository = (*mockExerciseRepo)(nil)
var _ repository.SleepRepository = (*mockSleepRepo)(nil)
var _ repository.CalendarEventRepository = (*mockEventRepo)(nil)
var _ security.TextSanitizerService = passthroughSanitizer{}

package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/lifelog/internal/model"
)

func TestExerciseCreate_Success(t *testing.T) {
	var created *model.Exercise
	repo := &mockExerciseRepo{
		createFn: func(ctx context.Context, exercise *model.Exercise) error {
			created = exercise
			return nil
		},
	}
	svc := NewExerciseService(repo, passthroughSanitizer{})

	exercise, err := svc.Create(context.Background(), "user-1", ExerciseInput{
		Name:            "ランニング",
		DurationMinutes: "30",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created == nil {
		t.Fatal("repo.Create was not called")
	}
	if exercise.DurationMinutes != 30 {
		t.Errorf("DurationMinutes = %d, want 30", exercise.DurationMinutes)
	}
}

func TestExerciseCreate_InvalidDuration_Fails(t *testing.T) {
	svc := NewExerciseService(&mockExerciseRepo{}, passthroughSanitizer{})

	cases := []string{"", "abc", "0", "-5", "1441", "30.5"}
	for _, duration := range cases {
		_, err := svc.Create(context.Background(), "user-1", ExerciseInput{
			Name:            "筋トレ",
			DurationMinutes: duration,
		})
		var appErr *model.AppError
		if !errors.As(err, &appErr) || appErr.Code != model.ErrCodeValidation {
			t.Errorf("duration %q: err = %v, want VALIDATION_FAILED", duration, err)
		}
	}
}

func TestExerciseUpdate_NotOwned_ReturnsNotFound(t *testing.T) {
	repo := &mockExerciseRepo{
		updateFn: func(ctx context.Context, exercise *model.Exercise) (bool, error) {
			return false, nil
		},
	}
	svc := NewExerciseService(repo, passthroughSanitizer{})

	_, err := svc.Update(context.Background(), "other-id", "user-1", ExerciseInput{
		Name:            "水泳",
		DurationMinutes: "45",
	})

	var appErr *model.AppError
	if !errors.As(err, &appErr) || appErr.Code != model.ErrCodeRecordNotFound {
		t.Fatalf("err = %v, want RECORD_NOT_FOUND", err)
	}
}

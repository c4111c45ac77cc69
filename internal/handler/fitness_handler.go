package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/tracker"
)

// ExerciseServiceInterface は運動記録ハンドラーが必要とするサービスインターフェース。
type ExerciseServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.Exercise, error)
	Get(ctx context.Context, id, userID string) (*model.Exercise, error)
	Create(ctx context.Context, userID string, input tracker.ExerciseInput) (*model.Exercise, error)
	Update(ctx context.Context, id, userID string, input tracker.ExerciseInput) (*model.Exercise, error)
	Delete(ctx context.Context, id, userID string) error
}

// FitnessHandler は運動記録のHTTPハンドラー。
type FitnessHandler struct {
	base
	service ExerciseServiceInterface
}

// NewFitnessHandler はFitnessHandlerを生成する。
func NewFitnessHandler(b base, service ExerciseServiceInterface) *FitnessHandler {
	return &FitnessHandler{base: b, service: service}
}

// List は運動記録一覧を表示する。
// GET /fitness
func (h *FitnessHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	exercises, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/")
		return
	}

	h.render(w, r, "fitness_list", exercises)
}

// Add は運動記録を追加する。
// POST /fitness/add
func (h *FitnessHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Create(r.Context(), userID, fitnessInputFromForm(r)); err != nil {
		h.redirectWithError(w, r, err, "/fitness")
		return
	}

	http.Redirect(w, r, "/fitness", http.StatusSeeOther)
}

// ShowEdit は編集フォームを表示する。
// GET /fitness/edit/{id}
func (h *FitnessHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	exercise, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/fitness")
		return
	}

	h.render(w, r, "fitness_edit", exercise)
}

// Edit は運動記録を更新する。
// POST /fitness/edit/{id}
func (h *FitnessHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), userID, fitnessInputFromForm(r)); err != nil {
		h.redirectWithError(w, r, err, "/fitness")
		return
	}

	h.redirectWithSuccess(w, r, "運動記録を更新しました", "/fitness")
}

// Delete は運動記録を削除する。
// POST /fitness/delete/{id}
func (h *FitnessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.redirectWithError(w, r, err, "/fitness")
		return
	}

	http.Redirect(w, r, "/fitness", http.StatusSeeOther)
}

func fitnessInputFromForm(r *http.Request) tracker.ExerciseInput {
	return tracker.ExerciseInput{
		Name:            r.PostFormValue("name"),
		DurationMinutes: r.PostFormValue("duration_minutes"),
	}
}

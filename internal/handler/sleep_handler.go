package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/tracker"
)

// SleepServiceInterface は睡眠記録ハンドラーが必要とするサービスインターフェース。
type SleepServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.SleepEntry, error)
	Get(ctx context.Context, id, userID string) (*model.SleepEntry, error)
	Create(ctx context.Context, userID string, input tracker.SleepInput) (*model.SleepEntry, error)
	Update(ctx context.Context, id, userID string, input tracker.SleepInput) (*model.SleepEntry, error)
	Delete(ctx context.Context, id, userID string) error
}

// SleepHandler は睡眠記録のHTTPハンドラー。
type SleepHandler struct {
	base
	service SleepServiceInterface
}

// NewSleepHandler はSleepHandlerを生成する。
func NewSleepHandler(b base, service SleepServiceInterface) *SleepHandler {
	return &SleepHandler{base: b, service: service}
}

// List は睡眠記録一覧を表示する。
// GET /sleep
func (h *SleepHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/")
		return
	}

	h.render(w, r, "sleep_list", entries)
}

// Add は睡眠記録を追加する。
// POST /sleep/add
func (h *SleepHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Create(r.Context(), userID, sleepInputFromForm(r)); err != nil {
		h.redirectWithError(w, r, err, "/sleep")
		return
	}

	http.Redirect(w, r, "/sleep", http.StatusSeeOther)
}

// ShowEdit は編集フォームを表示する。
// GET /sleep/edit/{id}
func (h *SleepHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	entry, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/sleep")
		return
	}

	h.render(w, r, "sleep_edit", entry)
}

// Edit は睡眠記録を更新する。
// POST /sleep/edit/{id}
func (h *SleepHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), userID, sleepInputFromForm(r)); err != nil {
		h.redirectWithError(w, r, err, "/sleep")
		return
	}

	h.redirectWithSuccess(w, r, "睡眠記録を更新しました", "/sleep")
}

// Delete は睡眠記録を削除する。
// POST /sleep/delete/{id}
func (h *SleepHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.redirectWithError(w, r, err, "/sleep")
		return
	}

	http.Redirect(w, r, "/sleep", http.StatusSeeOther)
}

func sleepInputFromForm(r *http.Request) tracker.SleepInput {
	return tracker.SleepInput{
		Quality:       r.PostFormValue("quality"),
		DurationHours: r.PostFormValue("duration_hours"),
		SleptOn:       r.PostFormValue("slept_on"),
	}
}

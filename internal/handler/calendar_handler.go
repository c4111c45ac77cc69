package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/tracker"
)

// EventServiceInterface はカレンダーハンドラーが必要とするサービスインターフェース。
type EventServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.CalendarEvent, error)
	Get(ctx context.Context, id, userID string) (*model.CalendarEvent, error)
	Create(ctx context.Context, userID string, input tracker.EventInput) (*model.CalendarEvent, error)
	Update(ctx context.Context, id, userID string, input tracker.EventInput) (*model.CalendarEvent, error)
	Delete(ctx context.Context, id, userID string) error
}

// CalendarHandler はカレンダー予定のHTTPハンドラー。
type CalendarHandler struct {
	base
	service EventServiceInterface
}

// NewCalendarHandler はCalendarHandlerを生成する。
func NewCalendarHandler(b base, service EventServiceInterface) *CalendarHandler {
	return &CalendarHandler{base: b, service: service}
}

// List は予定一覧を表示する。
// GET /calendar
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	events, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/")
		return
	}

	h.render(w, r, "calendar_list", events)
}

// Add は予定を追加する。
// POST /calendar/add
func (h *CalendarHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Create(r.Context(), userID, eventInputFromForm(r)); err != nil {
		h.redirectWithError(w, r, err, "/calendar")
		return
	}

	http.Redirect(w, r, "/calendar", http.StatusSeeOther)
}

// ShowEdit は編集フォームを表示する。
// GET /calendar/edit/{id}
func (h *CalendarHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	event, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/calendar")
		return
	}

	h.render(w, r, "calendar_edit", event)
}

// Edit は予定を更新する。
// POST /calendar/edit/{id}
func (h *CalendarHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), userID, eventInputFromForm(r)); err != nil {
		h.redirectWithError(w, r, err, "/calendar")
		return
	}

	h.redirectWithSuccess(w, r, "予定を更新しました", "/calendar")
}

// Delete は予定を削除する。
// POST /calendar/delete/{id}
func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.redirectWithError(w, r, err, "/calendar")
		return
	}

	http.Redirect(w, r, "/calendar", http.StatusSeeOther)
}

func eventInputFromForm(r *http.Request) tracker.EventInput {
	return tracker.EventInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		StartDate:   r.PostFormValue("start_date"),
		EventTime:   r.PostFormValue("event_time"),
	}
}

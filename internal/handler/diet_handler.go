package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/tracker"
)

// FoodServiceInterface は食事記録ハンドラーが必要とするサービスインターフェース。
type FoodServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.FoodItem, error)
	Get(ctx context.Context, id, userID string) (*model.FoodItem, error)
	Create(ctx context.Context, userID string, input tracker.FoodInput) (*model.FoodItem, error)
	Update(ctx context.Context, id, userID string, input tracker.FoodInput) (*model.FoodItem, error)
	Delete(ctx context.Context, id, userID string) error
}

// DietHandler は食事記録のHTTPハンドラー。
type DietHandler struct {
	base
	service FoodServiceInterface
}

// NewDietHandler はDietHandlerを生成する。
func NewDietHandler(b base, service FoodServiceInterface) *DietHandler {
	return &DietHandler{base: b, service: service}
}

// List は食事記録一覧を表示する。
// GET /diet
func (h *DietHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/")
		return
	}

	h.render(w, r, "diet_list", items)
}

// Add は食事記録を追加する。
// POST /diet/add
func (h *DietHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Create(r.Context(), userID, dietInputFromForm(r)); err != nil {
		h.redirectWithError(w, r, err, "/diet")
		return
	}

	http.Redirect(w, r, "/diet", http.StatusSeeOther)
}

// ShowEdit は編集フォームを表示する。
// GET /diet/edit/{id}
func (h *DietHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/diet")
		return
	}

	h.render(w, r, "diet_edit", item)
}

// Edit は食事記録を更新する。
// POST /diet/edit/{id}
func (h *DietHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if _, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), userID, dietInputFromForm(r)); err != nil {
		h.redirectWithError(w, r, err, "/diet")
		return
	}

	h.redirectWithSuccess(w, r, "食事記録を更新しました", "/diet")
}

// Delete は食事記録を削除する。
// POST /diet/delete/{id}
func (h *DietHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.redirectWithError(w, r, err, "/diet")
		return
	}

	http.Redirect(w, r, "/diet", http.StatusSeeOther)
}

func dietInputFromForm(r *http.Request) tracker.FoodInput {
	return tracker.FoodInput{
		Name:     r.PostFormValue("name"),
		Carbs:    r.PostFormValue("carbs"),
		Protein:  r.PostFormValue("protein"),
		Calories: r.PostFormValue("calories"),
	}
}

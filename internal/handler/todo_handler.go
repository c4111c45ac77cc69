package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/tracker"
)

// TodoServiceInterface はToDoハンドラーが必要とするサービスインターフェース。
type TodoServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.Todo, error)
	Get(ctx context.Context, id, userID string) (*model.Todo, error)
	Create(ctx context.Context, userID string, input tracker.TodoInput) (*model.Todo, error)
	Update(ctx context.Context, id, userID string, input tracker.TodoInput) (*model.Todo, error)
	Toggle(ctx context.Context, id, userID string) (*model.Todo, error)
	Delete(ctx context.Context, id, userID string) error
}

// TodoHandler はToDoリストのHTTPハンドラー。
type TodoHandler struct {
	base
	service TodoServiceInterface
}

// NewTodoHandler はTodoHandlerを生成する。
func NewTodoHandler(b base, service TodoServiceInterface) *TodoHandler {
	return &TodoHandler{base: b, service: service}
}

// List はToDo一覧を表示する。
// GET /todo
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	todos, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/")
		return
	}

	h.render(w, r, "todo_list", todos)
}

// Add はToDoを追加する。
// POST /todo/add
func (h *TodoHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	input := tracker.TodoInput{
		Content:   r.PostFormValue("content"),
		Completed: r.PostFormValue("completed"),
	}
	if _, err := h.service.Create(r.Context(), userID, input); err != nil {
		h.redirectWithError(w, r, err, "/todo")
		return
	}

	http.Redirect(w, r, "/todo", http.StatusSeeOther)
}

// ShowEdit は編集フォームを表示する。
// GET /todo/edit/{id}
func (h *TodoHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	todo, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		h.redirectWithError(w, r, err, "/todo")
		return
	}

	h.render(w, r, "todo_edit", todo)
}

// Edit はToDoを更新する。
// POST /todo/edit/{id}
func (h *TodoHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	input := tracker.TodoInput{
		Content:   r.PostFormValue("content"),
		Completed: r.PostFormValue("completed"),
	}
	if _, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), userID, input); err != nil {
		h.redirectWithError(w, r, err, "/todo")
		return
	}

	h.redirectWithSuccess(w, r, "ToDoを更新しました", "/todo")
}

// Toggle は完了状態を反転する。
// POST /todo/toggle/{id}
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Toggle(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.redirectWithError(w, r, err, "/todo")
		return
	}

	http.Redirect(w, r, "/todo", http.StatusSeeOther)
}

// Delete はToDoを削除する。
// POST /todo/delete/{id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		h.redirectWithError(w, r, err, "/todo")
		return
	}

	http.Redirect(w, r, "/todo", http.StatusSeeOther)
}

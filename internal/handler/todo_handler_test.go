package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hitoshi/lifelog/internal/middleware"
	"github.com/hitoshi/lifelog/internal/model"
	"github.com/hitoshi/lifelog/internal/tracker"
)

type mockTodoService struct {
	listFn   func(ctx context.Context, userID string) ([]*model.Todo, error)
	getFn    func(ctx context.Context, id, userID string) (*model.Todo, error)
	createFn func(ctx context.Context, userID string, input tracker.TodoInput) (*model.Todo, error)
	updateFn func(ctx context.Context, id, userID string, input tracker.TodoInput) (*model.Todo, error)
	toggleFn func(ctx context.Context, id, userID string) (*model.Todo, error)
	deleteFn func(ctx context.Context, id, userID string) error
}

func (m *mockTodoService) List(ctx context.Context, userID string) ([]*model.Todo, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTodoService) Get(ctx context.Context, id, userID string) (*model.Todo, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id, userID)
	}
	return nil, model.NewRecordNotFoundError()
}

func (m *mockTodoService) Create(ctx context.Context, userID string, input tracker.TodoInput) (*model.Todo, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, input)
	}
	return nil, nil
}

func (m *mockTodoService) Update(ctx context.Context, id, userID string, input tracker.TodoInput) (*model.Todo, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, userID, input)
	}
	return nil, nil
}

func (m *mockTodoService) Toggle(ctx context.Context, id, userID string) (*model.Todo, error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, id, userID)
	}
	return nil, nil
}

func (m *mockTodoService) Delete(ctx context.Context, id, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return nil
}

var _ TodoServiceInterface = (*mockTodoService)(nil)

func authedRequest(method, path string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = postForm(path, form)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	return req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))
}

func TestTodoList_RendersItems(t *testing.T) {
	service := &mockTodoService{
		listFn: func(ctx context.Context, userID string) ([]*model.Todo, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q", userID)
			}
			return []*model.Todo{{ID: "t1", UserID: userID, Content: "牛乳を買う"}}, nil
		},
	}
	h := NewTodoHandler(newTestBase(t), service)

	req := authedRequest(http.MethodGet, "/todo", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "牛乳を買う") {
		t.Error("rendered page missing todo content")
	}
}

func TestTodoList_Unauthenticated_RedirectsToLogin(t *testing.T) {
	h := NewTodoHandler(newTestBase(t), &mockTodoService{})

	req := httptest.NewRequest(http.MethodGet, "/todo", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("response = %d %q, want 303 /login", rec.Code, rec.Header().Get("Location"))
	}
}

func TestTodoAdd_RedirectsToList(t *testing.T) {
	var gotInput tracker.TodoInput
	service := &mockTodoService{
		createFn: func(ctx context.Context, userID string, input tracker.TodoInput) (*model.Todo, error) {
			gotInput = input
			return &model.Todo{ID: "t1", UserID: userID, Content: input.Content}, nil
		},
	}
	h := NewTodoHandler(newTestBase(t), service)

	req := authedRequest(http.MethodPost, "/todo/add", url.Values{"content": {"買い物"}})
	rec := httptest.NewRecorder()
	h.Add(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/todo" {
		t.Fatalf("response = %d %q, want 303 /todo", rec.Code, rec.Header().Get("Location"))
	}
	if gotInput.Content != "買い物" {
		t.Errorf("input.Content = %q", gotInput.Content)
	}
}

func TestTodoAdd_ValidationError_RedirectsWithFlash(t *testing.T) {
	service := &mockTodoService{
		createFn: func(ctx context.Context, userID string, input tracker.TodoInput) (*model.Todo, error) {
			return nil, model.NewValidationError("内容を入力してください")
		},
	}
	h := NewTodoHandler(newTestBase(t), service)

	req := authedRequest(http.MethodPost, "/todo/add", url.Values{"content": {""}})
	rec := httptest.NewRecorder()
	h.Add(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	var flashSet bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "lifelog_flash" && c.Value != "" {
			flashSet = true
		}
	}
	if !flashSet {
		t.Error("flash cookie was not set")
	}
}

func TestTodoShowEdit_NotOwned_RedirectsToList(t *testing.T) {
	h := NewTodoHandler(newTestBase(t), &mockTodoService{})

	req := authedRequest(http.MethodGet, "/todo/edit/other-id", nil)
	req = withChiParam(req, "id", "other-id")
	rec := httptest.NewRecorder()
	h.ShowEdit(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/todo" {
		t.Errorf("response = %d %q, want 303 /todo", rec.Code, rec.Header().Get("Location"))
	}
}

func TestTodoDelete_PassesIDAndOwner(t *testing.T) {
	var gotID, gotUserID string
	service := &mockTodoService{
		deleteFn: func(ctx context.Context, id, userID string) error {
			gotID, gotUserID = id, userID
			return nil
		},
	}
	h := NewTodoHandler(newTestBase(t), service)

	req := authedRequest(http.MethodPost, "/todo/delete/t1", url.Values{})
	req = withChiParam(req, "id", "t1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if gotID != "t1" || gotUserID != "user-1" {
		t.Errorf("Delete(%q, %q), want (t1, user-1)", gotID, gotUserID)
	}
}

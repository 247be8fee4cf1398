package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/adapters/http/dto"
)

func TestTaskHandler_GetTask(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()
	l := f.seedList(t, owner, "Chores")
	tk := f.seedTask(t, owner, l.ID, "Laundry")

	r := newRequest(t, http.MethodGet, "/api/v1/tasks/"+tk.ID.String(), owner, nil,
		map[string]string{"taskId": tk.ID.String()})
	rec := serve(f.tasks.GetTask, r)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TaskResponse](t, rec)
	if resp.ID != tk.ID {
		t.Errorf("ID = %v, want %v", resp.ID, tk.ID)
	}
	if resp.TodoListID != l.ID {
		t.Errorf("TodoListID = %v, want %v", resp.TodoListID, l.ID)
	}
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	missing := uuid.New()

	r := newRequest(t, http.MethodGet, "/api/v1/tasks/"+missing.String(), uuid.New(), nil,
		map[string]string{"taskId": missing.String()})
	rec := serve(f.tasks.GetTask, r)

	requireStatus(t, rec, http.StatusNotFound)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if resp.Code != "ENTITY_NOT_FOUND" {
		t.Errorf("Code = %q, want %q", resp.Code, "ENTITY_NOT_FOUND")
	}
}

func TestTaskHandler_ChangeStatus(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()
	l := f.seedList(t, owner, "Chores")
	tk := f.seedTask(t, owner, l.ID, "Laundry")

	body := jsonBody(t, dto.ChangeStatusRequest{Status: "in_progress"})
	r := newRequest(t, http.MethodPut, "/api/v1/tasks/"+tk.ID.String()+"/status", owner, body,
		map[string]string{"taskId": tk.ID.String()})
	rec := serve(f.tasks.ChangeStatus, r)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TaskResponse](t, rec)
	if resp.Status != "in_progress" {
		t.Errorf("Status = %q, want %q", resp.Status, "in_progress")
	}
}

func TestTaskHandler_ChangeStatus_InvalidTransition(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()
	l := f.seedList(t, owner, "Chores")
	tk := f.seedTask(t, owner, l.ID, "Laundry")

	// not_started -> not_started is a rejected self-transition.
	body := jsonBody(t, dto.ChangeStatusRequest{Status: "not_started"})
	r := newRequest(t, http.MethodPut, "/api/v1/tasks/"+tk.ID.String()+"/status", owner, body,
		map[string]string{"taskId": tk.ID.String()})
	rec := serve(f.tasks.ChangeStatus, r)

	requireStatus(t, rec, http.StatusUnprocessableEntity)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if resp.Code != "INVALID_STATUS_TRANSITION" {
		t.Errorf("Code = %q, want %q", resp.Code, "INVALID_STATUS_TRANSITION")
	}
}

func TestTaskHandler_DueDateRoundTrip(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()
	l := f.seedList(t, owner, "Chores")
	tk := f.seedTask(t, owner, l.ID, "Taxes")
	params := map[string]string{"taskId": tk.ID.String()}

	due := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	body := jsonBody(t, dto.SetDueDateRequest{DueDate: due})
	r := newRequest(t, http.MethodPut, "/api/v1/tasks/"+tk.ID.String()+"/due-date", owner, body, params)
	rec := serve(f.tasks.SetDueDate, r)
	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TaskResponse](t, rec)
	if resp.DueDate == nil {
		t.Fatal("DueDate = nil, want set")
	}

	r = newRequest(t, http.MethodDelete, "/api/v1/tasks/"+tk.ID.String()+"/due-date", owner, nil, params)
	rec = serve(f.tasks.ClearDueDate, r)
	requireStatus(t, rec, http.StatusOK)
	resp = decodeJSON[dto.TaskResponse](t, rec)
	if resp.DueDate != nil {
		t.Errorf("DueDate = %v, want nil after clearing", *resp.DueDate)
	}
}

func TestTaskHandler_Assign(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()
	assignee := uuid.New()
	l := f.seedList(t, owner, "Chores")
	tk := f.seedTask(t, owner, l.ID, "Dishes")
	params := map[string]string{"taskId": tk.ID.String()}

	body := jsonBody(t, dto.AssignTaskRequest{UserID: &assignee})
	r := newRequest(t, http.MethodPut, "/api/v1/tasks/"+tk.ID.String()+"/assignee", owner, body, params)
	rec := serve(f.tasks.Assign, r)
	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TaskResponse](t, rec)
	if resp.AssignedUserID == nil || *resp.AssignedUserID != assignee {
		t.Errorf("AssignedUserID = %v, want %v", resp.AssignedUserID, assignee)
	}

	body = jsonBody(t, dto.AssignTaskRequest{})
	r = newRequest(t, http.MethodPut, "/api/v1/tasks/"+tk.ID.String()+"/assignee", owner, body, params)
	rec = serve(f.tasks.Assign, r)
	requireStatus(t, rec, http.StatusOK)
	resp = decodeJSON[dto.TaskResponse](t, rec)
	if resp.AssignedUserID != nil {
		t.Errorf("AssignedUserID = %v, want nil after unassign", *resp.AssignedUserID)
	}
}

func TestTaskHandler_CommentFlow(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()
	l := f.seedList(t, owner, "Chores")
	tk := f.seedTask(t, owner, l.ID, "Dishes")
	params := map[string]string{"taskId": tk.ID.String()}

	body := jsonBody(t, dto.CreateCommentRequest{Content: "use the good sponge"})
	r := newRequest(t, http.MethodPost, "/api/v1/tasks/"+tk.ID.String()+"/comments", owner, body, params)
	rec := serve(f.tasks.AddComment, r)
	requireStatus(t, rec, http.StatusCreated)
	created := decodeJSON[dto.CommentResponse](t, rec)

	cparams := map[string]string{"commentId": created.ID.String()}
	body = jsonBody(t, dto.UpdateCommentRequest{Content: "never mind"})
	r = newRequest(t, http.MethodPatch, "/api/v1/comments/"+created.ID.String(), owner, body, cparams)
	rec = serve(f.tasks.UpdateComment, r)
	requireStatus(t, rec, http.StatusOK)
	updated := decodeJSON[dto.CommentResponse](t, rec)
	if updated.Content != "never mind" {
		t.Errorf("Content = %q, want %q", updated.Content, "never mind")
	}

	r = newRequest(t, http.MethodGet, "/api/v1/tasks/"+tk.ID.String()+"/comments", owner, nil, params)
	rec = serve(f.tasks.Comments, r)
	requireStatus(t, rec, http.StatusOK)
	page := decodeJSON[dto.PagedResponse[dto.CommentResponse]](t, rec)
	if page.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", page.TotalCount)
	}

	r = newRequest(t, http.MethodDelete, "/api/v1/comments/"+created.ID.String(), owner, nil, cparams)
	rec = serve(f.tasks.DeleteComment, r)
	requireStatus(t, rec, http.StatusNoContent)
}

func TestTaskHandler_Tasks_Filtered(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()
	l := f.seedList(t, owner, "Chores")
	f.seedTask(t, owner, l.ID, "Wash windows")
	f.seedTask(t, owner, l.ID, "Dust shelves")

	r := newRequest(t, http.MethodGet, "/api/v1/tasks?list_id="+l.ID.String()+"&search=windows", owner, nil, nil)
	rec := serve(f.tasks.Tasks, r)

	requireStatus(t, rec, http.StatusOK)
	page := decodeJSON[dto.PagedResponse[dto.TaskResponse]](t, rec)
	if page.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", page.TotalCount)
	}
	if page.Items[0].Title != "Wash windows" {
		t.Errorf("Items[0].Title = %q, want %q", page.Items[0].Title, "Wash windows")
	}
}

func TestTaskHandler_Tasks_BadFilter(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)

	r := newRequest(t, http.MethodGet, "/api/v1/tasks?status=paused", uuid.New(), nil, nil)
	rec := serve(f.tasks.Tasks, r)

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestTaskHandler_BulkChangeStatus(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()
	l := f.seedList(t, owner, "Chores")
	a := f.seedTask(t, owner, l.ID, "A")
	missing := uuid.New()

	body := jsonBody(t, dto.BulkStatusRequest{Changes: []dto.BulkStatusChange{
		{TaskID: a.ID, Status: "in_progress"},
		{TaskID: missing, Status: "in_progress"},
	}})
	r := newRequest(t, http.MethodPost, "/api/v1/tasks/bulk/status", owner, body, nil)
	rec := serve(f.tasks.BulkChangeStatus, r)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.BulkStatusResponse](t, rec)
	if resp.Succeeded != 1 || resp.Failed != 1 {
		t.Errorf("Succeeded/Failed = %d/%d, want 1/1", resp.Succeeded, resp.Failed)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].TaskID != missing {
		t.Errorf("Errors = %v, want one entry for %v", resp.Errors, missing)
	}
}

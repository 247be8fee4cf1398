package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/adapters/http/dto"
)

func TestTagHandler_CreateTag(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()

	body := jsonBody(t, dto.CreateTagRequest{Name: "work"})
	r := newRequest(t, http.MethodPost, "/api/v1/tags", owner, body, nil)
	rec := serve(f.tags.CreateTag, r)

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.TagResponse](t, rec)
	if resp.Name != "work" {
		t.Errorf("Name = %q, want %q", resp.Name, "work")
	}
}

func TestTagHandler_CreateTag_Duplicate(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()

	create := func() int {
		body := jsonBody(t, dto.CreateTagRequest{Name: "work"})
		r := newRequest(t, http.MethodPost, "/api/v1/tags", owner, body, nil)
		return serve(f.tags.CreateTag, r).Code
	}

	if code := create(); code != http.StatusCreated {
		t.Fatalf("first create status = %d, want %d", code, http.StatusCreated)
	}
	if code := create(); code != http.StatusConflict {
		t.Errorf("second create status = %d, want %d", code, http.StatusConflict)
	}
}

func TestTagHandler_RenameTag(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()

	body := jsonBody(t, dto.CreateTagRequest{Name: "work"})
	r := newRequest(t, http.MethodPost, "/api/v1/tags", owner, body, nil)
	rec := serve(f.tags.CreateTag, r)
	requireStatus(t, rec, http.StatusCreated)
	created := decodeJSON[dto.TagResponse](t, rec)

	body = jsonBody(t, dto.RenameTagRequest{Name: "office"})
	r = newRequest(t, http.MethodPatch, "/api/v1/tags/"+created.ID.String(), owner, body,
		map[string]string{"tagId": created.ID.String()})
	rec = serve(f.tags.RenameTag, r)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TagResponse](t, rec)
	if resp.Name != "office" {
		t.Errorf("Name = %q, want %q", resp.Name, "office")
	}
}

func TestTagHandler_DeleteTag_NonOwner(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()

	body := jsonBody(t, dto.CreateTagRequest{Name: "secret"})
	r := newRequest(t, http.MethodPost, "/api/v1/tags", owner, body, nil)
	rec := serve(f.tags.CreateTag, r)
	requireStatus(t, rec, http.StatusCreated)
	created := decodeJSON[dto.TagResponse](t, rec)

	r = newRequest(t, http.MethodDelete, "/api/v1/tags/"+created.ID.String(), uuid.New(), nil,
		map[string]string{"tagId": created.ID.String()})
	rec = serve(f.tags.DeleteTag, r)

	requireStatus(t, rec, http.StatusNotFound)
}

func TestTagHandler_Tags_Paged(t *testing.T) {
	t.Parallel()
	f := newHandlerFixture(t)
	owner := uuid.New()

	for _, name := range []string{"alpha", "beta", "gamma"} {
		body := jsonBody(t, dto.CreateTagRequest{Name: name})
		r := newRequest(t, http.MethodPost, "/api/v1/tags", owner, body, nil)
		requireStatus(t, serve(f.tags.CreateTag, r), http.StatusCreated)
	}

	r := newRequest(t, http.MethodGet, "/api/v1/tags?page_size=2", owner, nil, nil)
	rec := serve(f.tags.Tags, r)

	requireStatus(t, rec, http.StatusOK)
	page := decodeJSON[dto.PagedResponse[dto.TagResponse]](t, rec)
	if page.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", page.TotalCount)
	}
	if len(page.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(page.Items))
	}
	if page.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", page.TotalPages)
	}
}

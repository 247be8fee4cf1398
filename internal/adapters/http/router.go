// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avoronkov/todoapp/internal/adapters/http/handlers"
	"github.com/avoronkov/todoapp/internal/adapters/http/middleware"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given; the actor middleware is
// applied to the /api/v1 subtree only, so health probes need no identity
// header.
func NewRouter(
	listHandler *handlers.ListHandler,
	taskHandler *handlers.TaskHandler,
	tagHandler *handlers.TagHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor())

		// List CRUD.
		r.Get("/lists", listHandler.Lists)
		r.Post("/lists", listHandler.CreateList)
		r.Get("/lists/{listId}", listHandler.GetList)
		r.Patch("/lists/{listId}", listHandler.UpdateList)
		r.Delete("/lists/{listId}", listHandler.DeleteList)

		// Task membership is managed through the owning list.
		r.Post("/lists/{listId}/tasks", listHandler.AddTask)
		r.Delete("/lists/{listId}/tasks/{taskId}", listHandler.RemoveTask)

		// Share management.
		r.Get("/lists/{listId}/shares", listHandler.Shares)
		r.Post("/lists/{listId}/shares", listHandler.ShareList)
		r.Patch("/lists/{listId}/shares/{userId}", listHandler.ChangeSharePermission)
		r.Delete("/lists/{listId}/shares/{userId}", listHandler.RevokeShare)

		// Task queries and lifecycle.
		r.Get("/tasks", taskHandler.Tasks)
		r.Post("/tasks/bulk/status", taskHandler.BulkChangeStatus)
		r.Get("/tasks/{taskId}", taskHandler.GetTask)
		r.Patch("/tasks/{taskId}", taskHandler.UpdateTask)
		r.Put("/tasks/{taskId}/status", taskHandler.ChangeStatus)
		r.Put("/tasks/{taskId}/priority", taskHandler.SetPriority)
		r.Put("/tasks/{taskId}/due-date", taskHandler.SetDueDate)
		r.Delete("/tasks/{taskId}/due-date", taskHandler.ClearDueDate)
		r.Put("/tasks/{taskId}/assignee", taskHandler.Assign)

		// Comments.
		r.Get("/tasks/{taskId}/comments", taskHandler.Comments)
		r.Post("/tasks/{taskId}/comments", taskHandler.AddComment)
		r.Patch("/comments/{commentId}", taskHandler.UpdateComment)
		r.Delete("/comments/{commentId}", taskHandler.DeleteComment)

		// Tag assignment.
		r.Put("/tasks/{taskId}/tags/{tagId}", taskHandler.TagTask)
		r.Delete("/tasks/{taskId}/tags/{tagId}", taskHandler.UntagTask)

		// Tag CRUD.
		r.Get("/tags", tagHandler.Tags)
		r.Post("/tags", tagHandler.CreateTag)
		r.Patch("/tags/{tagId}", tagHandler.RenameTag)
		r.Delete("/tags/{tagId}", tagHandler.DeleteTag)
	})

	return r
}

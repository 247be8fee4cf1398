package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/adapters/http/dto"
	"github.com/avoronkov/todoapp/internal/domain"
)

// ActorHeader identifies the acting user on API requests. Authentication is
// out of scope for this service; the header is trusted as-is and is expected
// to be populated by an upstream gateway.
const ActorHeader = "X-User-ID"

type actorIDKey struct{}

// Actor returns middleware that extracts the acting user's ID from the
// X-User-ID header and stores it in the request context. Requests without a
// parseable UUID are rejected with a 400 problem response before reaching
// any handler.
func Actor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(ActorHeader)
			if raw == "" {
				dto.WriteErrorResponse(w, r, domain.NewValidationError(
					"X-User-ID", "header is required"))
				return
			}

			actorID, err := uuid.Parse(raw)
			if err != nil {
				dto.WriteErrorResponse(w, r, domain.NewValidationError(
					"X-User-ID", "must be a valid UUID"))
				return
			}

			ctx := context.WithValue(r.Context(), actorIDKey{}, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext returns the acting user's ID stored by Actor, or
// uuid.Nil when the middleware did not run.
func ActorFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(actorIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

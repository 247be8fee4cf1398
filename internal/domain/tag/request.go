package tag

import (
	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain/pagination"
)

// Request narrows a paged query to tags. Zero-value fields mean "no filter"
// for that dimension.
type Request struct {
	pagination.Request

	// OwnerID scopes the query to one user's tags.
	OwnerID uuid.UUID

	// ExactName, when non-empty, matches a single tag by its exact name.
	ExactName string
}

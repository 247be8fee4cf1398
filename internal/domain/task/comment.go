package task

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avoronkov/todoapp/internal/domain"
)

// CommentMaxLength bounds the content of a single comment.
const CommentMaxLength = 1000

// Comment is a remark left on a task by a user. Content is trimmed and
// validated at construction and mutation; a comment belongs to exactly one
// task for its whole life.
type Comment struct {
	domain.Base
	domain.Audit

	TodoTaskID uuid.UUID
	AuthorID   uuid.UUID

	content string
}

// NewComment creates a comment on the given task, stamping the author as
// creator.
func NewComment(todoTaskID, authorID uuid.UUID, content string) (*Comment, error) {
	normalized, err := normalizeCommentContent(content)
	if err != nil {
		return nil, err
	}

	c := &Comment{
		Base:       domain.NewBase(),
		TodoTaskID: todoTaskID,
		AuthorID:   authorID,
		content:    normalized,
	}
	c.SetCreatedInfo(authorID)
	return c, nil
}

// Content returns the comment text.
func (c *Comment) Content() string {
	return c.content
}

// UpdateContent replaces the comment text and stamps the update.
func (c *Comment) UpdateContent(content string, updatedBy uuid.UUID) error {
	normalized, err := normalizeCommentContent(content)
	if err != nil {
		return err
	}
	c.content = normalized
	c.SetUpdatedInfo(updatedBy)
	return nil
}

func normalizeCommentContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", domain.NewValidationError("content", "must not be empty")
	}
	if len([]rune(trimmed)) > CommentMaxLength {
		return "", domain.NewValidationError("content",
			fmt.Sprintf("must not exceed %d characters", CommentMaxLength))
	}
	return trimmed, nil
}

package domain

import (
	"fmt"
	"strings"
)

// Title length bounds. Lists use the default maximum; task titles are
// shorter (TaskTitleMaxLength).
const (
	TitleMinLength     = 1
	TitleMaxLength     = 200
	TaskTitleMaxLength = 100
)

// Title is a validated, immutable title for lists and tasks. Construction is
// the single validation gate: the value is trimmed and its length checked
// against the configured maximum. Two titles are equal when both the
// trimmed value and the maximum match, since titles under different length
// policies are not interchangeable.
type Title struct {
	value string
	max   int
}

// NewTitle builds a list-scoped title (maximum TitleMaxLength characters).
func NewTitle(value string) (Title, error) {
	return NewTitleWithMax(value, TitleMaxLength)
}

// NewTaskTitle builds a task-scoped title (maximum TaskTitleMaxLength
// characters).
func NewTaskTitle(value string) (Title, error) {
	return NewTitleWithMax(value, TaskTitleMaxLength)
}

// NewTitleWithMax builds a title with a caller-supplied maximum length.
// Empty or whitespace-only input is rejected; input whose trimmed length
// exceeds max is rejected rather than truncated.
func NewTitleWithMax(value string, max int) (Title, error) {
	if max < TitleMinLength {
		return Title{}, NewValidationError("maxLength",
			fmt.Sprintf("must be at least %d, got %d", TitleMinLength, max))
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Title{}, NewValidationError("title", "must not be empty")
	}
	if len([]rune(trimmed)) > max {
		return Title{}, NewValidationError("title",
			fmt.Sprintf("must be between %d and %d characters", TitleMinLength, max))
	}

	return Title{value: trimmed, max: max}, nil
}

// IsValidTitle reports whether value would be accepted by NewTitleWithMax.
func IsValidTitle(value string, max int) bool {
	_, err := NewTitleWithMax(value, max)
	return err == nil
}

// Value returns the trimmed title text.
func (t Title) Value() string {
	return t.value
}

// MaxLength returns the maximum length the title was validated against.
func (t Title) MaxLength() int {
	return t.max
}

// Contains reports whether the title contains the given substring,
// case-insensitively.
func (t Title) Contains(search string) bool {
	return strings.Contains(strings.ToLower(t.value), strings.ToLower(search))
}

// ContainsExact reports whether the title contains the given substring with
// exact case.
func (t Title) ContainsExact(search string) bool {
	return strings.Contains(t.value, search)
}

// String implements fmt.Stringer.
func (t Title) String() string {
	return t.value
}

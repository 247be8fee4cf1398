package domain

import (
	"fmt"
	"strings"
)

// Description length maxima. Lists use the default; task descriptions are
// shorter (TaskDescriptionMaxLength).
const (
	DescriptionMaxLength     = 2000
	TaskDescriptionMaxLength = 500
)

// Description is a validated, immutable free-text description. Unlike Title,
// empty or whitespace-only input is legal and normalizes to the absent
// description (IsEmpty reports true) rather than an empty string with
// meaning. Input whose trimmed length exceeds the configured maximum is
// rejected at construction.
type Description struct {
	value string
	max   int
}

// NewDescription builds a list-scoped description (maximum
// DescriptionMaxLength characters).
func NewDescription(value string) (Description, error) {
	return NewDescriptionWithMax(value, DescriptionMaxLength)
}

// NewTaskDescription builds a task-scoped description (maximum
// TaskDescriptionMaxLength characters).
func NewTaskDescription(value string) (Description, error) {
	return NewDescriptionWithMax(value, TaskDescriptionMaxLength)
}

// NewDescriptionWithMax builds a description with a caller-supplied maximum
// length.
func NewDescriptionWithMax(value string, max int) (Description, error) {
	if max < 0 {
		return Description{}, NewValidationError("maxLength",
			fmt.Sprintf("must not be negative, got %d", max))
	}

	trimmed := strings.TrimSpace(value)
	if len([]rune(trimmed)) > max {
		return Description{}, NewValidationError("description",
			fmt.Sprintf("must not exceed %d characters", max))
	}

	return Description{value: trimmed, max: max}, nil
}

// IsValidDescription reports whether value would be accepted by
// NewDescriptionWithMax.
func IsValidDescription(value string, max int) bool {
	_, err := NewDescriptionWithMax(value, max)
	return err == nil
}

// Value returns the trimmed description text; empty string when absent.
func (d Description) Value() string {
	return d.value
}

// MaxLength returns the maximum length the description was validated against.
func (d Description) MaxLength() int {
	return d.max
}

// IsEmpty reports whether the description is absent.
func (d Description) IsEmpty() bool {
	return d.value == ""
}

// Contains reports whether the description contains the given substring,
// case-insensitively. An absent description contains nothing.
func (d Description) Contains(search string) bool {
	if d.IsEmpty() {
		return false
	}
	return strings.Contains(strings.ToLower(d.value), strings.ToLower(search))
}

// ContainsExact reports whether the description contains the given substring
// with exact case.
func (d Description) ContainsExact(search string) bool {
	return !d.IsEmpty() && strings.Contains(d.value, search)
}

// WordCount returns the number of whitespace-separated words.
func (d Description) WordCount() int {
	if d.IsEmpty() {
		return 0
	}
	return len(strings.Fields(d.value))
}

// LineCount returns the number of non-empty lines.
func (d Description) LineCount() int {
	if d.IsEmpty() {
		return 0
	}
	count := 0
	for _, line := range strings.Split(d.value, "\n") {
		if line != "" {
			count++
		}
	}
	return count
}

// String implements fmt.Stringer.
func (d Description) String() string {
	return d.value
}

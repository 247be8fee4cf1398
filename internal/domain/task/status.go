package task

import (
	"fmt"

	"github.com/avoronkov/todoapp/internal/domain"
)

// Status represents the completion state of a task.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// DisplayName returns the human-readable status name.
func (s Status) DisplayName() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// CanTransitionTo reports whether the status machine permits moving from s
// to target. The table is intentionally asymmetric: a completed task must
// pass back through InProgress before it can return to NotStarted.
// Self-transitions are never permitted.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusNotStarted:
		return target == StatusInProgress || target == StatusCompleted
	case StatusInProgress:
		return target == StatusNotStarted || target == StatusCompleted
	case StatusCompleted:
		return target == StatusInProgress
	default:
		return false
	}
}

// PossibleTransitions returns the statuses reachable from s in one step.
func (s Status) PossibleTransitions() []Status {
	switch s {
	case StatusNotStarted:
		return []Status{StatusInProgress, StatusCompleted}
	case StatusInProgress:
		return []Status{StatusNotStarted, StatusCompleted}
	case StatusCompleted:
		return []Status{StatusInProgress}
	default:
		return nil
	}
}

// InvalidTransitionError reports a status change rejected by the transition
// table. It carries both statuses so callers can explain the rejection
// without parsing the message.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change task status from %q to %q", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return domain.ErrInvalidTransition
}

// ErrorCode implements domain.Coded.
func (e *InvalidTransitionError) ErrorCode() string {
	return domain.CodeInvalidTransition
}

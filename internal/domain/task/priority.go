package task

// Priority represents the urgency of a task. The numeric values order
// priorities from least (VeryLow) to most (Critical) urgent and are stable
// across persistence.
type Priority int

const (
	PriorityVeryLow  Priority = 1
	PriorityLow      Priority = 2
	PriorityMedium   Priority = 3
	PriorityHigh     Priority = 4
	PriorityCritical Priority = 5
)

// IsValid returns true if the priority is one of the defined constants.
func (p Priority) IsValid() bool {
	return p >= PriorityVeryLow && p <= PriorityCritical
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	switch p {
	case PriorityVeryLow:
		return "very_low"
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// DisplayName returns the human-readable priority name.
func (p Priority) DisplayName() string {
	switch p {
	case PriorityVeryLow:
		return "Very Low"
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// ParsePriority converts the wire form produced by String back to a
// Priority. Unknown input reports false.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "very_low":
		return PriorityVeryLow, true
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "critical":
		return PriorityCritical, true
	default:
		return 0, false
	}
}

// PrioritiesByImportance returns all priorities ordered from most to least
// urgent.
func PrioritiesByImportance() []Priority {
	return []Priority{
		PriorityCritical,
		PriorityHigh,
		PriorityMedium,
		PriorityLow,
		PriorityVeryLow,
	}
}

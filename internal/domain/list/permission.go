package list

// Permission is the access level granted by a list share.
type Permission string

const (
	PermissionReadOnly   Permission = "read_only"
	PermissionFullAccess Permission = "full_access"
)

// IsValid returns true if the permission is one of the defined constants.
func (p Permission) IsValid() bool {
	switch p {
	case PermissionReadOnly, PermissionFullAccess:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p Permission) String() string {
	return string(p)
}

// DisplayName returns the human-readable permission name.
func (p Permission) DisplayName() string {
	switch p {
	case PermissionReadOnly:
		return "Read Only"
	case PermissionFullAccess:
		return "Full Access"
	default:
		return string(p)
	}
}

// Satisfies reports whether a grant of p meets the given requirement.
// FullAccess satisfies any requirement; ReadOnly satisfies only a ReadOnly
// requirement.
func (p Permission) Satisfies(required Permission) bool {
	if p == PermissionFullAccess {
		return true
	}
	return p == PermissionReadOnly && required == PermissionReadOnly
}

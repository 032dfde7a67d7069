package identity

// Role determines a caller's visibility scope and write permissions.
// The wire encoding is the numeric value (0/1/2), kept for compatibility
// with existing clients.
type Role int

const (
	// RoleOwner sees and manages only records it created
	RoleOwner Role = 0
	// RoleAdmin sees all records and may administer users
	RoleAdmin Role = 1
	// RoleSecondaryAdmin sees all records but cannot delete or administer
	RoleSecondaryAdmin Role = 2
)

// IsValid reports whether the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleSecondaryAdmin:
		return true
	}
	return false
}

// String returns a human-readable role name
func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleAdmin:
		return "admin"
	case RoleSecondaryAdmin:
		return "secondary_admin"
	}
	return "unknown"
}

// CanViewAll reports whether the role may read every record of a document
// type, as opposed to only its own.
func (r Role) CanViewAll() bool {
	return r == RoleAdmin || r == RoleSecondaryAdmin
}

// CanDeleteAny reports whether the role may delete records it does not own.
// Secondary admins can see everything but delete nothing.
func (r Role) CanDeleteAny() bool {
	return r == RoleAdmin
}

// CanDeleteOwn reports whether the role may delete its own records
func (r Role) CanDeleteOwn() bool {
	return r == RoleOwner || r == RoleAdmin
}

// CanManageUsers gates role assignment, user deletion and pending-user
// listing. Only full admins qualify.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

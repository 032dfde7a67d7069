package procurement

import (
	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/domain/shared"
)

// Actor is the authenticated caller of a document operation
type Actor struct {
	ID   uuid.UUID
	Role identity.Role
}

// scopeFilter restricts a list query to the records the actor may see.
// Admins and secondary admins see everything; owners see their own records.
func scopeFilter(actor Actor, filter shared.Filter) (shared.Filter, error) {
	if !actor.Role.IsValid() {
		return filter, shared.ErrUnauthorized
	}
	if actor.Role.CanViewAll() {
		return filter, nil
	}
	return filter.OwnedBy(actor.ID), nil
}

// canRead reports whether the actor may see the record owned by ownerID
func canRead(actor Actor, ownerID uuid.UUID) bool {
	if !actor.Role.IsValid() {
		return false
	}
	return actor.Role.CanViewAll() || actor.ID == ownerID
}

// canModify reports whether the actor may update the record owned by ownerID
func canModify(actor Actor, ownerID uuid.UUID) bool {
	return canRead(actor, ownerID)
}

// canDelete reports whether the actor may delete the record owned by
// ownerID. Admins delete anything, owners delete their own records,
// secondary admins delete nothing.
func canDelete(actor Actor, ownerID uuid.UUID) bool {
	if actor.Role.CanDeleteAny() {
		return true
	}
	return actor.Role.CanDeleteOwn() && actor.ID == ownerID
}

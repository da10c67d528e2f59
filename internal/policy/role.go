// Package policy decides whether a request that touches a user's role is
// allowed. It is purely a decision layer: callers strip or reject the field
// themselves before anything reaches the database.
package policy

import (
	"errors"

	"github.com/wanderly/travelmarket/internal/models"
)

var (
	// ErrRoleModificationForbidden: a non-admin tried to change their own role.
	ErrRoleModificationForbidden = errors.New("role modification forbidden")
	// ErrAdminRequired: a non-admin tried to change someone else's role.
	ErrAdminRequired = errors.New("admin required")
)

// CheckRoleChange gates a mutation request against the role rules.
// requestedRole is nil when the request does not touch the role field at
// all, in which case the policy has nothing to say.
func CheckRoleChange(actorID uint, actorRole string, target *models.User, requestedRole *string) error {
	if requestedRole == nil {
		return nil
	}
	if actorRole == models.RoleAdmin {
		return nil
	}
	if *requestedRole == target.Role {
		// Not a real change.
		return nil
	}
	if target.ID == actorID {
		return ErrRoleModificationForbidden
	}
	return ErrAdminRequired
}

// StripRoleFields is the lenient companion to CheckRoleChange: instead of
// rejecting the request it silently drops the role field for non-admins.
// Which variant an endpoint uses is wiring, not policy.
func StripRoleFields(actorRole string, fields map[string]any) map[string]any {
	if actorRole == models.RoleAdmin {
		return fields
	}
	delete(fields, "role")
	return fields
}

// Package policy holds the role and ownership rules shared by every store.
// The functions are pure; callers turn a false result into an authorization error.
package policy

import "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"

// CanModify reports whether actor may change a resource owned by ownerID.
// An empty owner id (anonymous submission) only matches admins.
func CanModify(actor entity.Caller, ownerID string) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsAuthenticated() && ownerID != "" && actor.ID == ownerID
}

// RequireRole reports whether actor holds one of the allowed roles.
func RequireRole(actor entity.Caller, allowed ...entity.UserRole) bool {
	if !actor.IsAuthenticated() {
		return false
	}
	for _, role := range allowed {
		if actor.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for RequireRole(actor, admin).
func IsAdmin(actor entity.Caller) bool {
	return RequireRole(actor, entity.UserRoleAdmin)
}

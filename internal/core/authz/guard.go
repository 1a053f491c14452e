// Package authz contains the pure authorization predicates applied before any
// resource mutation or disclosure. The guard never mutates state; it only
// consumes the already-authenticated caller and the resource's owner field.
// Callers must resolve resource existence first, so a missing resource is
// reported as not-found and an ownership mismatch as forbidden, in that order.
package authz

import "github.com/tastecraft/menu-studio/internal/core/domain"

// RequireOwnerOrRole succeeds when the caller owns the resource or holds one
// of the allowed roles. A nil ownerID never matches a caller, so orphaned
// resources are only reachable through a role.
func RequireOwnerOrRole(ownerID *int64, caller *domain.User, allowed ...domain.Role) error {
	if caller == nil {
		return domain.ErrForbidden
	}
	if ownerID != nil && *ownerID == caller.ID {
		return nil
	}
	role := caller.Role()
	for _, r := range allowed {
		if role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}

// RequireAdminOrManager gates the administrative surface.
func RequireAdminOrManager(caller *domain.User) error {
	if caller == nil {
		return domain.ErrForbidden
	}
	switch caller.Role() {
	case domain.RoleAdmin, domain.RoleManager:
		return nil
	default:
		return domain.ErrForbidden
	}
}

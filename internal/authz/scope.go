// Package authz holds the role-to-scope resolution that every request passes
// through before any data access. Centralizing the mapping in one pure
// function keeps handlers from ever scoping queries by a staff member's own
// id instead of their owner's tenant id.
package authz

import (
	"errors"

	"github.com/google/uuid"
	"catalog-service/internal/models"
)

// ErrInvalidRole signals a data-invariant violation: a role outside the
// closed set, or a staff record without an owner reference. Should be
// unreachable; callers must fail closed and log it as a severe anomaly.
var ErrInvalidRole = errors.New("invalid role for scope resolution")

// Principal is the authenticated caller, resolved fresh per request.
// EffectiveUserID is the tenant id all data access must be filtered by;
// nil means unrestricted (platform administrator).
type Principal struct {
	User            *models.User
	EffectiveUserID *uuid.UUID
}

// IsAdmin reports whether the principal is a platform administrator.
func (p *Principal) IsAdmin() bool {
	return p.User.Role == models.RoleAdmin
}

// ResolveScope computes the effective tenant scope for an identity:
//
//	ADMIN -> nil (unrestricted)
//	OWNER -> own id
//	STAFF -> owner's id (a staff member's own id is never a data scope)
func ResolveScope(u *models.User) (*uuid.UUID, error) {
	switch u.Role {
	case models.RoleAdmin:
		return nil, nil
	case models.RoleOwner:
		id := u.ID
		return &id, nil
	case models.RoleStaff:
		if u.OwnerID == nil {
			return nil, ErrInvalidRole
		}
		id := *u.OwnerID
		return &id, nil
	default:
		return nil, ErrInvalidRole
	}
}

// NewPrincipal builds a request-scoped principal from a freshly loaded user.
func NewPrincipal(u *models.User) (*Principal, error) {
	scope, err := ResolveScope(u)
	if err != nil {
		return nil, err
	}
	return &Principal{User: u, EffectiveUserID: scope}, nil
}

package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"catalog-service/internal/cache"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// RBACMiddleware is the permission engine. Administrators and owners carry
// implicit full authority (over the platform and their own tenant
// respectively); staff members are strictly default-deny and need an explicit
// grant for every (resource, action) pair. There is no wildcarding and no
// inheritance.
type RBACMiddleware struct {
	grants    repository.PermissionRepository
	permCache *cache.PermissionCache
	logger    *logrus.Entry
}

func NewRBACMiddleware(grants repository.PermissionRepository, permCache *cache.PermissionCache, logger *logrus.Logger) *RBACMiddleware {
	return &RBACMiddleware{
		grants:    grants,
		permCache: permCache,
		logger:    logger.WithField("component", "rbac_middleware"),
	}
}

// RequirePermission guards a route with a declared (resource, action)
// requirement. Denials are generic 403s that never name the missing grant.
func (m *RBACMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			Unauthorized(c)
			return
		}

		switch principal.User.Role {
		case models.RoleAdmin, models.RoleOwner:
			c.Next()
			return
		case models.RoleStaff:
			if m.hasGrant(c.Request.Context(), principal.User.ID, resource, action) {
				c.Next()
				return
			}
			m.logger.WithFields(logrus.Fields{
				"staff_id": principal.User.ID,
				"resource": resource,
				"action":   action,
			}).Info("Permission denied")
			Forbidden(c)
		default:
			Forbidden(c)
		}
	}
}

// hasGrant looks up the grant set, cache first, then storage. Lookup errors
// fail closed: no readable grant means deny.
func (m *RBACMiddleware) hasGrant(ctx context.Context, staffID uuid.UUID, resource, action string) bool {
	key := cache.GrantKey(resource, action)

	if m.permCache != nil {
		if cached, found, err := m.permCache.Get(ctx, staffID); err == nil && found {
			return cached[key]
		}
	}

	grants, err := m.grants.ListByStaff(ctx, staffID)
	if err != nil {
		m.logger.WithError(err).WithField("staff_id", staffID).Warn("Grant lookup failed, denying")
		return false
	}

	grantSet := make(map[string]bool, len(grants))
	for _, g := range grants {
		grantSet[cache.GrantKey(g.Resource, g.Action)] = g.Granted
	}

	if m.permCache != nil {
		if err := m.permCache.Set(ctx, staffID, grantSet); err != nil {
			m.logger.WithError(err).WithField("staff_id", staffID).Warn("Grant cache write failed")
		}
	}

	return grantSet[key]
}

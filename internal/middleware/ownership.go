package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OwnerLookup is the narrow read a resource repository exposes so the
// ownership validator can resolve the owning tenant of a targeted record.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// RequireOwnership confirms the resource addressed by the :id route parameter
// belongs to the caller's effective tenant scope. Applied only to routes that
// carry a resource id; list and create routes skip it (creation stamps the
// effective scope, making cross-tenant creation structurally impossible).
//
// A cross-tenant id, a missing id, and a malformed id all produce the same
// 404 so the caller can never probe another tenant's id space. Platform
// administrators bypass the comparison.
func RequireOwnership(lookup OwnerLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			Unauthorized(c)
			return
		}

		if principal.IsAdmin() {
			c.Next()
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			NotFound(c)
			return
		}

		ownerID, err := lookup.OwnerOf(c.Request.Context(), id)
		if err != nil {
			NotFound(c)
			return
		}

		if principal.EffectiveUserID == nil || ownerID != *principal.EffectiveUserID {
			NotFound(c)
			return
		}

		c.Next()
	}
}

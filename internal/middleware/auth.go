package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"catalog-service/internal/authz"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
)

const principalKey = "principal"

// AuthMiddleware is the principal resolver: it validates the bearer token and
// loads the identity fresh from storage — never from the token payload alone,
// so role or ownership changes made after issuance take effect immediately.
// The effective tenant scope is resolved here too and attached to the request
// context; every later stage and handler reads it from there.
type AuthMiddleware struct {
	tokens *services.TokenService
	users  repository.UserRepository
	logger *logrus.Entry
}

func NewAuthMiddleware(tokens *services.TokenService, users repository.UserRepository, logger *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		logger: logger.WithField("component", "auth_middleware"),
	}
}

// Authenticate resolves the principal or stops the request with 401. Any
// failure — missing header, bad token, unknown or deactivated user, storage
// timeout — fails closed with the same generic body.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			Unauthorized(c)
			return
		}

		userID, err := m.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			Unauthorized(c)
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			Unauthorized(c)
			return
		}

		principal, err := authz.NewPrincipal(user)
		if err != nil {
			// Data-invariant violation; should be unreachable.
			m.logger.WithError(err).WithFields(logrus.Fields{
				"user_id": user.ID,
				"role":    user.Role,
			}).Error("Scope resolution failed for stored identity")
			Unauthorized(c)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetPrincipal retrieves the resolved principal from the request context.
func GetPrincipal(c *gin.Context) (*authz.Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := val.(*authz.Principal)
	return principal, ok
}

// EffectiveUserID retrieves the resolved tenant scope; nil means unrestricted
// (platform administrator). The second return value is false if the request
// never passed authentication.
func EffectiveUserID(c *gin.Context) (*uuid.UUID, bool) {
	principal, ok := GetPrincipal(c)
	if !ok {
		return nil, false
	}
	return principal.EffectiveUserID, true
}

// Unauthorized aborts with the generic 401 body.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "UNAUTHORIZED",
			Message: "Authentication required",
		},
	})
	c.Abort()
}

// Forbidden aborts with the generic 403 body. It never names the missing
// permission.
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "FORBIDDEN",
			Message: "Insufficient permissions",
		},
	})
	c.Abort()
}

// NotFound aborts with the generic 404 body. Ownership mismatches and truly
// absent resources are observably identical.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "NOT_FOUND",
			Message: "Resource not found",
		},
	})
	c.Abort()
}

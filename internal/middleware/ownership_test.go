package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"catalog-service/internal/authz"
	"catalog-service/internal/models"
	"gorm.io/gorm"
)

func principalFor(t *testing.T, user *models.User) *authz.Principal {
	t.Helper()
	principal, err := authz.NewPrincipal(user)
	require.NoError(t, err)
	return principal
}

func ownershipRouter(principal *authz.Principal, lookup OwnerLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/things/:id",
		func(c *gin.Context) { c.Set(principalKey, principal) },
		RequireOwnership(lookup),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"reached": true}) },
	)
	return router
}

func getThing(router *gin.Engine, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/things/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireOwnership_MatchingTenant(t *testing.T) {
	owner := &models.User{ID: uuid.New(), Role: models.RoleOwner, IsActive: true}
	resourceID := uuid.New()

	lookup := new(mockOwnerLookup)
	lookup.On("OwnerOf", mock.Anything, resourceID).Return(owner.ID, nil)

	w := getThing(ownershipRouter(principalFor(t, owner), lookup), resourceID.String())

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireOwnership_StaffSeesOwnersData(t *testing.T) {
	ownerID := uuid.New()
	staff := &models.User{ID: uuid.New(), Role: models.RoleStaff, OwnerID: &ownerID, IsActive: true}
	resourceID := uuid.New()

	lookup := new(mockOwnerLookup)
	lookup.On("OwnerOf", mock.Anything, resourceID).Return(ownerID, nil)

	w := getThing(ownershipRouter(principalFor(t, staff), lookup), resourceID.String())

	assert.Equal(t, http.StatusOK, w.Code)
}

// A cross-tenant id, a truly missing id, and a malformed id must be
// observably identical so callers cannot probe another tenant's id space.
func TestRequireOwnership_404Indistinguishability(t *testing.T) {
	owner := &models.User{ID: uuid.New(), Role: models.RoleOwner, IsActive: true}

	crossTenantID := uuid.New()
	missingID := uuid.New()

	lookup := new(mockOwnerLookup)
	lookup.On("OwnerOf", mock.Anything, crossTenantID).Return(uuid.New(), nil)
	lookup.On("OwnerOf", mock.Anything, missingID).Return(uuid.Nil, gorm.ErrRecordNotFound)

	router := ownershipRouter(principalFor(t, owner), lookup)

	crossTenant := getThing(router, crossTenantID.String())
	missing := getThing(router, missingID.String())
	malformed := getThing(router, "not-a-uuid")

	assert.Equal(t, http.StatusNotFound, crossTenant.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, http.StatusNotFound, malformed.Code)
	assert.Equal(t, crossTenant.Body.String(), missing.Body.String())
	assert.Equal(t, missing.Body.String(), malformed.Body.String())
}

func TestRequireOwnership_AdminBypass(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin, IsActive: true}

	lookup := new(mockOwnerLookup)

	w := getThing(ownershipRouter(principalFor(t, admin), lookup), uuid.New().String())

	assert.Equal(t, http.StatusOK, w.Code)
	lookup.AssertNotCalled(t, "OwnerOf", mock.Anything, mock.Anything)
}

func TestRequireOwnership_NoPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lookup := new(mockOwnerLookup)

	router := gin.New()
	router.GET("/things/:id",
		RequireOwnership(lookup),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"reached": true}) },
	)

	w := getThing(router, uuid.New().String())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"catalog-service/internal/models"
)

func TestResolveScope_Admin(t *testing.T) {
	// Unrestricted regardless of any other field, including a stray OwnerID.
	stray := uuid.New()
	admins := []*models.User{
		{ID: uuid.New(), Role: models.RoleAdmin},
		{ID: uuid.New(), Role: models.RoleAdmin, OwnerID: &stray},
	}

	for _, u := range admins {
		scope, err := ResolveScope(u)
		require.NoError(t, err)
		assert.Nil(t, scope)
	}
}

func TestResolveScope_Owner(t *testing.T) {
	u := &models.User{ID: uuid.New(), Role: models.RoleOwner}

	scope, err := ResolveScope(u)
	require.NoError(t, err)
	require.NotNil(t, scope)
	assert.Equal(t, u.ID, *scope)
}

func TestResolveScope_Staff(t *testing.T) {
	ownerID := uuid.New()
	u := &models.User{ID: uuid.New(), Role: models.RoleStaff, OwnerID: &ownerID}

	scope, err := ResolveScope(u)
	require.NoError(t, err)
	require.NotNil(t, scope)
	assert.Equal(t, ownerID, *scope)
	assert.NotEqual(t, u.ID, *scope, "staff scope must never be the staff member's own id")
}

func TestResolveScope_StaffWithoutOwner(t *testing.T) {
	u := &models.User{ID: uuid.New(), Role: models.RoleStaff}

	scope, err := ResolveScope(u)
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Nil(t, scope)
}

func TestResolveScope_UnknownRole(t *testing.T) {
	u := &models.User{ID: uuid.New(), Role: models.UserRole("SUPERUSER")}

	scope, err := ResolveScope(u)
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Nil(t, scope)
}

func TestNewPrincipal(t *testing.T) {
	ownerID := uuid.New()
	staff := &models.User{ID: uuid.New(), Role: models.RoleStaff, OwnerID: &ownerID}

	p, err := NewPrincipal(staff)
	require.NoError(t, err)
	assert.Equal(t, ownerID, *p.EffectiveUserID)
	assert.False(t, p.IsAdmin())

	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
	p, err = NewPrincipal(admin)
	require.NoError(t, err)
	assert.Nil(t, p.EffectiveUserID)
	assert.True(t, p.IsAdmin())
}

package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"catalog-service/internal/models"
	"gorm.io/gorm"
)

func newAccountService(users *mockUserRepository) *AccountService {
	return NewAccountService(users, nil, nil, testLogger())
}

func TestEnsureAdmin_SeedsOnce(t *testing.T) {
	users := new(mockUserRepository)
	users.On("GetByEmail", mock.Anything, "admin@catalog.local").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleAdmin && u.Email == "admin@catalog.local" && u.IsActive && u.OwnerID == nil
	})).Return(nil)

	svc := newAccountService(users)
	err := svc.EnsureAdmin(context.Background(), "admin@catalog.local", "bootstrap-password")

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	existing := &models.User{ID: uuid.New(), Email: "admin@catalog.local", Role: models.RoleAdmin}

	users := new(mockUserRepository)
	users.On("GetByEmail", mock.Anything, "admin@catalog.local").Return(existing, nil)

	svc := newAccountService(users)
	err := svc.EnsureAdmin(context.Background(), "admin@catalog.local", "bootstrap-password")

	require.NoError(t, err)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOwner_AdminOnly(t *testing.T) {
	req := &models.CreateUserRequest{
		Email:     "owner@example.com",
		Password:  "long-enough-password",
		FirstName: "Olive",
		LastName:  "Owner",
	}

	t.Run("admin creates", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("GetByEmail", mock.Anything, req.Email).Return(nil, gorm.ErrRecordNotFound)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleOwner && u.OwnerID == nil && u.Email == req.Email
		})).Return(nil)

		svc := newAccountService(users)
		owner, err := svc.CreateOwner(context.Background(), adminPrincipal(t), req)

		require.NoError(t, err)
		assert.Equal(t, models.RoleOwner, owner.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(req.Password)))
	})

	t.Run("owner denied", func(t *testing.T) {
		users := new(mockUserRepository)

		svc := newAccountService(users)
		_, err := svc.CreateOwner(context.Background(), ownerPrincipal(t), req)

		assert.ErrorIs(t, err, ErrForbidden)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCreateOwner_EmailConflict(t *testing.T) {
	taken := &models.User{ID: uuid.New(), Email: "owner@example.com", Role: models.RoleOwner}

	users := new(mockUserRepository)
	users.On("GetByEmail", mock.Anything, taken.Email).Return(taken, nil)

	svc := newAccountService(users)
	_, err := svc.CreateOwner(context.Background(), adminPrincipal(t), &models.CreateUserRequest{
		Email:     taken.Email,
		Password:  "long-enough-password",
		FirstName: "Olive",
		LastName:  "Owner",
	})

	assert.ErrorIs(t, err, ErrConflict)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateStaff_StampsCallerAsOwner(t *testing.T) {
	owner := ownerPrincipal(t)

	users := new(mockUserRepository)
	users.On("GetByEmail", mock.Anything, "staff@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleStaff && u.OwnerID != nil && *u.OwnerID == owner.User.ID
	})).Return(nil)

	svc := newAccountService(users)
	staff, err := svc.CreateStaff(context.Background(), owner, &models.CreateUserRequest{
		Email:     "staff@example.com",
		Password:  "long-enough-password",
		FirstName: "Sam",
		LastName:  "Staff",
	})

	require.NoError(t, err)
	require.NotNil(t, staff.OwnerID)
	assert.Equal(t, owner.User.ID, *staff.OwnerID)
}

func TestCreateStaff_NonOwnerDenied(t *testing.T) {
	users := new(mockUserRepository)

	svc := newAccountService(users)
	_, err := svc.CreateStaff(context.Background(), adminPrincipal(t), &models.CreateUserRequest{
		Email:     "staff@example.com",
		Password:  "long-enough-password",
		FirstName: "Sam",
		LastName:  "Staff",
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetStaff_AccessMatrix(t *testing.T) {
	owner := ownerPrincipal(t)
	staff := staffUnder(owner.User.ID)
	foreignOwner := ownerPrincipal(t)

	t.Run("owning owner reads", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)

		svc := newAccountService(users)
		got, err := svc.GetStaff(context.Background(), owner, staff.ID)

		require.NoError(t, err)
		assert.Equal(t, staff.ID, got.ID)
	})

	t.Run("admin reads for audit", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)

		svc := newAccountService(users)
		_, err := svc.GetStaff(context.Background(), adminPrincipal(t), staff.ID)

		assert.NoError(t, err)
	})

	t.Run("foreign owner denied", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)

		svc := newAccountService(users)
		_, err := svc.GetStaff(context.Background(), foreignOwner, staff.ID)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing staff", func(t *testing.T) {
		missing := uuid.New()
		users := new(mockUserRepository)
		users.On("GetByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)

		svc := newAccountService(users)
		_, err := svc.GetStaff(context.Background(), owner, missing)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner account is not staff", func(t *testing.T) {
		other := &models.User{ID: uuid.New(), Role: models.RoleOwner, IsActive: true}
		users := new(mockUserRepository)
		users.On("GetByID", mock.Anything, other.ID).Return(other, nil)

		svc := newAccountService(users)
		_, err := svc.GetStaff(context.Background(), owner, other.ID)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteStaff_CascadesGrants(t *testing.T) {
	owner := ownerPrincipal(t)
	staff := staffUnder(owner.User.ID)

	users := new(mockUserRepository)
	users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)
	users.On("DeleteStaffCascade", mock.Anything, staff.ID).Return(nil)

	svc := newAccountService(users)
	err := svc.DeleteStaff(context.Background(), owner, staff.ID)

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestDeleteStaff_ForeignOwnerDenied(t *testing.T) {
	owner := ownerPrincipal(t)
	foreignStaff := staffUnder(uuid.New())

	users := new(mockUserRepository)
	users.On("GetByID", mock.Anything, foreignStaff.ID).Return(foreignStaff, nil)

	svc := newAccountService(users)
	err := svc.DeleteStaff(context.Background(), owner, foreignStaff.ID)

	assert.ErrorIs(t, err, ErrForbidden)
	users.AssertNotCalled(t, "DeleteStaffCascade", mock.Anything, mock.Anything)
}

func TestDeleteOwner_RemovesSubtree(t *testing.T) {
	target := &models.User{ID: uuid.New(), Role: models.RoleOwner, IsActive: true}
	staffIDs := []uuid.UUID{uuid.New(), uuid.New()}

	users := new(mockUserRepository)
	users.On("GetByID", mock.Anything, target.ID).Return(target, nil)
	users.On("StaffIDsByOwner", mock.Anything, target.ID).Return(staffIDs, nil)
	users.On("DeleteOwnerCascade", mock.Anything, target.ID).Return(nil)

	svc := newAccountService(users)
	err := svc.DeleteOwner(context.Background(), adminPrincipal(t), target.ID)

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestDeleteOwner_NonAdminDenied(t *testing.T) {
	users := new(mockUserRepository)

	svc := newAccountService(users)
	err := svc.DeleteOwner(context.Background(), ownerPrincipal(t), uuid.New())

	assert.ErrorIs(t, err, ErrForbidden)
	users.AssertNotCalled(t, "DeleteOwnerCascade", mock.Anything, mock.Anything)
}

func TestListStaff_OwnerScoped(t *testing.T) {
	owner := ownerPrincipal(t)
	staff := []models.User{*staffUnder(owner.User.ID)}

	users := new(mockUserRepository)
	users.On("ListStaffByOwner", mock.Anything, owner.User.ID, 1, 20).
		Return(staff, &models.PaginationInfo{Page: 1, Limit: 20, Total: 1, TotalPages: 1}, nil)

	svc := newAccountService(users)
	got, pagination, err := svc.ListStaff(context.Background(), owner, 1, 20)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.EqualValues(t, 1, pagination.Total)
}

func TestListOwners_AdminOnly(t *testing.T) {
	users := new(mockUserRepository)

	svc := newAccountService(users)
	_, _, err := svc.ListOwners(context.Background(), ownerPrincipal(t), 1, 20)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStaff_AppliesFields(t *testing.T) {
	owner := ownerPrincipal(t)
	staff := staffUnder(owner.User.ID)
	staff.FirstName = "Before"
	staff.IsActive = true

	users := new(mockUserRepository)
	users.On("GetByID", mock.Anything, staff.ID).Return(staff, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.FirstName == "After" && !u.IsActive
	})).Return(nil)

	name := "After"
	inactive := false
	svc := newAccountService(users)
	got, err := svc.UpdateStaff(context.Background(), owner, staff.ID, &models.UpdateUserRequest{
		FirstName: &name,
		IsActive:  &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, "After", got.FirstName)
	assert.False(t, got.IsActive)
}

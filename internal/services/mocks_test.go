package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

type mockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role models.UserRole, page, limit int) ([]models.User, *models.PaginationInfo, error) {
	args := m.Called(ctx, role, page, limit)
	var users []models.User
	if args.Get(0) != nil {
		users = args.Get(0).([]models.User)
	}
	var info *models.PaginationInfo
	if args.Get(1) != nil {
		info = args.Get(1).(*models.PaginationInfo)
	}
	return users, info, args.Error(2)
}

func (m *mockUserRepository) ListStaffByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]models.User, *models.PaginationInfo, error) {
	args := m.Called(ctx, ownerID, page, limit)
	var users []models.User
	if args.Get(0) != nil {
		users = args.Get(0).([]models.User)
	}
	var info *models.PaginationInfo
	if args.Get(1) != nil {
		info = args.Get(1).(*models.PaginationInfo)
	}
	return users, info, args.Error(2)
}

func (m *mockUserRepository) StaffIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ownerID)
	var ids []uuid.UUID
	if args.Get(0) != nil {
		ids = args.Get(0).([]uuid.UUID)
	}
	return ids, args.Error(1)
}

func (m *mockUserRepository) DeleteStaffCascade(ctx context.Context, staffID uuid.UUID) error {
	args := m.Called(ctx, staffID)
	return args.Error(0)
}

func (m *mockUserRepository) DeleteOwnerCascade(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

type mockPermissionRepository struct {
	mock.Mock
}

var _ repository.PermissionRepository = (*mockPermissionRepository)(nil)

func (m *mockPermissionRepository) Get(ctx context.Context, staffID uuid.UUID, resource, action string) (*models.PermissionGrant, error) {
	args := m.Called(ctx, staffID, resource, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PermissionGrant), args.Error(1)
}

func (m *mockPermissionRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]models.PermissionGrant, error) {
	args := m.Called(ctx, staffID)
	var grants []models.PermissionGrant
	if args.Get(0) != nil {
		grants = args.Get(0).([]models.PermissionGrant)
	}
	return grants, args.Error(1)
}

func (m *mockPermissionRepository) Upsert(ctx context.Context, grant *models.PermissionGrant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *mockPermissionRepository) UpsertBatch(ctx context.Context, grants []models.PermissionGrant) error {
	args := m.Called(ctx, grants)
	return args.Error(0)
}

func (m *mockPermissionRepository) Delete(ctx context.Context, staffID uuid.UUID, resource, action string) error {
	args := m.Called(ctx, staffID, resource, action)
	return args.Error(0)
}

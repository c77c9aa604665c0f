package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"catalog-service/internal/authz"
	"catalog-service/internal/cache"
	"catalog-service/internal/events"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"gorm.io/gorm"
)

// AccountService is the write side for principal records: administrators
// provision owners, owners provision their staff. Every operation verifies
// the caller's authority before touching anything.
type AccountService struct {
	users     repository.UserRepository
	permCache *cache.PermissionCache
	publisher *events.Publisher
	logger    *logrus.Entry
}

func NewAccountService(users repository.UserRepository, permCache *cache.PermissionCache, publisher *events.Publisher, logger *logrus.Logger) *AccountService {
	return &AccountService{
		users:     users,
		permCache: permCache,
		publisher: publisher,
		logger:    logger.WithField("component", "account_service"),
	}
}

// EnsureAdmin seeds the platform administrator at bootstrap. Idempotent: an
// existing account with the configured email is left untouched.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Platform",
		LastName:     "Administrator",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.WithField("admin_id", admin.ID).Info("Seeded platform administrator")
	return nil
}

// ===========================================
// Owner accounts (administrator only)
// ===========================================

// ListOwners lists owner accounts.
func (s *AccountService) ListOwners(ctx context.Context, caller *authz.Principal, page, limit int) ([]models.User, *models.PaginationInfo, error) {
	if caller.User.Role != models.RoleAdmin {
		return nil, nil, ErrForbidden
	}
	return s.users.ListByRole(ctx, models.RoleOwner, page, limit)
}

// GetOwner fetches one owner account.
func (s *AccountService) GetOwner(ctx context.Context, caller *authz.Principal, id uuid.UUID) (*models.User, error) {
	if caller.User.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	owner, err := s.users.GetByID(ctx, id)
	if err != nil || owner.Role != models.RoleOwner {
		return nil, ErrNotFound
	}
	return owner, nil
}

// CreateOwner provisions a new tenant owner.
func (s *AccountService) CreateOwner(ctx context.Context, caller *authz.Principal, req *models.CreateUserRequest) (*models.User, error) {
	if caller.User.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.createUser(ctx, req, models.RoleOwner, nil)
}

// UpdateOwner updates an owner's profile fields.
func (s *AccountService) UpdateOwner(ctx context.Context, caller *authz.Principal, id uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	owner, err := s.GetOwner(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	applyUserUpdates(owner, req)
	if err := s.users.Update(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

// DeleteOwner removes an owner and its entire subtree: staff accounts, their
// grants, and all tenant-owned catalog data, atomically.
func (s *AccountService) DeleteOwner(ctx context.Context, caller *authz.Principal, id uuid.UUID) error {
	owner, err := s.GetOwner(ctx, caller, id)
	if err != nil {
		return err
	}

	staffIDs, err := s.users.StaffIDsByOwner(ctx, owner.ID)
	if err != nil {
		return err
	}

	if err := s.users.DeleteOwnerCascade(ctx, owner.ID); err != nil {
		return err
	}

	for _, staffID := range staffIDs {
		s.invalidateGrants(ctx, staffID)
	}
	s.publisher.PublishUserDeleted(owner.ID, string(models.RoleOwner), nil)
	s.logger.WithFields(logrus.Fields{
		"owner_id":    owner.ID,
		"staff_count": len(staffIDs),
	}).Info("Deleted owner and tenant subtree")
	return nil
}

// ===========================================
// Staff accounts (owner only, scoped to own staff)
// ===========================================

// ListStaff lists the caller's staff accounts.
func (s *AccountService) ListStaff(ctx context.Context, caller *authz.Principal, page, limit int) ([]models.User, *models.PaginationInfo, error) {
	if caller.User.Role != models.RoleOwner {
		return nil, nil, ErrForbidden
	}
	return s.users.ListStaffByOwner(ctx, caller.User.ID, page, limit)
}

// GetStaff fetches one of the caller's staff accounts. Administrators may
// read any staff account for audit.
func (s *AccountService) GetStaff(ctx context.Context, caller *authz.Principal, id uuid.UUID) (*models.User, error) {
	staff, err := s.users.GetByID(ctx, id)
	if err != nil || staff.Role != models.RoleStaff {
		return nil, ErrNotFound
	}

	switch caller.User.Role {
	case models.RoleAdmin:
		return staff, nil
	case models.RoleOwner:
		if staff.OwnerID != nil && *staff.OwnerID == caller.User.ID {
			return staff, nil
		}
		return nil, ErrForbidden
	default:
		return nil, ErrForbidden
	}
}

// CreateStaff provisions a staff account owned by the caller.
func (s *AccountService) CreateStaff(ctx context.Context, caller *authz.Principal, req *models.CreateUserRequest) (*models.User, error) {
	if caller.User.Role != models.RoleOwner {
		return nil, ErrForbidden
	}
	ownerID := caller.User.ID
	return s.createUser(ctx, req, models.RoleStaff, &ownerID)
}

// UpdateStaff updates one of the caller's staff accounts.
func (s *AccountService) UpdateStaff(ctx context.Context, caller *authz.Principal, id uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	if caller.User.Role != models.RoleOwner {
		return nil, ErrForbidden
	}
	staff, err := s.GetStaff(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	applyUserUpdates(staff, req)
	if err := s.users.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// DeleteStaff removes one of the caller's staff accounts together with all of
// its grants, then invalidates the cached grant set so the deleted identity
// cannot act on a stale allow.
func (s *AccountService) DeleteStaff(ctx context.Context, caller *authz.Principal, id uuid.UUID) error {
	if caller.User.Role != models.RoleOwner {
		return ErrForbidden
	}
	staff, err := s.GetStaff(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.users.DeleteStaffCascade(ctx, staff.ID); err != nil {
		return err
	}

	s.invalidateGrants(ctx, staff.ID)
	s.publisher.PublishUserDeleted(staff.ID, string(models.RoleStaff), staff.OwnerID)
	return nil
}

// ===========================================
// Helpers
// ===========================================

func (s *AccountService) createUser(ctx context.Context, req *models.CreateUserRequest, role models.UserRole, ownerID *uuid.UUID) (*models.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		OwnerID:      ownerID,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publisher.PublishUserCreated(user.ID, string(role), ownerID)
	return user, nil
}

func (s *AccountService) invalidateGrants(ctx context.Context, staffID uuid.UUID) {
	if s.permCache == nil {
		return
	}
	if err := s.permCache.Invalidate(ctx, staffID); err != nil {
		s.logger.WithError(err).WithField("staff_id", staffID).Warn("Grant cache invalidation failed")
	}
}

func applyUserUpdates(user *models.User, req *models.UpdateUserRequest) {
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
}

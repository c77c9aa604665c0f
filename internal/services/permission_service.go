package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"catalog-service/internal/authz"
	"catalog-service/internal/cache"
	"catalog-service/internal/events"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// PermissionService is the administration surface for staff capability
// grants. Owners manage grants for their own staff only; staff may read their
// own grants; administrators may read any staff's grants for audit.
//
// Cache invalidation is synchronous on every write so a revoked grant can
// never be honored from a stale entry.
type PermissionService struct {
	users     repository.UserRepository
	grants    repository.PermissionRepository
	permCache *cache.PermissionCache
	publisher *events.Publisher
	logger    *logrus.Entry
}

func NewPermissionService(users repository.UserRepository, grants repository.PermissionRepository, permCache *cache.PermissionCache, publisher *events.Publisher, logger *logrus.Logger) *PermissionService {
	return &PermissionService{
		users:     users,
		grants:    grants,
		permCache: permCache,
		publisher: publisher,
		logger:    logger.WithField("component", "permission_service"),
	}
}

// Grant upserts one (resource, action) grant for a staff member.
func (s *PermissionService) Grant(ctx context.Context, caller *authz.Principal, staffID uuid.UUID, req *models.GrantRequest) (*models.PermissionGrant, error) {
	subject, err := s.authorizeWrite(ctx, caller, staffID)
	if err != nil {
		return nil, err
	}
	if !models.ValidGrantTarget(req.Resource, req.Action) {
		return nil, fmt.Errorf("%w: unknown resource or action", ErrBadRequest)
	}

	grant := &models.PermissionGrant{
		ID:       uuid.New(),
		StaffID:  subject.ID,
		Resource: req.Resource,
		Action:   req.Action,
		Granted:  *req.Granted,
	}
	if err := s.grants.Upsert(ctx, grant); err != nil {
		return nil, err
	}

	s.invalidate(ctx, subject.ID)
	s.publisher.PublishPermissionGranted(subject.ID, caller.User.ID, req.Resource, req.Action, *req.Granted)
	return grant, nil
}

// BulkGrant applies a batch of grants atomically: every entry is validated
// before anything is written, and the batch runs in one transaction so a
// mid-batch failure persists nothing.
func (s *PermissionService) BulkGrant(ctx context.Context, caller *authz.Principal, staffID uuid.UUID, req *models.BulkGrantRequest) ([]models.PermissionGrant, error) {
	subject, err := s.authorizeWrite(ctx, caller, staffID)
	if err != nil {
		return nil, err
	}

	grants := make([]models.PermissionGrant, 0, len(req.Grants))
	for _, g := range req.Grants {
		if !models.ValidGrantTarget(g.Resource, g.Action) {
			return nil, fmt.Errorf("%w: unknown resource or action %q/%q", ErrBadRequest, g.Resource, g.Action)
		}
		grants = append(grants, models.PermissionGrant{
			ID:       uuid.New(),
			StaffID:  subject.ID,
			Resource: g.Resource,
			Action:   g.Action,
			Granted:  *g.Granted,
		})
	}

	if err := s.grants.UpsertBatch(ctx, grants); err != nil {
		return nil, err
	}

	s.invalidate(ctx, subject.ID)
	for _, g := range grants {
		s.publisher.PublishPermissionGranted(subject.ID, caller.User.ID, g.Resource, g.Action, g.Granted)
	}
	return grants, nil
}

// Revoke deletes one grant. Revoking a grant that does not exist succeeds as
// a no-op, since absence already means deny.
func (s *PermissionService) Revoke(ctx context.Context, caller *authz.Principal, staffID uuid.UUID, resource, action string) error {
	subject, err := s.authorizeWrite(ctx, caller, staffID)
	if err != nil {
		return err
	}

	if err := s.grants.Delete(ctx, subject.ID, resource, action); err != nil {
		return err
	}

	s.invalidate(ctx, subject.ID)
	s.publisher.PublishPermissionRevoked(subject.ID, caller.User.ID, resource, action)
	return nil
}

// List returns all grants for a staff member. Allowed for the staff member
// themselves, their owner, or any administrator.
func (s *PermissionService) List(ctx context.Context, caller *authz.Principal, staffID uuid.UUID) ([]models.PermissionGrant, error) {
	subject, err := s.loadStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	switch {
	case caller.User.Role == models.RoleAdmin:
	case caller.User.Role == models.RoleStaff && caller.User.ID == subject.ID:
	case caller.User.Role == models.RoleOwner && subject.OwnerID != nil && *subject.OwnerID == caller.User.ID:
	default:
		return nil, ErrForbidden
	}

	return s.grants.ListByStaff(ctx, subject.ID)
}

// authorizeWrite verifies the caller is the subject's owner and the subject
// is a staff account. Grant writes are owner-only.
func (s *PermissionService) authorizeWrite(ctx context.Context, caller *authz.Principal, staffID uuid.UUID) (*models.User, error) {
	if caller.User.Role != models.RoleOwner {
		return nil, ErrForbidden
	}

	subject, err := s.loadStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if subject.OwnerID == nil || *subject.OwnerID != caller.User.ID {
		return nil, ErrForbidden
	}
	return subject, nil
}

func (s *PermissionService) loadStaff(ctx context.Context, staffID uuid.UUID) (*models.User, error) {
	subject, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		return nil, ErrNotFound
	}
	if subject.Role != models.RoleStaff {
		return nil, fmt.Errorf("%w: grants can only target staff accounts", ErrBadRequest)
	}
	return subject, nil
}

func (s *PermissionService) invalidate(ctx context.Context, staffID uuid.UUID) {
	if s.permCache == nil {
		return
	}
	if err := s.permCache.Invalidate(ctx, staffID); err != nil {
		s.logger.WithError(err).WithField("staff_id", staffID).Warn("Grant cache invalidation failed")
	}
}

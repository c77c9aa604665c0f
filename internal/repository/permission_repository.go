package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"catalog-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PermissionRepository persists staff capability grants.
type PermissionRepository interface {
	Get(ctx context.Context, staffID uuid.UUID, resource, action string) (*models.PermissionGrant, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]models.PermissionGrant, error)

	// Upsert creates the grant or overwrites its Granted flag, keyed by the
	// (staff, resource, action) triple.
	Upsert(ctx context.Context, grant *models.PermissionGrant) error

	// UpsertBatch applies all grants in a single transaction; a failure on
	// any entry rolls back the whole batch.
	UpsertBatch(ctx context.Context, grants []models.PermissionGrant) error

	// Delete removes one grant. Deleting a missing grant is a no-op.
	Delete(ctx context.Context, staffID uuid.UUID, resource, action string) error
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) Get(ctx context.Context, staffID uuid.UUID, resource, action string) (*models.PermissionGrant, error) {
	var grant models.PermissionGrant
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND resource = ? AND action = ?", staffID, resource, action).
		First(&grant).Error
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *permissionRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]models.PermissionGrant, error) {
	var grants []models.PermissionGrant
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("resource, action").
		Find(&grants).Error
	return grants, err
}

func (r *permissionRepository) Upsert(ctx context.Context, grant *models.PermissionGrant) error {
	grant.CreatedAt = time.Now()
	grant.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "staff_id"}, {Name: "resource"}, {Name: "action"}},
		DoUpdates: clause.AssignmentColumns([]string{"granted", "updated_at"}),
	}).Create(grant).Error
}

func (r *permissionRepository) UpsertBatch(ctx context.Context, grants []models.PermissionGrant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range grants {
			grants[i].CreatedAt = time.Now()
			grants[i].UpdatedAt = time.Now()
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "staff_id"}, {Name: "resource"}, {Name: "action"}},
				DoUpdates: clause.AssignmentColumns([]string{"granted", "updated_at"}),
			}).Create(&grants[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *permissionRepository) Delete(ctx context.Context, staffID uuid.UUID, resource, action string) error {
	return r.db.WithContext(ctx).
		Where("staff_id = ? AND resource = ? AND action = ?", staffID, resource, action).
		Delete(&models.PermissionGrant{}).Error
}

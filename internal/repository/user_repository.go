package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"catalog-service/internal/models"
	"gorm.io/gorm"
)

// UserRepository persists principal records.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	ListByRole(ctx context.Context, role models.UserRole, page, limit int) ([]models.User, *models.PaginationInfo, error)
	ListStaffByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]models.User, *models.PaginationInfo, error)
	StaffIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)

	// DeleteStaffCascade removes a staff account and all of its permission
	// grants in one transaction.
	DeleteStaffCascade(ctx context.Context, staffID uuid.UUID) error

	// DeleteOwnerCascade removes an owner account, its entire staff subtree
	// with their grants, and all tenant-owned catalog rows in one transaction.
	DeleteOwnerCascade(ctx context.Context, ownerID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) ListByRole(ctx context.Context, role models.UserRole, page, limit int) ([]models.User, *models.PaginationInfo, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role)
	return r.paginate(query, page, limit)
}

func (r *userRepository) ListStaffByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]models.User, *models.PaginationInfo, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND owner_id = ?", models.RoleStaff, ownerID)
	return r.paginate(query, page, limit)
}

func (r *userRepository) StaffIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ? AND owner_id = ?", models.RoleStaff, ownerID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *userRepository) paginate(query *gorm.DB, page, limit int) ([]models.User, *models.PaginationInfo, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var users []models.User
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return users, &models.PaginationInfo{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (r *userRepository) DeleteStaffCascade(ctx context.Context, staffID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", staffID).Delete(&models.PermissionGrant{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND role = ?", staffID, models.RoleStaff).Delete(&models.User{}).Error
	})
}

func (r *userRepository) DeleteOwnerCascade(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staffIDs []uuid.UUID
		if err := tx.Model(&models.User{}).
			Where("role = ? AND owner_id = ?", models.RoleStaff, ownerID).
			Pluck("id", &staffIDs).Error; err != nil {
			return err
		}

		if len(staffIDs) > 0 {
			if err := tx.Where("staff_id IN ?", staffIDs).Delete(&models.PermissionGrant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", staffIDs).Delete(&models.User{}).Error; err != nil {
				return err
			}
		}

		// Tenant-owned catalog data goes with the tenant.
		if err := tx.Where("owner_id = ?", ownerID).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", ownerID).Delete(&models.Asset{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ? AND role = ?", ownerID, models.RoleOwner).Delete(&models.User{}).Error
	})
}

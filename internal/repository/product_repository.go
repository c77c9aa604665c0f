package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"catalog-service/internal/models"
	"gorm.io/gorm"
)

// ProductRepository persists catalog products. Every read and write is
// filtered by the effective tenant scope; a nil scope means unrestricted
// (platform administrator).
type ProductRepository interface {
	List(ctx context.Context, scope *uuid.UUID, page, limit int) ([]models.Product, *models.PaginationInfo, error)
	GetByID(ctx context.Context, scope *uuid.UUID, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, scope *uuid.UUID, id uuid.UUID) error

	// OwnerOf is the narrow read used by the ownership validator.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func scoped(query *gorm.DB, scope *uuid.UUID) *gorm.DB {
	if scope != nil {
		return query.Where("owner_id = ?", *scope)
	}
	return query
}

func (r *productRepository) List(ctx context.Context, scope *uuid.UUID, page, limit int) ([]models.Product, *models.PaginationInfo, error) {
	query := scoped(r.db.WithContext(ctx).Model(&models.Product{}), scope)

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

	var products []models.Product
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return products, &models.PaginationInfo{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (r *productRepository) GetByID(ctx context.Context, scope *uuid.UUID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	query := scoped(r.db.WithContext(ctx).Where("id = ?", id), scope)
	if err := query.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, scope *uuid.UUID, id uuid.UUID) error {
	query := scoped(r.db.WithContext(ctx).Where("id = ?", id), scope)
	return query.Delete(&models.Product{}).Error
}

func (r *productRepository) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Select("id, owner_id").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return uuid.Nil, err
	}
	return product.OwnerID, nil
}

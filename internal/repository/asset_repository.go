package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"catalog-service/internal/models"
	"gorm.io/gorm"
)

// AssetRepository persists asset metadata, scoped like ProductRepository.
type AssetRepository interface {
	List(ctx context.Context, scope *uuid.UUID, page, limit int) ([]models.Asset, *models.PaginationInfo, error)
	GetByID(ctx context.Context, scope *uuid.UUID, id uuid.UUID) (*models.Asset, error)
	Create(ctx context.Context, asset *models.Asset) error
	Update(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, scope *uuid.UUID, id uuid.UUID) error
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) List(ctx context.Context, scope *uuid.UUID, page, limit int) ([]models.Asset, *models.PaginationInfo, error) {
	query := scoped(r.db.WithContext(ctx).Model(&models.Asset{}), scope)

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

	var assets []models.Asset
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&assets).Error; err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return assets, &models.PaginationInfo{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (r *assetRepository) GetByID(ctx context.Context, scope *uuid.UUID, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	query := scoped(r.db.WithContext(ctx).Where("id = ?", id), scope)
	if err := query.First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) Update(ctx context.Context, asset *models.Asset) error {
	asset.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *assetRepository) Delete(ctx context.Context, scope *uuid.UUID, id uuid.UUID) error {
	query := scoped(r.db.WithContext(ctx).Where("id = ?", id), scope)
	return query.Delete(&models.Asset{}).Error
}

func (r *assetRepository) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Select("id, owner_id").
		Where("id = ?", id).
		First(&asset).Error
	if err != nil {
		return uuid.Nil, err
	}
	return asset.OwnerID, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item. OwnerID is the owning tenant (an OWNER user id);
// staff members never own products, they act within their owner's scope.
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	SKU         string    `json:"sku" gorm:"not null;index"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price" gorm:"type:decimal(12,2);default:0"`
	Currency    string    `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// CreateProductRequest creates a product in the caller's tenant scope.
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku" binding:"required"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Currency    *string `json:"currency,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// UpdateProductRequest updates mutable product fields.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

// ProductResponse wraps a single product.
type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data,omitempty"`
	Message *string  `json:"message,omitempty"`
}

// ProductListResponse wraps a list of products.
type ProductListResponse struct {
	Success    bool            `json:"success"`
	Data       []Product       `json:"data"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// Asset is stored file metadata. The binary itself lives in external storage;
// this service only tracks ownership and descriptors.
type Asset struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	FileName    string    `json:"fileName" gorm:"not null"`
	ContentType string    `json:"contentType" gorm:"not null"`
	SizeBytes   int64     `json:"sizeBytes" gorm:"default:0"`
	URL         string    `json:"url" gorm:"not null"`
	Label       *string   `json:"label,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Asset) TableName() string {
	return "assets"
}

// CreateAssetRequest registers asset metadata in the caller's tenant scope.
type CreateAssetRequest struct {
	FileName    string  `json:"fileName" binding:"required"`
	ContentType string  `json:"contentType" binding:"required"`
	SizeBytes   int64   `json:"sizeBytes"`
	URL         string  `json:"url" binding:"required,url"`
	Label       *string `json:"label,omitempty"`
}

// UpdateAssetRequest updates mutable asset fields.
type UpdateAssetRequest struct {
	FileName *string `json:"fileName,omitempty"`
	Label    *string `json:"label,omitempty"`
}

// AssetResponse wraps a single asset.
type AssetResponse struct {
	Success bool    `json:"success"`
	Data    *Asset  `json:"data,omitempty"`
	Message *string `json:"message,omitempty"`
}

// AssetListResponse wraps a list of assets.
type AssetListResponse struct {
	Success    bool            `json:"success"`
	Data       []Asset         `json:"data"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

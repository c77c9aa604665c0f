package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// AssetHandler is the tenant-scoped controller for asset metadata. File
// storage and thumbnailing live in external services; this surface only
// tracks descriptors and ownership.
type AssetHandler struct {
	repo repository.AssetRepository
}

func NewAssetHandler(repo repository.AssetRepository) *AssetHandler {
	return &AssetHandler{repo: repo}
}

// List returns the assets in the caller's tenant scope.
func (h *AssetHandler) List(c *gin.Context) {
	scope, ok := middleware.EffectiveUserID(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	page, limit := pageParams(c)
	assets, pagination, err := h.repo.List(c.Request.Context(), scope, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AssetListResponse{
		Success:    true,
		Data:       assets,
		Pagination: pagination,
	})
}

// Get returns one asset in the caller's tenant scope.
func (h *AssetHandler) Get(c *gin.Context) {
	scope, ok := middleware.EffectiveUserID(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	asset, err := h.repo.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		middleware.NotFound(c)
		return
	}

	c.JSON(http.StatusOK, models.AssetResponse{Success: true, Data: asset})
}

// Create registers asset metadata owned by the caller's tenant.
func (h *AssetHandler) Create(c *gin.Context) {
	scope, ok := middleware.EffectiveUserID(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}
	if scope == nil {
		middleware.Forbidden(c)
		return
	}

	var req models.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	asset := &models.Asset{
		ID:          uuid.New(),
		OwnerID:     *scope,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		URL:         req.URL,
		Label:       req.Label,
	}

	if err := h.repo.Create(c.Request.Context(), asset); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.AssetResponse{Success: true, Data: asset})
}

// Update updates one asset in the caller's tenant scope.
func (h *AssetHandler) Update(c *gin.Context) {
	scope, ok := middleware.EffectiveUserID(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	var req models.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	asset, err := h.repo.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		middleware.NotFound(c)
		return
	}

	if req.FileName != nil {
		asset.FileName = *req.FileName
	}
	if req.Label != nil {
		asset.Label = req.Label
	}

	if err := h.repo.Update(c.Request.Context(), asset); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AssetResponse{Success: true, Data: asset})
}

// Delete removes one asset in the caller's tenant scope.
func (h *AssetHandler) Delete(c *gin.Context) {
	scope, ok := middleware.EffectiveUserID(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	if _, err := h.repo.GetByID(c.Request.Context(), scope, id); err != nil {
		middleware.NotFound(c)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), scope, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Asset deleted"})
}

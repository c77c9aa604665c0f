package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// ProductHandler is a tenant-scoped catalog controller. It always queries
// through the effective tenant scope resolved by the guard pipeline — never
// the caller's own id — so staff requests are automatically filtered to
// their owner's data.
type ProductHandler struct {
	repo repository.ProductRepository
}

func NewProductHandler(repo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// List returns the products in the caller's tenant scope.
func (h *ProductHandler) List(c *gin.Context) {
	scope, ok := middleware.EffectiveUserID(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	page, limit := pageParams(c)
	products, pagination, err := h.repo.List(c.Request.Context(), scope, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success:    true,
		Data:       products,
		Pagination: pagination,
	})
}

// Get returns one product. Ownership was already validated by the pipeline;
// the scoped query keeps the invariant even if this handler is ever mounted
// without the validator.
func (h *ProductHandler) Get(c *gin.Context) {
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

	product, err := h.repo.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		middleware.NotFound(c)
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// Create creates a product owned by the caller's tenant. The owner id is
// stamped from the effective scope, so cross-tenant creation is structurally
// impossible.
func (h *ProductHandler) Create(c *gin.Context) {
	scope, ok := middleware.EffectiveUserID(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}
	if scope == nil {
		// Administrators manage accounts, not tenant catalogs.
		middleware.Forbidden(c)
		return
	}

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	product := &models.Product{
		ID:          uuid.New(),
		OwnerID:     *scope,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Price:       req.Price,
		Currency:    "USD",
		Status:      "draft",
	}
	if req.Currency != nil {
		product.Currency = *req.Currency
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := h.repo.Create(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ProductResponse{Success: true, Data: product})
}

// Update updates one product in the caller's tenant scope.
func (h *ProductHandler) Update(c *gin.Context) {
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

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	product, err := h.repo.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		middleware.NotFound(c)
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Currency != nil {
		product.Currency = *req.Currency
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := h.repo.Update(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// Delete removes one product in the caller's tenant scope.
func (h *ProductHandler) Delete(c *gin.Context) {
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

	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Product deleted"})
}

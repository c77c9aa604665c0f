package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

// AccountHandler exposes owner administration (platform administrators) and
// staff administration (tenant owners). Authority checks live in the service;
// the handler only binds input and maps verdicts.
type AccountHandler struct {
	service *services.AccountService
}

func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// ===========================================
// Owner accounts
// ===========================================

// ListOwners lists owner accounts (admin only).
func (h *AccountHandler) ListOwners(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	page, limit := pageParams(c)
	owners, pagination, err := h.service.ListOwners(c.Request.Context(), principal, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserListResponse{
		Success:    true,
		Data:       toDTOs(owners),
		Pagination: pagination,
	})
}

// GetOwner fetches a single owner account (admin only).
func (h *AccountHandler) GetOwner(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	owner, err := h.service.GetOwner(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{Success: true, Data: owner.ToDTO()})
}

// CreateOwner provisions a tenant owner (admin only).
func (h *AccountHandler) CreateOwner(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	owner, err := h.service.CreateOwner(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.UserResponse{Success: true, Data: owner.ToDTO()})
}

// UpdateOwner updates an owner account (admin only).
func (h *AccountHandler) UpdateOwner(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	owner, err := h.service.UpdateOwner(c.Request.Context(), principal, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{Success: true, Data: owner.ToDTO()})
}

// DeleteOwner removes an owner and its entire tenant subtree (admin only).
func (h *AccountHandler) DeleteOwner(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	if err := h.service.DeleteOwner(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Owner deleted"})
}

// ===========================================
// Staff accounts
// ===========================================

// ListStaff lists the caller's staff accounts (owner only).
func (h *AccountHandler) ListStaff(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	page, limit := pageParams(c)
	staff, pagination, err := h.service.ListStaff(c.Request.Context(), principal, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserListResponse{
		Success:    true,
		Data:       toDTOs(staff),
		Pagination: pagination,
	})
}

// GetStaff fetches one staff account (its owner, or any admin).
func (h *AccountHandler) GetStaff(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	staff, err := h.service.GetStaff(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{Success: true, Data: staff.ToDTO()})
}

// CreateStaff provisions a staff account under the caller (owner only).
func (h *AccountHandler) CreateStaff(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	staff, err := h.service.CreateStaff(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.UserResponse{Success: true, Data: staff.ToDTO()})
}

// UpdateStaff updates one of the caller's staff accounts (owner only).
func (h *AccountHandler) UpdateStaff(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	staff, err := h.service.UpdateStaff(c.Request.Context(), principal, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{Success: true, Data: staff.ToDTO()})
}

// DeleteStaff removes one of the caller's staff accounts and all of its
// grants (owner only).
func (h *AccountHandler) DeleteStaff(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	if err := h.service.DeleteStaff(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Staff member deleted"})
}

// ===========================================
// Helpers
// ===========================================

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func toDTOs(users []models.User) []models.UserDTO {
	dtos := make([]models.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, *users[i].ToDTO())
	}
	return dtos
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

// PermissionHandler exposes the grant administration surface under
// /staff/:id/permissions.
type PermissionHandler struct {
	service *services.PermissionService
}

func NewPermissionHandler(service *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{service: service}
}

// Grant upserts one (resource, action) grant for a staff member.
func (h *PermissionHandler) Grant(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	var req models.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	grant, err := h.service.Grant(c.Request.Context(), principal, staffID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GrantResponse{Success: true, Data: grant})
}

// BulkGrant applies a batch of grants atomically.
func (h *PermissionHandler) BulkGrant(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	var req models.BulkGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	grants, err := h.service.BulkGrant(c.Request.Context(), principal, staffID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GrantListResponse{Success: true, Data: grants})
}

// List returns all grants for a staff member.
func (h *PermissionHandler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	grants, err := h.service.List(c.Request.Context(), principal, staffID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GrantListResponse{Success: true, Data: grants})
}

// Revoke deletes one grant; revoking a missing grant succeeds as a no-op.
func (h *PermissionHandler) Revoke(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.NotFound(c)
		return
	}

	resource := c.Param("resource")
	action := c.Param("action")

	if err := h.service.Revoke(c.Request.Context(), principal, staffID, resource, action); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Permission revoked"})
}

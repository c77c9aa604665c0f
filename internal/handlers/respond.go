package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

// respondError maps service verdicts onto the HTTP statuses of the guard
// contract. Bodies stay generic: a 403 never names the missing permission and
// a 404 never distinguishes an ownership mismatch from a missing record.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "FORBIDDEN", Message: "Insufficient permissions"},
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "NOT_FOUND", Message: "Resource not found"},
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CONFLICT", Message: "Resource already exists"},
		})
	case errors.Is(err, services.ErrBadRequest):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "BAD_REQUEST", Message: err.Error()},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INTERNAL_SERVER_ERROR", Message: "An unexpected error occurred"},
		})
	}
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		},
	})
}

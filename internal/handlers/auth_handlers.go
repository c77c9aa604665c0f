package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
	"gorm.io/gorm"
)

// AuthHandler handles credential exchange and principal introspection.
type AuthHandler struct {
	users  repository.UserRepository
	tokens *services.TokenService
	logger *logrus.Entry
}

func NewAuthHandler(users repository.UserRepository, tokens *services.TokenService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		logger: logger.WithField("component", "auth_handler"),
	}
}

// Login authenticates with email and password and issues a bearer token.
// Wrong email and wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.logger.WithError(err).Warn("User lookup failed during login")
		}
		h.invalidCredentials(c)
		return
	}

	if !user.IsActive {
		h.invalidCredentials(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.invalidCredentials(c)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user.ToDTO(),
	})
}

// Me returns the authenticated principal and its effective tenant scope.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	c.JSON(http.StatusOK, models.MeResponse{
		User:            principal.User.ToDTO(),
		EffectiveUserID: principal.EffectiveUserID,
	})
}

func (h *AuthHandler) invalidCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "INVALID_CREDENTIALS",
			Message: "Invalid email or password",
		},
	})
}

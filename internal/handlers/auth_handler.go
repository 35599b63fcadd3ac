package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sweetshop/internal/models"
	"sweetshop/internal/services"
	"sweetshop/internal/validators"
)

type AuthHandler struct {
	authService  *services.AuthService
	auditService *services.AuditService
}

func NewAuthHandler(authService *services.AuthService, auditService *services.AuditService) *AuthHandler {
	return &AuthHandler{authService: authService, auditService: auditService}
}

// Register creates a user and returns a bearer token.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req validators.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c)
		return
	}
	if err := req.Validate(); err != nil {
		badInput(c)
		return
	}

	token, user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name, req.Role)
	if errors.Is(err, services.ErrUserExists) {
		c.JSON(http.StatusForbidden, errorResponse{Message: "user already exists"})
		return
	}
	if err != nil {
		internalError(c)
		return
	}

	h.auditService.Record(c.Request.Context(), user.ID, models.ActionUserRegister, user.ID, map[string]string{
		"email": user.Email,
		"role":  string(user.Role),
	})

	c.JSON(http.StatusCreated, tokenResponse{Token: token})
}

// Login checks credentials and returns a bearer token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req validators.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c)
		return
	}
	if err := req.Validate(); err != nil {
		badInput(c)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.JSON(http.StatusForbidden, errorResponse{Message: "invalid credentials"})
		return
	}
	if err != nil {
		internalError(c)
		return
	}

	h.auditService.Record(c.Request.Context(), user.ID, models.ActionUserLogin, user.ID, nil)

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

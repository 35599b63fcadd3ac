package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sweetshop/internal/middleware"
	"sweetshop/internal/models"
	"sweetshop/internal/services"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns the most recent audit entries. ADMIN only.
// GET /api/audit
func (h *AuditHandler) List(c *gin.Context) {
	if middleware.GetRole(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, errorResponse{Message: "forbidden"})
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			badInput(c)
			return
		}
		limit = v
	}

	entries, err := h.auditService.Recent(c.Request.Context(), limit)
	if err != nil {
		internalError(c)
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

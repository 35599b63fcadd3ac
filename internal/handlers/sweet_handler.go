package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sweetshop/internal/middleware"
	"sweetshop/internal/models"
	"sweetshop/internal/repository"
	"sweetshop/internal/services"
	"sweetshop/internal/validators"
)

type SweetHandler struct {
	sweetService *services.SweetService
	auditService *services.AuditService
}

func NewSweetHandler(sweetService *services.SweetService, auditService *services.AuditService) *SweetHandler {
	return &SweetHandler{sweetService: sweetService, auditService: auditService}
}

// Create adds a new sweet to the inventory.
// POST /api/sweets
func (h *SweetHandler) Create(c *gin.Context) {
	var req validators.SweetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c)
		return
	}
	if err := req.Validate(); err != nil {
		badInput(c)
		return
	}

	sweet := &models.Sweet{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: *req.Quantity,
	}
	if err := h.sweetService.Create(c.Request.Context(), sweet); err != nil {
		internalError(c)
		return
	}

	h.auditService.Record(c.Request.Context(), middleware.GetSubject(c), models.ActionSweetCreate, sweet.ID, map[string]string{
		"name": sweet.Name,
	})

	c.JSON(http.StatusCreated, sweet)
}

// List returns the full inventory.
// GET /api/sweets
func (h *SweetHandler) List(c *gin.Context) {
	sweets, err := h.sweetService.List(c.Request.Context())
	if err != nil {
		internalError(c)
		return
	}
	if sweets == nil {
		sweets = []models.Sweet{}
	}
	c.JSON(http.StatusOK, sweets)
}

// Search filters the inventory by name, category, and price range.
// GET /api/sweets/search
func (h *SweetHandler) Search(c *gin.Context) {
	filter := repository.SweetFilter{
		Name:     strings.TrimSpace(c.Query("name")),
		Category: strings.TrimSpace(c.Query("category")),
	}

	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badInput(c)
			return
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badInput(c)
			return
		}
		filter.MaxPrice = &v
	}
	// A malformed range is a client error, not an empty result.
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		badInput(c)
		return
	}

	sweets, err := h.sweetService.Search(c.Request.Context(), filter)
	if err != nil {
		internalError(c)
		return
	}
	if sweets == nil {
		sweets = []models.Sweet{}
	}
	c.JSON(http.StatusOK, sweets)
}

// Update applies a partial update to a sweet.
// PUT /api/sweets/:id
func (h *SweetHandler) Update(c *gin.Context) {
	var req validators.SweetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c)
		return
	}
	if err := req.Validate(); err != nil {
		badInput(c)
		return
	}

	patch := repository.SweetPatch{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	sweet, err := h.sweetService.Update(c.Request.Context(), c.Param("id"), patch)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Message: "sweet not found"})
		return
	}
	if err != nil {
		internalError(c)
		return
	}

	h.auditService.Record(c.Request.Context(), middleware.GetSubject(c), models.ActionSweetUpdate, sweet.ID, nil)

	c.JSON(http.StatusOK, sweet)
}

// Delete removes a sweet. ADMIN only.
// DELETE /api/sweets/:id
func (h *SweetHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := h.sweetService.Delete(c.Request.Context(), id, middleware.GetRole(c))
	if errors.Is(err, services.ErrAdminOnly) {
		c.JSON(http.StatusForbidden, errorResponse{Message: "forbidden"})
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Message: "sweet not found"})
		return
	}
	if err != nil {
		internalError(c)
		return
	}

	h.auditService.Record(c.Request.Context(), middleware.GetSubject(c), models.ActionSweetDelete, id, nil)

	c.Status(http.StatusNoContent)
}

// Purchase decrements stock.
// POST /api/sweets/:id/purchase
func (h *SweetHandler) Purchase(c *gin.Context) {
	var req validators.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c)
		return
	}
	if err := req.Validate(); err != nil {
		badInput(c)
		return
	}

	sweet, err := h.sweetService.Purchase(c.Request.Context(), c.Param("id"), req.Quantity)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Message: "sweet not found"})
		return
	}
	if errors.Is(err, repository.ErrInsufficientStock) {
		c.JSON(http.StatusConflict, errorResponse{Message: "insufficient stock"})
		return
	}
	if err != nil {
		internalError(c)
		return
	}

	h.auditService.Record(c.Request.Context(), middleware.GetSubject(c), models.ActionSweetPurchase, sweet.ID, map[string]int{
		"quantity": req.Quantity,
	})

	c.JSON(http.StatusOK, sweet)
}

// Restock increments stock. ADMIN only.
// POST /api/sweets/:id/restock
func (h *SweetHandler) Restock(c *gin.Context) {
	var req validators.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c)
		return
	}
	if err := req.Validate(); err != nil {
		badInput(c)
		return
	}

	sweet, err := h.sweetService.Restock(c.Request.Context(), c.Param("id"), req.Quantity, middleware.GetRole(c))
	if errors.Is(err, services.ErrAdminOnly) {
		c.JSON(http.StatusForbidden, errorResponse{Message: "forbidden"})
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Message: "sweet not found"})
		return
	}
	if err != nil {
		internalError(c)
		return
	}

	h.auditService.Record(c.Request.Context(), middleware.GetSubject(c), models.ActionSweetRestock, sweet.ID, map[string]int{
		"quantity": req.Quantity,
	})

	c.JSON(http.StatusOK, sweet)
}

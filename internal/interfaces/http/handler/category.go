package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/sistemaventa/backend/internal/application/catalog"
	"github.com/sistemaventa/backend/internal/domain/catalog"
)

// CategoryHandler handles category API endpoints
type CategoryHandler struct {
	BaseHandler
	categories *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CategoryRequest is the JSON body for create and edit. Active is a
// pointer so a create without the field keeps the default.
type CategoryRequest struct {
	Description string `json:"description" binding:"required"`
	Active      *bool  `json:"active"`
}

// List returns every category
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Create registers a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid category body")
		return
	}

	category, err := catalog.NewCategory(req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	created, err := h.categories.Create(c.Request.Context(), category)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// Edit overwrites the category identified by the :id parameter
func (h *CategoryHandler) Edit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid category body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	category := &catalog.Category{Description: req.Description, Active: active}
	category.ID = id

	edited, err := h.categories.Edit(c.Request.Context(), category)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, edited)
}

// Delete removes the category identified by the :id parameter
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", h.Create)
		categories.PUT("/:id", h.Edit)
		categories.DELETE("/:id", h.Delete)
	}
}

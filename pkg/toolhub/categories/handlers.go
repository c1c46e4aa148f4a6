package categories

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/models"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/validation"
	"gorm.io/gorm"
)

// Handler handles category-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new categories handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// UpdateCategoryRequest represents the request to update a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// CategoryResponse represents a category in list responses
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ToolsCount  int    `json:"tools_count"`
}

// nameTaken reports whether another category already uses the name
func (h *Handler) nameTaken(name string, excludeID uint) bool {
	var existing models.Category
	query := h.db.Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	return query.First(&existing).Error == nil
}

// List returns all categories annotated with their tool counts
// @Summary List categories
// @Description Get all categories, each with a count of associated tools
// @Tags categories
// @Produce json
// @Success 200 {object} map[string][]CategoryResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *Handler) List(c *gin.Context) {
	var results []CategoryResponse
	err := h.db.Table("categories").
		Select("categories.id, categories.name, categories.slug, categories.description, COUNT(DISTINCT tools.id) AS tools_count").
		Joins("LEFT JOIN category_tool ON category_tool.category_id = categories.id").
		Joins("LEFT JOIN tools ON tools.id = category_tool.tool_id AND tools.deleted_at IS NULL").
		Where("categories.deleted_at IS NULL").
		Group("categories.id").
		Order("categories.name").
		Find(&results).Error

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": results})
}

// Create creates a new category
// @Summary Create a category
// @Description Create a category; the slug is derived from the name
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category details"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{} "Validation error"
// @Security BearerAuth
// @Router /categories [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.Respond(c, err)
		return
	}

	if h.nameTaken(req.Name, 0) {
		validation.Fail(c, "name", "The name has already been taken.")
		return
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		Description: req.Description,
	}

	if err := h.db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
		"message":  "Category created successfully",
	})
}

// Get returns a single category
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Category not found"
// @Security BearerAuth
// @Router /categories/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var category models.Category
	if err := h.db.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// Update updates a category
// @Summary Update a category
// @Description Partially update a category; the slug is re-derived when the name changes
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body UpdateCategoryRequest true "Updated category details"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 422 {object} map[string]interface{} "Validation error"
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var category models.Category
	if err := h.db.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.Respond(c, err)
		return
	}

	if req.Name != nil && *req.Name != category.Name {
		if h.nameTaken(*req.Name, category.ID) {
			validation.Fail(c, "name", "The name has already been taken.")
			return
		}
		category.Name = *req.Name
		category.Slug = Slugify(*req.Name)
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := h.db.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"message":  "Category updated successfully",
	})
}

// Delete deletes a category and its tool associations
// @Summary Delete a category
// @Description Delete a category; associated tools are kept, only pivot rows are removed
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]string "Category deleted"
// @Failure 404 {object} map[string]string "Category not found"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var category models.Category
	if err := h.db.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&category).Association("Tools").Clear(); err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// RegisterRoutes registers category routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.List)
	rg.POST("/categories", h.Create)
	rg.GET("/categories/:id", h.Get)
	rg.PUT("/categories/:id", h.Update)
	rg.DELETE("/categories/:id", h.Delete)
}

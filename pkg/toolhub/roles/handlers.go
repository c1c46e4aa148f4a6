package roles

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/models"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/validation"
	"gorm.io/gorm"
)

// Handler handles role-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new roles handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateRoleRequest represents the request to create a role
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	DisplayName string `json:"display_name" binding:"required,max=255"`
	Description string `json:"description"`
}

// UpdateRoleRequest represents the request to update a role
type UpdateRoleRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// nameTaken reports whether another role already uses the name
func (h *Handler) nameTaken(name string, excludeID uint) bool {
	var existing models.Role
	query := h.db.Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	return query.First(&existing).Error == nil
}

// List returns all roles
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {object} map[string][]models.Role
// @Security BearerAuth
// @Router /roles [get]
func (h *Handler) List(c *gin.Context) {
	var roles []models.Role
	if err := h.db.Order("id").Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch roles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// Create creates a new role
// @Summary Create a role
// @Tags roles
// @Accept json
// @Produce json
// @Param request body CreateRoleRequest true "Role details"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{} "Validation error"
// @Security BearerAuth
// @Router /roles [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.Respond(c, err)
		return
	}

	if h.nameTaken(req.Name, 0) {
		validation.Fail(c, "name", "The name has already been taken.")
		return
	}

	role := models.Role{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
	}

	if err := h.db.Create(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create role"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"role":    role,
		"message": "Role created successfully",
	})
}

// Get returns a single role
// @Summary Get a role
// @Tags roles
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Role not found"
// @Security BearerAuth
// @Router /roles/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}

	var role models.Role
	if err := h.db.First(&role, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": role})
}

// Update updates a role
// @Summary Update a role
// @Tags roles
// @Accept json
// @Produce json
// @Param id path int true "Role ID"
// @Param request body UpdateRoleRequest true "Updated role details"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Role not found"
// @Failure 422 {object} map[string]interface{} "Validation error"
// @Security BearerAuth
// @Router /roles/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}

	var role models.Role
	if err := h.db.First(&role, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.Respond(c, err)
		return
	}

	if req.Name != nil && *req.Name != role.Name {
		if h.nameTaken(*req.Name, role.ID) {
			validation.Fail(c, "name", "The name has already been taken.")
			return
		}
		role.Name = *req.Name
	}
	if req.DisplayName != nil {
		role.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		role.Description = *req.Description
	}

	if err := h.db.Save(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":    role,
		"message": "Role updated successfully",
	})
}

// Delete deletes a role and its recommendation associations
// @Summary Delete a role
// @Description Delete a role; recommended tools are kept, only pivot rows are removed
// @Tags roles
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} map[string]string "Role deleted"
// @Failure 404 {object} map[string]string "Role not found"
// @Security BearerAuth
// @Router /roles/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}

	var role models.Role
	if err := h.db.First(&role, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&role).Association("RecommendedTools").Clear(); err != nil {
			return err
		}
		return tx.Delete(&role).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role deleted successfully"})
}

// RegisterRoutes registers role routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", h.List)
	rg.POST("/roles", h.Create)
	rg.GET("/roles/:id", h.Get)
	rg.PUT("/roles/:id", h.Update)
	rg.DELETE("/roles/:id", h.Delete)
}

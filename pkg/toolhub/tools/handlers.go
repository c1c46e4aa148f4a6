package tools

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/auth"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/models"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PageSize is the fixed number of tools per list page
const PageSize = 12

// Handler handles tool-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new tools handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateToolRequest represents the request to create a tool
type CreateToolRequest struct {
	Name                  string   `json:"name" binding:"required,max=255"`
	Link                  string   `json:"link" binding:"required,url"`
	Description           string   `json:"description" binding:"required"`
	OfficialDocumentation string   `json:"official_documentation"`
	HowToUse              string   `json:"how_to_use"`
	RealExamples          string   `json:"real_examples"`
	Tags                  []string `json:"tags"`
	Images                []string `json:"images"`
	CategoryIDs           []uint   `json:"category_ids" binding:"required,min=1"`
	RoleIDs               []uint   `json:"role_ids"`
}

// UpdateToolRequest represents the request to update a tool.
// Pointer fields distinguish omitted from empty: omitted fields keep
// their prior values.
type UpdateToolRequest struct {
	Name                  *string   `json:"name" binding:"omitempty,max=255"`
	Link                  *string   `json:"link" binding:"omitempty,url"`
	Description           *string   `json:"description"`
	OfficialDocumentation *string   `json:"official_documentation"`
	HowToUse              *string   `json:"how_to_use"`
	RealExamples          *string   `json:"real_examples"`
	Tags                  *[]string `json:"tags"`
	Images                *[]string `json:"images"`
	CategoryIDs           *[]uint   `json:"category_ids"`
	RoleIDs               *[]uint   `json:"role_ids"`
}

// findCategories resolves category ids, failing when any id is unknown
func (h *Handler) findCategories(ids []uint) ([]models.Category, bool) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, true
	}
	var cats []models.Category
	if err := h.db.Find(&cats, ids).Error; err != nil {
		return nil, false
	}
	return cats, len(cats) == len(ids)
}

// findRoles resolves role ids, failing when any id is unknown
func (h *Handler) findRoles(ids []uint) ([]models.Role, bool) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, true
	}
	var rs []models.Role
	if err := h.db.Find(&rs, ids).Error; err != nil {
		return nil, false
	}
	return rs, len(rs) == len(ids)
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// loadAssociations reloads a tool with categories, owner, and recommended roles
func (h *Handler) loadAssociations(tool *models.Tool) error {
	return h.db.Preload("Categories").Preload("User").Preload("User.Role").
		Preload("RecommendedRoles").First(tool, tool.ID).Error
}

// List returns tools matching the given filters, paginated newest-first
// @Summary List tools
// @Description List tools with optional search, category, role, and tag filters. Filters combine conjunctively.
// @Tags tools
// @Produce json
// @Param search query string false "Substring match on name or description"
// @Param category_id query int false "Restrict to tools in this category"
// @Param role_id query int false "Restrict to tools recommended for this role"
// @Param tags query []string false "Restrict to tools containing every given tag"
// @Param page query int false "Page number (12 tools per page)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tools [get]
func (h *Handler) List(c *gin.Context) {
	query := h.db.Model(&models.Tool{})

	if search := c.Query("search"); search != "" {
		term := "%" + search + "%"
		query = query.Where(h.db.Where("tools.name LIKE ?", term).Or("tools.description LIKE ?", term))
	}

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Joins("JOIN category_tool ON category_tool.tool_id = tools.id").
			Where("category_tool.category_id = ?", categoryID)
	}

	if roleID := c.Query("role_id"); roleID != "" {
		query = query.Joins("JOIN role_tool_recommendations ON role_tool_recommendations.tool_id = tools.id").
			Where("role_tool_recommendations.role_id = ?", roleID)
	}

	tags := c.QueryArray("tags")
	if len(tags) == 0 {
		tags = c.QueryArray("tags[]")
	}
	// Every requested tag must appear in the tool's JSON tag list
	for _, tag := range tags {
		query = query.Where("EXISTS (SELECT 1 FROM json_each(tools.tags) WHERE json_each.value = ?)", tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tools"})
		return
	}

	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	lastPage := int((total + PageSize - 1) / PageSize)
	if lastPage < 1 {
		lastPage = 1
	}

	var tools []models.Tool
	err := query.Preload("Categories").Preload("User").Preload("RecommendedRoles").
		Order("tools.created_at DESC, tools.id DESC").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&tools).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tools"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":         tools,
		"current_page": page,
		"last_page":    lastPage,
		"per_page":     PageSize,
		"total":        total,
	})
}

// Create creates a new tool owned by the authenticated user
// @Summary Create a tool
// @Description Create a tool with at least one category; the caller becomes the owner
// @Tags tools
// @Accept json
// @Produce json
// @Param request body CreateToolRequest true "Tool details"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{} "Validation error"
// @Security BearerAuth
// @Router /tools [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.Respond(c, err)
		return
	}

	cats, ok := h.findCategories(req.CategoryIDs)
	if !ok {
		validation.Fail(c, "category_ids", "One or more selected categories do not exist.")
		return
	}

	var recommended []models.Role
	if len(req.RoleIDs) > 0 {
		recommended, ok = h.findRoles(req.RoleIDs)
		if !ok {
			validation.Fail(c, "role_ids", "One or more selected roles do not exist.")
			return
		}
	}

	// Keep the JSON columns as arrays so tag filtering never sees NULL
	if req.Tags == nil {
		req.Tags = []string{}
	}
	if req.Images == nil {
		req.Images = []string{}
	}

	tool := models.Tool{
		UserID:                userID,
		Name:                  req.Name,
		Link:                  req.Link,
		Description:           req.Description,
		OfficialDocumentation: req.OfficialDocumentation,
		HowToUse:              req.HowToUse,
		RealExamples:          req.RealExamples,
		Tags:                  datatypes.NewJSONSlice(req.Tags),
		Images:                datatypes.NewJSONSlice(req.Images),
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tool).Error; err != nil {
			return err
		}
		if err := tx.Model(&tool).Association("Categories").Replace(cats); err != nil {
			return err
		}
		if len(recommended) > 0 {
			return tx.Model(&tool).Association("RecommendedRoles").Replace(recommended)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tool"})
		return
	}

	if err := h.loadAssociations(&tool); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tool"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"tool":    tool,
		"message": "Tool created successfully",
	})
}

// Get returns a single tool with its associations
// @Summary Get a tool
// @Tags tools
// @Produce json
// @Param id path int true "Tool ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Tool not found"
// @Security BearerAuth
// @Router /tools/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tool not found"})
		return
	}

	var tool models.Tool
	if err := h.db.Preload("Categories").Preload("User").Preload("User.Role").
		Preload("RecommendedRoles").First(&tool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tool not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tool": tool})
}

// Update updates a tool; only the owner may do so
// @Summary Update a tool
// @Description Partially update a tool. Supplied category or role id lists replace the full association set.
// @Tags tools
// @Accept json
// @Produce json
// @Param id path int true "Tool ID"
// @Param request body UpdateToolRequest true "Updated tool details"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Tool not found"
// @Failure 422 {object} map[string]interface{} "Validation error"
// @Security BearerAuth
// @Router /tools/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tool not found"})
		return
	}

	var tool models.Tool
	if err := h.db.First(&tool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tool not found"})
		return
	}

	if tool.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "This action is unauthorized."})
		return
	}

	var req UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validation.Respond(c, err)
		return
	}

	var cats []models.Category
	if req.CategoryIDs != nil {
		var ok bool
		cats, ok = h.findCategories(*req.CategoryIDs)
		if !ok {
			validation.Fail(c, "category_ids", "One or more selected categories do not exist.")
			return
		}
	}

	var recommended []models.Role
	if req.RoleIDs != nil {
		var ok bool
		recommended, ok = h.findRoles(*req.RoleIDs)
		if !ok {
			validation.Fail(c, "role_ids", "One or more selected roles do not exist.")
			return
		}
	}

	if req.Name != nil {
		tool.Name = *req.Name
	}
	if req.Link != nil {
		tool.Link = *req.Link
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	if req.OfficialDocumentation != nil {
		tool.OfficialDocumentation = *req.OfficialDocumentation
	}
	if req.HowToUse != nil {
		tool.HowToUse = *req.HowToUse
	}
	if req.RealExamples != nil {
		tool.RealExamples = *req.RealExamples
	}
	if req.Tags != nil {
		tool.Tags = datatypes.NewJSONSlice(*req.Tags)
	}
	if req.Images != nil {
		tool.Images = datatypes.NewJSONSlice(*req.Images)
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&tool).Error; err != nil {
			return err
		}
		if req.CategoryIDs != nil {
			if err := tx.Model(&tool).Association("Categories").Replace(cats); err != nil {
				return err
			}
		}
		if req.RoleIDs != nil {
			if err := tx.Model(&tool).Association("RecommendedRoles").Replace(recommended); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tool"})
		return
	}

	if err := h.loadAssociations(&tool); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tool"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tool":    tool,
		"message": "Tool updated successfully",
	})
}

// Delete deletes a tool; only the owner may do so
// @Summary Delete a tool
// @Tags tools
// @Produce json
// @Param id path int true "Tool ID"
// @Success 200 {object} map[string]string "Tool deleted"
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Tool not found"
// @Security BearerAuth
// @Router /tools/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tool not found"})
		return
	}

	var tool models.Tool
	if err := h.db.First(&tool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tool not found"})
		return
	}

	if tool.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "This action is unauthorized."})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tool).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&tool).Association("RecommendedRoles").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tool).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tool"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tool deleted successfully"})
}

// RegisterRoutes registers tool routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tools", h.List)
	rg.POST("/tools", h.Create)
	rg.GET("/tools/:id", h.Get)
	rg.PUT("/tools/:id", h.Update)
	rg.DELETE("/tools/:id", h.Delete)
}

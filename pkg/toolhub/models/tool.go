package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tool represents a catalog entry owned by the user who created it
type Tool struct {
	ID                    uint                        `gorm:"primarykey" json:"id"`
	CreatedAt             time.Time                   `json:"created_at"`
	UpdatedAt             time.Time                   `json:"updated_at"`
	DeletedAt             gorm.DeletedAt              `gorm:"index" json:"-"`
	UserID                uint                        `gorm:"not null;index" json:"user_id"`
	Name                  string                      `gorm:"not null" json:"name"`
	Link                  string                      `gorm:"not null" json:"link"`
	Description           string                      `gorm:"not null" json:"description"`
	OfficialDocumentation string                      `json:"official_documentation,omitempty"`
	HowToUse              string                      `json:"how_to_use,omitempty"`
	RealExamples          string                      `json:"real_examples,omitempty"`
	Tags                  datatypes.JSONSlice[string] `json:"tags"`
	Images                datatypes.JSONSlice[string] `json:"images"`

	// Relationships
	User             User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Categories       []Category `gorm:"many2many:category_tool;" json:"categories,omitempty"`
	RecommendedRoles []Role     `gorm:"many2many:role_tool_recommendations;" json:"recommended_for_roles,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a job role that users hold and tools can be recommended for
type Role struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	DisplayName string         `gorm:"not null" json:"display_name"`
	Description string         `json:"description,omitempty"`

	// Relationships
	Users            []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
	RecommendedTools []Tool `gorm:"many2many:role_tool_recommendations;" json:"recommended_tools,omitempty"`
}

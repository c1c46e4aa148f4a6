package models

import (
	"time"

	"gorm.io/gorm"
)

// Category represents a grouping of tools
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `json:"description,omitempty"`

	// Relationships
	Tools []Tool `gorm:"many2many:category_tool;" json:"tools,omitempty"`
}

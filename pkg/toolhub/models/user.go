package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account that can own tools
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"`
	RoleID       uint           `gorm:"index" json:"role_id"`

	// Relationships. Tools are deliberately not cascaded: deleting a user
	// leaves its tools in place.
	Role  Role   `gorm:"foreignKey:RoleID" json:"role"`
	Tools []Tool `gorm:"foreignKey:UserID" json:"tools,omitempty"`
}

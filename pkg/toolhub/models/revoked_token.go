package models

import "time"

// RevokedToken records a JWT ID that has been logged out.
// Rows older than their token's expiry are safe to prune.
type RevokedToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	TokenID   string    `gorm:"uniqueIndex;not null" json:"token_id"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toolhub-dev/toolhub/pkg/toolhub/models"
	"gorm.io/gorm"
)

const (
	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyEmail is the key for email in gin context
	ContextKeyEmail = "email"
	// ContextKeyTokenID is the key for the JWT ID in gin context
	ContextKeyTokenID = "token_id"
	// ContextKeyTokenExpiry is the key for the token expiry in gin context
	ContextKeyTokenExpiry = "token_expiry"
)

// Middleware validates bearer tokens, rejects revoked ones, and sets
// user info in the request context
func Middleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := ValidateToken(parts[1])
		if err != nil {
			if err == ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		// Tokens invalidated by logout are on the revocation list
		var revoked models.RevokedToken
		if err := db.Where("token_id = ?", claims.ID).First(&revoked).Error; err == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyTokenID, claims.ID)
		c.Set(ContextKeyTokenExpiry, claims.ExpiresAt.Time)

		c.Next()
	}
}

// GetUserID returns the user ID from the gin context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetEmail returns the email from the gin context
func GetEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(ContextKeyEmail)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetTokenID returns the JWT ID and its expiry from the gin context
func GetTokenID(c *gin.Context) (string, time.Time, bool) {
	tokenID, exists := c.Get(ContextKeyTokenID)
	if !exists {
		return "", time.Time{}, false
	}
	expiry, exists := c.Get(ContextKeyTokenExpiry)
	if !exists {
		return "", time.Time{}, false
	}
	return tokenID.(string), expiry.(time.Time), true
}

package middleware

import (
	"errors"
	"strings"

	"github.com/articlekit/core/internal/models"
	"github.com/articlekit/core/internal/pkg/jwt"
	"github.com/articlekit/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID    = "user_id"
	ContextKeySuperuser = "is_superuser"
)

// Auth returns a middleware that enforces JWT authentication.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := validateToken(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeySuperuser, user.IsSuperuser)
		c.Next()
	}
}

// OptionalAuth sets the user identity if a valid token is present, but does
// not block the request. Live-article filtering keys off the superuser flag.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := validateToken(db, extractToken(c)); err == nil {
			c.Set(ContextKeyUserID, user.ID)
			c.Set(ContextKeySuperuser, user.IsSuperuser)
		}
		c.Next()
	}
}

// IsSuperuser reports whether the authenticated request user is a superuser.
func IsSuperuser(c *gin.Context) bool {
	return c.GetBool(ContextKeySuperuser)
}

// UserID returns the authenticated user's ID, or "".
func UserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

func validateToken(db *gorm.DB, rawToken string) (*models.UserModel, error) {
	if rawToken == "" {
		return nil, errors.New("missing token")
	}
	claims, err := jwt.Parse(rawToken)
	if err != nil {
		return nil, err
	}

	var user models.UserModel
	if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

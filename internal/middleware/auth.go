package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// ContextUserKey is where the authenticated user document is stored
	ContextUserKey = "user"
	// ContextUserIDKey is where the authenticated user's id is stored
	ContextUserIDKey = "userID"
	// AccessTokenCookie is the cookie carrying the access token
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie is the cookie carrying the refresh token
	RefreshTokenCookie = "refreshToken"
)

// Auth requires a valid access token, via Authorization header or cookie,
// and attaches the resolved user to the request context.
func Auth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractAccessToken(c)
		if token == "" {
			response.Error(c, apperror.Unauthorized("authentication required"))
			c.Abort()
			return
		}

		user, err := authService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid access token is presented and
// lets the request through anonymously otherwise.
func OptionalAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractAccessToken(c)
		if token != "" {
			if user, err := authService.ValidateAccessToken(c.Request.Context(), token); err == nil {
				c.Set(ContextUserIDKey, user.ID)
				c.Set(ContextUserKey, user)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id, or the zero ObjectID for
// anonymous requests.
func UserID(c *gin.Context) primitive.ObjectID {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(primitive.ObjectID); ok {
			return id
		}
	}
	return primitive.NilObjectID
}

// User returns the authenticated user document, or nil for anonymous requests
func User(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// extractAccessToken prefers the Authorization header over the cookie
func extractAccessToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

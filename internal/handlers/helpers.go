package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/config"
	"github.com/tunestream/backend/internal/middleware"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxPageLimit = 100

// parsePage reads ?page= and ?limit= with a per-resource default limit
func parsePage(c *gin.Context, defaultLimit int64) store.Page {
	page := int64(1)
	if v, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	limit := defaultLimit
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return store.Page{Number: page, Limit: limit}
}

// objectIDParam parses a path parameter as an ObjectID
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, apperror.BadRequest("invalid " + name)
	}
	return id, nil
}

// setAuthCookies stores the token pair in HTTP-only cookies
func setAuthCookies(c *gin.Context, cfg *config.Config, pair *services.TokenPair) {
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken,
		int(cfg.JWTAccessTokenDuration.Seconds()), "/", "", cfg.SecureCookies, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken,
		int(cfg.JWTRefreshTokenDuration.Seconds()), "/", "", cfg.SecureCookies, true)
}

// clearAuthCookies expires both auth cookies
func clearAuthCookies(c *gin.Context, cfg *config.Config) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", cfg.SecureCookies, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", cfg.SecureCookies, true)
}

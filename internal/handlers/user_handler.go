package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/config"
	"github.com/tunestream/backend/internal/middleware"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	cfg         *config.Config
	userService *services.UserService
}

func NewUserHandler(cfg *config.Config, userService *services.UserService) *UserHandler {
	return &UserHandler{cfg: cfg, userService: userService}
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, "user profile")
}

// UpdateAccount patches the caller's profile fields
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req struct {
		Username *string `json:"username"`
		FullName *string `json:"fullName"`
		Avatar   *string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userService.UpdateAccount(c.Request.Context(), middleware.UserID(c), services.UpdateAccountInput{
		Username: req.Username,
		FullName: req.FullName,
		Avatar:   req.Avatar,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, "account updated")
}

// UpdatePreferences patches the caller's taste preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var req struct {
		FavoriteGenres     *[]string             `json:"favoriteGenres"`
		FavoriteArtists    *[]primitive.ObjectID `json:"favoriteArtists"`
		PreferredLanguages *[]string             `json:"preferredLanguages"`
		MoodPreferences    *[]string             `json:"moodPreferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userService.UpdatePreferences(c.Request.Context(), middleware.UserID(c), services.UpdatePreferenceInput{
		FavoriteGenres:     req.FavoriteGenres,
		FavoriteArtists:    req.FavoriteArtists,
		PreferredLanguages: req.PreferredLanguages,
		MoodPreferences:    req.MoodPreferences,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, "preferences updated")
}

// LikeTrack adds a track to the caller's liked list
func (h *UserHandler) LikeTrack(c *gin.Context) {
	trackID, err := objectIDParam(c, "trackId")
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.userService.LikeTrack(c.Request.Context(), middleware.UserID(c), trackID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"likedTracks": user.LikedTracks}, "track liked")
}

// UnlikeTrack removes a track from the caller's liked list
func (h *UserHandler) UnlikeTrack(c *gin.Context) {
	trackID, err := objectIDParam(c, "trackId")
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.userService.UnlikeTrack(c.Request.Context(), middleware.UserID(c), trackID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"likedTracks": user.LikedTracks}, "track unliked")
}

// LikedTracks lists the caller's liked tracks, hydrated
func (h *UserHandler) LikedTracks(c *gin.Context) {
	tracks, err := h.userService.LikedTracks(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"tracks": tracks}, "liked tracks")
}

// TopTracks lists the caller's most played tracks
func (h *UserHandler) TopTracks(c *gin.Context) {
	limit := 10
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	tracks, err := h.userService.TopTracks(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"tracks": tracks}, "top tracks")
}

// DeleteAccount removes the caller's account and owned playlists
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.userService.DeleteAccount(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	clearAuthCookies(c, h.cfg)
	response.JSON(c, http.StatusOK, nil, "account deleted")
}

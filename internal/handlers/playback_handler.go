package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/middleware"
	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultHistoryPageLimit = 20
	defaultRecentPlaysLimit = 10
)

type PlaybackHandler struct {
	playbackService *services.PlaybackService
}

func NewPlaybackHandler(playbackService *services.PlaybackService) *PlaybackHandler {
	return &PlaybackHandler{playbackService: playbackService}
}

// Start records a play and bumps the track's counter
func (h *PlaybackHandler) Start(c *gin.Context) {
	var req struct {
		TrackID string `json:"trackId" binding:"required"`
		Device  string `json:"device"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}
	trackID, err := primitive.ObjectIDFromHex(req.TrackID)
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid trackId"))
		return
	}

	entry, err := h.playbackService.Start(c.Request.Context(), middleware.UserID(c), services.StartPlaybackInput{
		TrackID:   trackID,
		Device:    models.PlaybackDevice(req.Device),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, entry, "playback recorded")
}

// UpdateProgress patches the caller's own history entry
func (h *PlaybackHandler) UpdateProgress(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req struct {
		ProgressSeconds *int  `json:"progressSeconds"`
		Completed       *bool `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	entry, err := h.playbackService.UpdateProgress(c.Request.Context(), id, middleware.UserID(c), services.PlaybackProgressInput{
		ProgressSeconds: req.ProgressSeconds,
		Completed:       req.Completed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, "progress updated")
}

// History returns the caller's paginated playback history
func (h *PlaybackHandler) History(c *gin.Context) {
	page := parsePage(c, defaultHistoryPageLimit)
	entries, total, err := h.playbackService.History(c.Request.Context(), middleware.UserID(c), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"history":    entries,
		"pagination": response.NewPagination(total, page.Number, page.Limit),
	}, "playback history")
}

// Recent returns the caller's most recent plays
func (h *PlaybackHandler) Recent(c *gin.Context) {
	limit := int64(defaultRecentPlaysLimit)
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	entries, err := h.playbackService.Recent(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"history": entries}, "recent plays")
}

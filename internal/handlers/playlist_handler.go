package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/middleware"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultPlaylistPageLimit = 20

type PlaylistHandler struct {
	playlistService *services.PlaylistService
}

func NewPlaylistHandler(playlistService *services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create registers a playlist owned by the caller
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req struct {
		PlayListTitle string   `json:"playListTitle" binding:"required"`
		Description   string   `json:"description"`
		CoverImage    string   `json:"coverImage"`
		IsPublic      bool     `json:"isPublic"`
		TrackIDs      []string `json:"trackIds"`
		Tags          []string `json:"tags"`
		Mood          []string `json:"mood"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	trackIDs := make([]primitive.ObjectID, 0, len(req.TrackIDs))
	for _, raw := range req.TrackIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			response.Error(c, apperror.BadRequest("invalid track id: "+raw))
			return
		}
		trackIDs = append(trackIDs, id)
	}

	playlist, err := h.playlistService.Create(c.Request.Context(), middleware.UserID(c), services.CreatePlaylistInput{
		PlayListTitle: req.PlayListTitle,
		Description:   req.Description,
		CoverImage:    req.CoverImage,
		IsPublic:      req.IsPublic,
		TrackIDs:      trackIDs,
		Tags:          req.Tags,
		Mood:          req.Mood,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, playlist, "playlist created")
}

// Mine lists the caller's playlists
func (h *PlaylistHandler) Mine(c *gin.Context) {
	playlists, err := h.playlistService.Mine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"playlists": playlists}, "my playlists")
}

// Public lists public playlists for discovery
func (h *PlaylistHandler) Public(c *gin.Context) {
	filter := store.PlaylistFilter{
		Tag:    c.Query("tag"),
		Mood:   c.Query("mood"),
		Search: c.Query("search"),
	}
	page := parsePage(c, defaultPlaylistPageLimit)
	playlists, total, err := h.playlistService.Public(c.Request.Context(), filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"playlists":  playlists,
		"pagination": response.NewPagination(total, page.Number, page.Limit),
	}, "public playlists")
}

// Get returns a playlist visible to the caller, owner and tracks populated
func (h *PlaylistHandler) Get(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	playlist, err := h.playlistService.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "playlist")
}

// Update patches a playlist owned by the caller
func (h *PlaylistHandler) Update(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req struct {
		PlayListTitle *string   `json:"playListTitle"`
		Description   *string   `json:"description"`
		CoverImage    *string   `json:"coverImage"`
		IsPublic      *bool     `json:"isPublic"`
		Tags          *[]string `json:"tags"`
		Mood          *[]string `json:"mood"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	playlist, err := h.playlistService.Update(c.Request.Context(), id, middleware.UserID(c), services.UpdatePlaylistInput{
		PlayListTitle: req.PlayListTitle,
		Description:   req.Description,
		CoverImage:    req.CoverImage,
		IsPublic:      req.IsPublic,
		Tags:          req.Tags,
		Mood:          req.Mood,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "playlist updated")
}

// Delete removes a playlist owned by the caller
func (h *PlaylistHandler) Delete(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.playlistService.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nil, "playlist deleted")
}

// AddTrack appends a track; adding a present track is a no-op
func (h *PlaylistHandler) AddTrack(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	trackID, err := objectIDParam(c, "trackId")
	if err != nil {
		response.Error(c, err)
		return
	}
	playlist, err := h.playlistService.AddTrack(c.Request.Context(), id, middleware.UserID(c), trackID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "track added")
}

// RemoveTrack drops a track; removing an absent track succeeds unchanged
func (h *PlaylistHandler) RemoveTrack(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	trackID, err := objectIDParam(c, "trackId")
	if err != nil {
		response.Error(c, err)
		return
	}
	playlist, err := h.playlistService.RemoveTrack(c.Request.Context(), id, middleware.UserID(c), trackID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, playlist, "track removed")
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultTrackPageLimit = 20

type TrackHandler struct {
	trackService *services.TrackService
}

func NewTrackHandler(trackService *services.TrackService) *TrackHandler {
	return &TrackHandler{trackService: trackService}
}

// List returns a filtered, paginated track collection
func (h *TrackHandler) List(c *gin.Context) {
	filter := store.TrackFilter{
		Genre:  c.Query("genre"),
		Mood:   c.Query("mood"),
		Search: c.Query("search"),
	}
	if v := c.Query("artistId"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			response.Error(c, apperror.BadRequest("invalid artistId"))
			return
		}
		filter.ArtistID = &id
	}
	if v := c.Query("albumId"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			response.Error(c, apperror.BadRequest("invalid albumId"))
			return
		}
		filter.AlbumID = &id
	}

	sort := store.TrackSortNewest
	if c.Query("sort") == "popular" {
		sort = store.TrackSortPopular
	}

	page := parsePage(c, defaultTrackPageLimit)
	tracks, total, err := h.trackService.List(c.Request.Context(), filter, sort, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"tracks":     tracks,
		"pagination": response.NewPagination(total, page.Number, page.Limit),
	}, "tracks")
}

// Get returns one track with artist and album populated
func (h *TrackHandler) Get(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	track, err := h.trackService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, track, "track")
}

// Create registers a new track
func (h *TrackHandler) Create(c *gin.Context) {
	var req struct {
		Title     string   `json:"title" binding:"required"`
		TrackFile string   `json:"trackFile" binding:"required"`
		ArtistID  string   `json:"artistId" binding:"required"`
		AlbumID   string   `json:"albumId"`
		Duration  int      `json:"duration"`
		Language  string   `json:"language"`
		Genres    []string `json:"genres"`
		Mood      []string `json:"mood"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	artistID, err := primitive.ObjectIDFromHex(req.ArtistID)
	if err != nil {
		response.Error(c, apperror.BadRequest("invalid artistId"))
		return
	}
	input := services.CreateTrackInput{
		Title:     req.Title,
		TrackFile: req.TrackFile,
		ArtistID:  artistID,
		Duration:  req.Duration,
		Language:  req.Language,
		Genres:    req.Genres,
		Mood:      req.Mood,
	}
	if req.AlbumID != "" {
		albumID, err := primitive.ObjectIDFromHex(req.AlbumID)
		if err != nil {
			response.Error(c, apperror.BadRequest("invalid albumId"))
			return
		}
		input.AlbumID = &albumID
	}

	track, err := h.trackService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, track, "track created")
}

// Update patches a track; moving it between albums adjusts both albums' counters
func (h *TrackHandler) Update(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req struct {
		Title     *string   `json:"title"`
		TrackFile *string   `json:"trackFile"`
		AlbumID   *string   `json:"albumId"`
		Duration  *int      `json:"duration"`
		Language  *string   `json:"language"`
		Genres    *[]string `json:"genres"`
		Mood      *[]string `json:"mood"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	input := services.UpdateTrackInput{
		Title:     req.Title,
		TrackFile: req.TrackFile,
		Duration:  req.Duration,
		Language:  req.Language,
		Genres:    req.Genres,
		Mood:      req.Mood,
	}
	if req.AlbumID != nil {
		if *req.AlbumID == "" {
			input.ClearAlbum = true
		} else {
			albumID, err := primitive.ObjectIDFromHex(*req.AlbumID)
			if err != nil {
				response.Error(c, apperror.BadRequest("invalid albumId"))
				return
			}
			input.AlbumID = &albumID
		}
	}

	track, err := h.trackService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, track, "track updated")
}

// Delete removes a track and repairs its album's counters
func (h *TrackHandler) Delete(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.trackService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nil, "track deleted")
}

// Play bumps the track's play counter
func (h *TrackHandler) Play(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	track, err := h.trackService.Play(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, track, "play recorded")
}

// Like bumps the track's like counter
func (h *TrackHandler) Like(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	track, err := h.trackService.Like(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, track, "like recorded")
}

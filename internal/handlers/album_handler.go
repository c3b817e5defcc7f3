package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultAlbumPageLimit = 10

type AlbumHandler struct {
	albumService *services.AlbumService
}

func NewAlbumHandler(albumService *services.AlbumService) *AlbumHandler {
	return &AlbumHandler{albumService: albumService}
}

// List returns a paginated album collection with live track counts
func (h *AlbumHandler) List(c *gin.Context) {
	filter := store.AlbumFilter{Search: c.Query("search")}
	if v := c.Query("artistId"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			response.Error(c, apperror.BadRequest("invalid artistId"))
			return
		}
		filter.ArtistID = &id
	}

	page := parsePage(c, defaultAlbumPageLimit)
	albums, total, err := h.albumService.List(c.Request.Context(), filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"albums":     albums,
		"pagination": response.NewPagination(total, page.Number, page.Limit),
	}, "albums")
}

// Get returns one album with its artist and full track list
func (h *AlbumHandler) Get(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	album, err := h.albumService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, album, "album")
}

// Create registers a new album
func (h *AlbumHandler) Create(c *gin.Context) {
	var req struct {
		AlbumTitle  string   `json:"albumTitle" binding:"required"`
		ArtistID    string   `json:"artistId" binding:"required"`
		Description string   `json:"description"`
		CoverImage  string   `json:"coverImage"`
		ReleaseDate string   `json:"releaseDate"`
		Genres      []string `json:"genres"`
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
	input := services.CreateAlbumInput{
		AlbumTitle:  req.AlbumTitle,
		ArtistID:    artistID,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Genres:      req.Genres,
	}
	if req.ReleaseDate != "" {
		released, err := time.Parse(time.RFC3339, req.ReleaseDate)
		if err != nil {
			response.Error(c, apperror.BadRequest("releaseDate must be RFC 3339"))
			return
		}
		input.ReleaseDate = &released
	}

	album, err := h.albumService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, album, "album created")
}

// Update patches an album
func (h *AlbumHandler) Update(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req struct {
		AlbumTitle  *string   `json:"albumTitle"`
		Description *string   `json:"description"`
		CoverImage  *string   `json:"coverImage"`
		ReleaseDate *string   `json:"releaseDate"`
		Genres      *[]string `json:"genres"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	input := services.UpdateAlbumInput{
		AlbumTitle:  req.AlbumTitle,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Genres:      req.Genres,
	}
	if req.ReleaseDate != nil {
		released, err := time.Parse(time.RFC3339, *req.ReleaseDate)
		if err != nil {
			response.Error(c, apperror.BadRequest("releaseDate must be RFC 3339"))
			return
		}
		input.ReleaseDate = &released
	}

	album, err := h.albumService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, album, "album updated")
}

// Delete removes an album and detaches its tracks
func (h *AlbumHandler) Delete(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.albumService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nil, "album deleted")
}

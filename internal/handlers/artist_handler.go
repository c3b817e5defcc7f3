package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/internal/store"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/response"
)

const defaultArtistPageLimit = 20

type ArtistHandler struct {
	artistService *services.ArtistService
}

func NewArtistHandler(artistService *services.ArtistService) *ArtistHandler {
	return &ArtistHandler{artistService: artistService}
}

// List returns a filtered, paginated artist collection
func (h *ArtistHandler) List(c *gin.Context) {
	filter := store.ArtistFilter{
		Genre:  c.Query("genre"),
		Search: c.Query("search"),
	}
	page := parsePage(c, defaultArtistPageLimit)
	artists, total, err := h.artistService.List(c.Request.Context(), filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"artists":    artists,
		"pagination": response.NewPagination(total, page.Number, page.Limit),
	}, "artists")
}

// Get returns one artist
func (h *ArtistHandler) Get(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	artist, err := h.artistService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, artist, "artist")
}

// Create registers a new artist; duplicate names are rejected
func (h *ArtistHandler) Create(c *gin.Context) {
	var req struct {
		ArtistName  string             `json:"artistName" binding:"required"`
		ArtistBio   string             `json:"artistBio"`
		ArtistImage string             `json:"artistImage"`
		Genres      []string           `json:"genres"`
		SocialLinks models.SocialLinks `json:"socialLinks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	artist, err := h.artistService.Create(c.Request.Context(), services.CreateArtistInput{
		ArtistName:  req.ArtistName,
		ArtistBio:   req.ArtistBio,
		ArtistImage: req.ArtistImage,
		Genres:      req.Genres,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, artist, "artist created")
}

// Update patches an artist
func (h *ArtistHandler) Update(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req struct {
		ArtistName  *string             `json:"artistName"`
		ArtistBio   *string             `json:"artistBio"`
		ArtistImage *string             `json:"artistImage"`
		Genres      *[]string           `json:"genres"`
		SocialLinks *models.SocialLinks `json:"socialLinks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}

	artist, err := h.artistService.Update(c.Request.Context(), id, services.UpdateArtistInput{
		ArtistName:  req.ArtistName,
		ArtistBio:   req.ArtistBio,
		ArtistImage: req.ArtistImage,
		Genres:      req.Genres,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, artist, "artist updated")
}

// Delete removes an artist
func (h *ArtistHandler) Delete(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.artistService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nil, "artist deleted")
}

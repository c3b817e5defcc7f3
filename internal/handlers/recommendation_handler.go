package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/middleware"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/pkg/response"
)

type RecommendationHandler struct {
	recommendationService *services.RecommendationService
}

func NewRecommendationHandler(recommendationService *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// ForYou runs a recommendation pass for the caller
func (h *RecommendationHandler) ForYou(c *gin.Context) {
	n := 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		n = v
	}

	result, err := h.recommendationService.ForYou(c.Request.Context(), middleware.UserID(c), n)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, "recommendations")
}

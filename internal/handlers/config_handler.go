package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/config"
	"github.com/tunestream/backend/pkg/response"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// Public exposes the non-sensitive client identifiers the frontend needs to
// start the identity-provider flows.
func (h *ConfigHandler) Public(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"googleClientId": h.cfg.GoogleClientID,
		"facebookAppId":  h.cfg.FacebookAppID,
	}, "public config")
}

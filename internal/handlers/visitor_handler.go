package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/pkg/apperror"
	"github.com/tunestream/backend/pkg/response"
)

type VisitorHandler struct {
	visitorService *services.VisitorService
}

func NewVisitorHandler(visitorService *services.VisitorService) *VisitorHandler {
	return &VisitorHandler{visitorService: visitorService}
}

// SaveUserInfo upserts the visitor document for the caller's IP
func (h *VisitorHandler) SaveUserInfo(c *gin.Context) {
	var req struct {
		IP         string   `json:"ip"`
		IPVersion  string   `json:"ip_version"`
		City       string   `json:"city"`
		Region     string   `json:"region"`
		Country    string   `json:"country"`
		Longitude  *float64 `json:"longitude"`
		NetworkOrg string   `json:"network_org"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(err.Error()))
		return
	}
	if req.IP == "" {
		req.IP = c.ClientIP()
	}

	visitor, err := h.visitorService.Record(c.Request.Context(), services.VisitorInput{
		IP:         req.IP,
		IPVersion:  req.IPVersion,
		City:       req.City,
		Region:     req.Region,
		Country:    req.Country,
		Longitude:  req.Longitude,
		NetworkOrg: req.NetworkOrg,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visitor, "visitor recorded")
}

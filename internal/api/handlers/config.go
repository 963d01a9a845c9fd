package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jroosing/hydrasink/internal/api/models"
)

// GetConfig godoc
// @Summary Get current configuration
// @Description Returns the current server configuration (API key redacted)
// @Tags config
// @Produce json
// @Success 200 {object} models.ConfigResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	if h.cfg == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "config unavailable"})
		return
	}

	resp := models.ConfigResponse{
		Server:    h.cfg.Server,
		Sinkhole:  h.cfg.Sinkhole,
		Blocklist: h.cfg.Blocklist,
		Logging:   h.cfg.Logging,
		Database:  h.cfg.Database,
		API: models.APIConfigResponse{
			Enabled:   h.cfg.API.Enabled,
			Host:      h.cfg.API.Host,
			Port:      h.cfg.API.Port,
			KeyNeeded: h.cfg.API.APIKey != "",
		},
	}

	c.JSON(http.StatusOK, resp)
}

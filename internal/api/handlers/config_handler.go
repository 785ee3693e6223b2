package handlers

import (
	"net/http"

	api "kestrel-v0/internal/api/application"
)

// ConfigHandler exposes the active detector configuration
type ConfigHandler struct {
	service *api.MonitorService
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(service *api.MonitorService) *ConfigHandler {
	return &ConfigHandler{
		service: service,
	}
}

// GetConfig handles GET /api/v1/config
// @Summary      Get detector configuration
// @Description  Get the active expected interval and miss threshold
// @Tags         config
// @Produce      json
// @Success      200  {object}  application.ConfigResponse
// @Security     ApiKeyAuth
// @Router       /config [get]
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	respondJSON(w, http.StatusOK, h.service.Config())
}

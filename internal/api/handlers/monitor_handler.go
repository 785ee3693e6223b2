package handlers

import (
	"errors"
	"io"
	"net/http"

	api "kestrel-v0/internal/api/application"
	heartbeatapp "kestrel-v0/internal/heartbeat/application"
)

// maxBatchBytes caps the accepted request body size
const maxBatchBytes = 10 << 20

// MonitorHandler handles one-shot monitoring passes
type MonitorHandler struct {
	service *api.MonitorService
}

// NewMonitorHandler creates a new monitor handler
func NewMonitorHandler(service *api.MonitorService) *MonitorHandler {
	return &MonitorHandler{
		service: service,
	}
}

// Monitor handles POST /api/v1/monitor
// @Summary      Run a monitoring pass
// @Description  Detect missed heartbeats in a batch of raw events
// @Tags         monitor
// @Accept       json
// @Produce      json
// @Param        events  body      []object  true  "Raw heartbeat events (array or single object)"
// @Success      200     {object}  application.MonitorResponse
// @Failure      400     {object}  application.ErrorResponse
// @Failure      500     {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /monitor [post]
func (h *MonitorHandler) Monitor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logger := getLogger(r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBytes))
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Failed to read request body: "+err.Error())
		return
	}

	result, err := h.service.Monitor(r.Context(), "api:"+r.RemoteAddr, body)
	if errors.Is(err, heartbeatapp.ErrSourceMalformed) {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Error("Failed to run monitoring pass", "err", err)
		respondJSONError(w, http.StatusInternalServerError, "Failed to run monitoring pass: "+err.Error())
		return
	}

	logger.Debug("Monitoring pass complete",
		"run_id", result.RunID,
		"valid", result.ValidEvents,
		"alerts", len(result.Alerts),
	)
	respondJSON(w, http.StatusOK, result)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	api "kestrel-v0/internal/api/application"
)

// AlertHandler handles queries over recorded alerts
type AlertHandler struct {
	service *api.AuditService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(service *api.AuditService) *AlertHandler {
	return &AlertHandler{
		service: service,
	}
}

// ListAlerts handles GET /api/v1/alerts
// @Summary      List alerts
// @Description  Get recorded alerts with optional filtering
// @Tags         alerts
// @Produce      json
// @Param        service  query     string  false  "Filter by service"
// @Param        limit    query     int     false  "Limit results"
// @Param        offset   query     int     false  "Offset results"
// @Success      200      {array}   application.StoredAlertResponse
// @Failure      503      {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /alerts [get]
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logger := getLogger(r)

	req := api.ListAlertsRequest{}

	if service := r.URL.Query().Get("service"); service != "" {
		req.Service = &service
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			req.Offset = offset
		}
	}

	alerts, err := h.service.ListAlerts(r.Context(), req)
	if errors.Is(err, api.ErrAuditDisabled) {
		respondJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		logger.Error("Failed to list alerts", "err", err, "filters", req)
		respondJSONError(w, http.StatusInternalServerError, "Failed to list alerts: "+err.Error())
		return
	}

	logger.Debug("Listed alerts", "count", len(alerts))
	respondJSON(w, http.StatusOK, alerts)
}

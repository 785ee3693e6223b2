package handlers

import (
	"errors"
	"net/http"
	"strconv"

	api "kestrel-v0/internal/api/application"
)

// RunHandler handles queries over recorded monitoring passes
type RunHandler struct {
	service *api.AuditService
}

// NewRunHandler creates a new run handler
func NewRunHandler(service *api.AuditService) *RunHandler {
	return &RunHandler{
		service: service,
	}
}

// ListRuns handles GET /api/v1/runs
// @Summary      List monitoring passes
// @Description  Get recorded monitoring passes, newest first
// @Tags         runs
// @Produce      json
// @Param        limit   query     int  false  "Limit results"
// @Param        offset  query     int  false  "Offset results"
// @Success      200     {array}   application.RunResponse
// @Failure      503     {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /runs [get]
func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logger := getLogger(r)

	req := api.ListRunsRequest{}

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

	runs, err := h.service.ListRuns(r.Context(), req)
	if errors.Is(err, api.ErrAuditDisabled) {
		respondJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		logger.Error("Failed to list runs", "err", err, "filters", req)
		respondJSONError(w, http.StatusInternalServerError, "Failed to list runs: "+err.Error())
		return
	}

	logger.Debug("Listed runs", "count", len(runs))
	respondJSON(w, http.StatusOK, runs)
}

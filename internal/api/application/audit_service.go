package application

import (
	"context"
	"errors"

	"kestrel-v0/internal/heartbeat/domain"
)

// ErrAuditDisabled indicates no audit store is configured
var ErrAuditDisabled = errors.New("audit store not configured")

// AuditService exposes recorded passes and alerts to the API layer
type AuditService struct {
	repo domain.Repository
}

// NewAuditService creates a new audit service. repo may be nil when the
// audit store is disabled.
func NewAuditService(repo domain.Repository) *AuditService {
	return &AuditService{
		repo: repo,
	}
}

// ListRuns returns recorded monitoring passes
func (s *AuditService) ListRuns(ctx context.Context, req ListRunsRequest) ([]RunResponse, error) {
	if s.repo == nil {
		return nil, ErrAuditDisabled
	}

	runs, err := s.repo.ListRuns(ctx, domain.RunFilters{
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]RunResponse, len(runs))
	for i, run := range runs {
		responses[i] = RunResponse{
			ID:              run.ID,
			Source:          run.Source,
			StartedAt:       run.StartedAt.UTC().Format(domain.TimeLayout),
			TotalRecords:    run.TotalRecords,
			ValidEvents:     run.ValidEvents,
			RejectedRecords: run.RejectedRecords,
			AlertCount:      run.AlertCount,
		}
	}

	return responses, nil
}

// ListAlerts returns recorded alerts
func (s *AuditService) ListAlerts(ctx context.Context, req ListAlertsRequest) ([]StoredAlertResponse, error) {
	if s.repo == nil {
		return nil, ErrAuditDisabled
	}

	alerts, err := s.repo.ListAlerts(ctx, domain.AlertFilters{
		Service: req.Service,
		Limit:   req.Limit,
		Offset:  req.Offset,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]StoredAlertResponse, len(alerts))
	for i, alert := range alerts {
		responses[i] = StoredAlertResponse{
			RunID:   alert.RunID,
			Service: alert.Service,
			AlertAt: alert.FormatAlertAt(),
		}
	}

	return responses, nil
}

package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kestrel-v0/internal/heartbeat/domain"
	sharedlogger "kestrel-v0/internal/shared/logger"
)

// PassResult summarizes one monitoring pass
type PassResult struct {
	RunID           string
	Alerts          []domain.Alert
	TotalRecords    int
	ValidEvents     int
	RejectedRecords int
}

// Service orchestrates a monitoring pass: ingest raw records, run the
// detector, record the outcome in the audit store when one is configured.
type Service struct {
	logger   sharedlogger.Logger
	detector *domain.Detector
	ingester *Ingester
	repo     domain.Repository
}

// NewService creates a new monitoring service. repo may be nil when the
// audit store is disabled.
func NewService(logger sharedlogger.Logger, detector *domain.Detector, repo domain.Repository) *Service {
	return &Service{
		logger:   logger,
		detector: detector,
		ingester: NewIngester(logger),
		repo:     repo,
	}
}

// Detector returns the configured detector
func (s *Service) Detector() *domain.Detector {
	return s.detector
}

// MonitorFile loads events from a JSON file and runs one pass. Data-quality
// problems at the source (missing file, top-level malformed document)
// degrade to an empty batch with a warning rather than an error.
func (s *Service) MonitorFile(ctx context.Context, path string) *PassResult {
	records, err := s.ingester.LoadFile(path)
	if err != nil {
		s.logger.Warn("event source yielded no records", "path", path, "err", err)
		records = nil
	}
	return s.MonitorRecords(ctx, path, records)
}

// MonitorBatch runs one pass over a raw JSON document
func (s *Service) MonitorBatch(ctx context.Context, source string, data []byte) (*PassResult, error) {
	records, err := s.ingester.DecodeBatch(data)
	if err != nil {
		return nil, err
	}
	return s.MonitorRecords(ctx, source, records), nil
}

// MonitorRecords validates raw records, runs the detector over the valid
// events and records the pass.
func (s *Service) MonitorRecords(ctx context.Context, source string, records []any) *PassResult {
	startedAt := time.Now().UTC()

	ingest := s.ingester.Ingest(records)
	s.logger.Info("ingested events",
		"source", source,
		"total", ingest.Total,
		"valid", len(ingest.Events),
		"rejected", ingest.Rejected,
	)

	alerts := s.detector.Monitor(ingest.Events)
	if len(alerts) > 0 {
		s.logger.Info("alerts triggered", "count", len(alerts))
	}

	result := &PassResult{
		RunID:           uuid.NewString(),
		Alerts:          alerts,
		TotalRecords:    ingest.Total,
		ValidEvents:     len(ingest.Events),
		RejectedRecords: ingest.Rejected,
	}

	s.recordPass(ctx, startedAt, source, result)

	return result
}

// recordPass writes the pass to the audit store. Audit failures are logged
// and never fail the pass itself.
func (s *Service) recordPass(ctx context.Context, startedAt time.Time, source string, result *PassResult) {
	if s.repo == nil {
		return
	}

	run := domain.Run{
		ID:              result.RunID,
		Source:          source,
		StartedAt:       startedAt,
		TotalRecords:    result.TotalRecords,
		ValidEvents:     result.ValidEvents,
		RejectedRecords: result.RejectedRecords,
		AlertCount:      len(result.Alerts),
	}

	if err := s.repo.InsertRun(ctx, run); err != nil {
		s.logger.Error("failed to record run", "run_id", run.ID, "err", err)
		return
	}

	for _, alert := range result.Alerts {
		if err := s.repo.InsertAlert(ctx, result.RunID, alert); err != nil {
			s.logger.Error("failed to record alert",
				"run_id", result.RunID,
				"service", alert.Service,
				"err", err,
			)
		}
	}
}

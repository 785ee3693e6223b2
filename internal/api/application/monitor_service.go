package application

import (
	"context"

	heartbeatapp "kestrel-v0/internal/heartbeat/application"
)

// MonitorService exposes one-shot monitoring passes to the API layer
type MonitorService struct {
	service *heartbeatapp.Service
}

// NewMonitorService creates a new monitor service
func NewMonitorService(service *heartbeatapp.Service) *MonitorService {
	return &MonitorService{
		service: service,
	}
}

// Monitor runs one pass over a raw JSON request body
func (s *MonitorService) Monitor(ctx context.Context, source string, body []byte) (*MonitorResponse, error) {
	result, err := s.service.MonitorBatch(ctx, source, body)
	if err != nil {
		return nil, err
	}

	alerts := make([]AlertResponse, len(result.Alerts))
	for i, alert := range result.Alerts {
		alerts[i] = AlertResponse{
			Service: alert.Service,
			AlertAt: alert.FormatAlertAt(),
		}
	}

	return &MonitorResponse{
		RunID:           result.RunID,
		Alerts:          alerts,
		TotalRecords:    result.TotalRecords,
		ValidEvents:     result.ValidEvents,
		RejectedRecords: result.RejectedRecords,
	}, nil
}

// Config returns the active detector configuration
func (s *MonitorService) Config() ConfigResponse {
	cfg := s.service.Detector().Config()
	return ConfigResponse{
		ExpectedIntervalSeconds: cfg.ExpectedIntervalSeconds,
		AllowedMisses:           cfg.AllowedMisses,
	}
}

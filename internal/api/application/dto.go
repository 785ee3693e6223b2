package application

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// AlertResponse represents an alert in API responses
type AlertResponse struct {
	Service string `json:"service"`
	AlertAt string `json:"alert_at"`
}

// MonitorResponse represents the outcome of one monitoring pass
type MonitorResponse struct {
	RunID           string          `json:"run_id"`
	Alerts          []AlertResponse `json:"alerts"`
	TotalRecords    int             `json:"total_records"`
	ValidEvents     int             `json:"valid_events"`
	RejectedRecords int             `json:"rejected_records"`
}

// ConfigResponse represents the active detector configuration
type ConfigResponse struct {
	ExpectedIntervalSeconds int `json:"expected_interval_seconds"`
	AllowedMisses           int `json:"allowed_misses"`
}

// RunResponse represents a recorded monitoring pass
type RunResponse struct {
	ID              string `json:"id"`
	Source          string `json:"source"`
	StartedAt       string `json:"started_at"`
	TotalRecords    int    `json:"total_records"`
	ValidEvents     int    `json:"valid_events"`
	RejectedRecords int    `json:"rejected_records"`
	AlertCount      int    `json:"alert_count"`
}

// StoredAlertResponse represents a recorded alert
type StoredAlertResponse struct {
	RunID   string `json:"run_id"`
	Service string `json:"service"`
	AlertAt string `json:"alert_at"`
}

// ListRunsRequest represents filters for listing runs
type ListRunsRequest struct {
	Limit  int
	Offset int
}

// ListAlertsRequest represents filters for listing stored alerts
type ListAlertsRequest struct {
	Service *string
	Limit   int
	Offset  int
}

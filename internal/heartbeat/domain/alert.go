package domain

import (
	"encoding/json"
	"time"
)

// Alert names a service and the nominal instant at which its consecutive
// miss threshold was crossed.
type Alert struct {
	Service string
	AlertAt time.Time
}

// NewAlert creates a new alert
func NewAlert(service string, alertAt time.Time) Alert {
	return Alert{
		Service: service,
		AlertAt: alertAt.UTC(),
	}
}

// FormatAlertAt returns the alert instant as ISO 8601 UTC, second precision.
func (a Alert) FormatAlertAt() string {
	return a.AlertAt.UTC().Format(TimeLayout)
}

func (a Alert) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Service string `json:"service"`
		AlertAt string `json:"alert_at"`
	}{
		Service: a.Service,
		AlertAt: a.FormatAlertAt(),
	})
}

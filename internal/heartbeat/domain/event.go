package domain

import "time"

// TimeLayout renders instants as ISO 8601 UTC with second precision.
const TimeLayout = "2006-01-02T15:04:05Z"

// HeartbeatEvent represents a validated liveness signal from a named service
type HeartbeatEvent struct {
	Service   string
	Timestamp time.Time
}

// NewHeartbeatEvent creates a new heartbeat event
func NewHeartbeatEvent(service string, timestamp time.Time) HeartbeatEvent {
	return HeartbeatEvent{
		Service:   service,
		Timestamp: timestamp,
	}
}

// ParseTimestamp parses an RFC 3339 timestamp carrying either a trailing 'Z'
// or an explicit numeric UTC offset, normalized to UTC. Offset-free strings
// and well-formed nonsense (month 13, minute 61) fail.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

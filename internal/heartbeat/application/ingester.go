package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"kestrel-v0/internal/heartbeat/domain"
	sharedlogger "kestrel-v0/internal/shared/logger"
)

var (
	// ErrSourceUnreadable indicates the event source could not be read
	ErrSourceUnreadable = errors.New("event source unreadable")
	// ErrSourceMalformed indicates the event source is not a record or an array of records
	ErrSourceMalformed = errors.New("event source malformed")
)

// IngestResult summarizes one validation pass over a raw batch
type IngestResult struct {
	Events   []domain.HeartbeatEvent
	Total    int
	Rejected int
}

// Ingester converts raw JSON-like values into validated heartbeat events.
// Unvalidated shapes never reach the detector; every rejection is reported
// with its index and raw value, and processing continues.
type Ingester struct {
	logger sharedlogger.Logger
}

// NewIngester creates a new ingester
func NewIngester(logger sharedlogger.Logger) *Ingester {
	return &Ingester{
		logger: logger,
	}
}

// ValidateRecord checks a single raw record. A record is valid iff it is an
// object with a non-empty string 'service' (after trimming) and a parseable
// 'timestamp'. The stored service value keeps its surrounding whitespace;
// trimming applies to the emptiness check only.
func (ing *Ingester) ValidateRecord(raw any) (domain.HeartbeatEvent, map[string]string) {
	problems := make(map[string]string, 2)

	record, ok := raw.(map[string]any)
	if !ok {
		problems["record"] = "record is not an object"
		return domain.HeartbeatEvent{}, problems
	}

	var service string
	rawService, exists := record["service"]
	if !exists {
		problems["service"] = "'service' is required"
	} else if service, ok = rawService.(string); !ok {
		problems["service"] = "'service' must be a string"
	} else if strings.TrimSpace(service) == "" {
		problems["service"] = "'service' cannot be empty"
	}

	var timestamp string
	rawTimestamp, exists := record["timestamp"]
	if !exists {
		problems["timestamp"] = "'timestamp' is required"
	} else if timestamp, ok = rawTimestamp.(string); !ok {
		problems["timestamp"] = "'timestamp' must be a string"
	}

	if len(problems) > 0 {
		return domain.HeartbeatEvent{}, problems
	}

	ts, err := domain.ParseTimestamp(timestamp)
	if err != nil {
		problems["timestamp"] = fmt.Sprintf("unparseable timestamp: %v", err)
		return domain.HeartbeatEvent{}, problems
	}

	return domain.NewHeartbeatEvent(service, ts), nil
}

// Ingest validates a batch of raw records, skipping malformed ones with a
// warning carrying the offending index and value.
func (ing *Ingester) Ingest(records []any) IngestResult {
	events := make([]domain.HeartbeatEvent, 0, len(records))
	rejected := 0

	for i, raw := range records {
		event, problems := ing.ValidateRecord(raw)
		if len(problems) > 0 {
			rejected++
			ing.logger.Warn("skipping malformed event",
				"index", i,
				"record", fmt.Sprintf("%v", raw),
				"problems", problems,
			)
			continue
		}
		events = append(events, event)
	}

	return IngestResult{
		Events:   events,
		Total:    len(records),
		Rejected: rejected,
	}
}

// DecodeBatch decodes a top-level JSON document into raw records. A single
// object is treated as a one-record batch; anything other than an object or
// an array fails with ErrSourceMalformed.
func (ing *Ingester) DecodeBatch(data []byte) ([]any, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceMalformed, err)
	}

	switch v := decoded.(type) {
	case map[string]any:
		return []any{v}, nil
	case []any:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: expected an object or an array of records", ErrSourceMalformed)
	}
}

// LoadFile reads and decodes a JSON event file
func (ing *Ingester) LoadFile(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return ing.DecodeBatch(data)
}

package domain

import (
	"context"
	"math"
	"sort"
	"time"

	"kestrel-v0/internal/shared/validation"
)

// lateToleranceFactor is the fraction of an expected interval a gap must be
// late before it counts as missed heartbeats. Keeps minor clock and network
// jitter around the boundary from raising false positives.
const lateToleranceFactor = 0.9

// MonitorConfig represents the configuration for a detection pass
type MonitorConfig struct {
	ExpectedIntervalSeconds int `json:"expected_interval_seconds"`
	AllowedMisses           int `json:"allowed_misses"`
}

func (c *MonitorConfig) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string, 2)

	if c.ExpectedIntervalSeconds <= 0 {
		problems["expected_interval_seconds"] = "expected interval should be more than zero"
	}

	if c.AllowedMisses <= 0 {
		problems["allowed_misses"] = "allowed misses should be more than zero"
	}

	return problems
}

// Interval returns the expected spacing between heartbeats as a duration.
func (c *MonitorConfig) Interval() time.Duration {
	return time.Duration(c.ExpectedIntervalSeconds) * time.Second
}

// Detector detects services that missed too many consecutive heartbeats.
// It is a plain value: Monitor is a pure function of its input and the
// immutable configuration, with no state retained across calls.
type Detector struct {
	cfg MonitorConfig
}

// NewDetector creates a detector, failing with a validation error when the
// interval or the miss threshold is not positive.
func NewDetector(expectedIntervalSeconds, allowedMisses int) (*Detector, error) {
	cfg := MonitorConfig{
		ExpectedIntervalSeconds: expectedIntervalSeconds,
		AllowedMisses:           allowedMisses,
	}

	problems := cfg.Valid(context.TODO())
	if len(problems) > 0 {
		return nil, validation.NewValidationError(problems, "detector")
	}

	return &Detector{cfg: cfg}, nil
}

// Config returns the detector configuration
func (d *Detector) Config() MonitorConfig {
	return d.cfg
}

// Monitor runs one detection pass over a batch of validated events and
// returns at most one alert per service, in first-seen service order.
func (d *Detector) Monitor(events []HeartbeatEvent) []Alert {
	groups, order := groupAndSort(events)

	alerts := make([]Alert, 0)
	for _, service := range order {
		alert, ok := d.scanGaps(groups[service])
		if ok {
			alerts = append(alerts, alert)
		}
	}

	return alerts
}

// groupAndSort partitions events by exact service identifier and orders each
// partition by timestamp. The sort is stable, so events with equal timestamps
// keep their input order. The returned slice preserves first-seen service
// order for deterministic output.
func groupAndSort(events []HeartbeatEvent) (map[string][]HeartbeatEvent, []string) {
	groups := make(map[string][]HeartbeatEvent)
	order := make([]string, 0)

	for _, event := range events {
		if _, exists := groups[event.Service]; !exists {
			order = append(order, event.Service)
		}
		groups[event.Service] = append(groups[event.Service], event)
	}

	for _, serviceEvents := range groups {
		sort.SliceStable(serviceEvents, func(i, j int) bool {
			return serviceEvents[i].Timestamp.Before(serviceEvents[j].Timestamp)
		})
	}

	return groups, order
}

// scanGaps walks one service's chronologically sorted events pairwise,
// accumulating inferred missed intervals into a consecutive-miss count.
// Any on-time heartbeat resets the count. The first gap that pushes the
// count to the threshold yields an alert at the nominal instant of the last
// tolerated heartbeat, and scanning stops for that service.
//
// Missed intervals are rounded half away from zero (math.Round); no
// documented scenario exercises a .5 tie.
func (d *Detector) scanGaps(events []HeartbeatEvent) (Alert, bool) {
	if len(events) < 2 {
		return Alert{}, false
	}

	service := events[0].Service
	interval := d.cfg.Interval()
	intervalSeconds := float64(d.cfg.ExpectedIntervalSeconds)

	consecutiveMisses := 0
	for i := 0; i < len(events)-1; i++ {
		expectedNext := events[i].Timestamp.Add(interval)
		deviation := events[i+1].Timestamp.Sub(expectedNext).Seconds()

		if deviation >= intervalSeconds*lateToleranceFactor {
			intervalsMissed := int(math.Round(deviation / intervalSeconds))
			consecutiveMisses += intervalsMissed

			if consecutiveMisses >= d.cfg.AllowedMisses {
				alertAt := expectedNext.Add(time.Duration(d.cfg.AllowedMisses-1) * interval)
				return NewAlert(service, alertAt), true
			}
		} else {
			// On-time arrival fully resets the streak
			consecutiveMisses = 0
		}
	}

	return Alert{}, false
}

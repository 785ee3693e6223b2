package db

import (
	"time"
)

type Alert struct {
	ID      int64
	RunID   string
	Service string
	AlertAt time.Time
}

type Run struct {
	ID              string
	Source          string
	StartedAt       time.Time
	TotalRecords    int64
	ValidEvents     int64
	RejectedRecords int64
	AlertCount      int64
}

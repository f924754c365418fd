// Package store persists measurement runs so later invocations can compare
// against them.
package store

import "time"

// Run is one recorded measurement.
type Run struct {
	ID             int64     `json:"id"`
	Kind           string    `json:"kind"`  // "fill", "repeat:whole-file", ...
	Label          string    `json:"label"` // free-form, usually the input path
	Bytes          int64     `json:"bytes"`
	ElapsedNs      int64     `json:"elapsed_ns"`
	ThroughputMBps float64   `json:"throughput_mbps"`
	PageFaults     int64     `json:"page_faults"`
	Trials         int64     `json:"trials"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store is the persistence interface for measurement history.
type Store interface {
	Close() error
	SaveRun(run Run) (int64, error)
	ListRuns(kind string, limit int) ([]Run, error)
	LatestRun(kind string) (*Run, error)
}

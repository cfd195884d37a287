package evaluator

import "time"

// Status classifies the outcome of evaluating one environment.
type Status string

const (
	StatusKeep   Status = "keep"
	StatusRemove Status = "remove"
	StatusError  Status = "error"
)

// Criteria is the active set of removal thresholds. A nil MinSizeMB means
// no size criterion at all; zero would mean "at least 0 MB", which always
// passes, and the two must stay distinguishable.
type Criteria struct {
	MinAgeDays int
	MinSizeMB  *int64
	UnusedOnly bool
}

// Record is the evaluated view of one environment. Records are built fresh
// from live filesystem state on every run and are never persisted or cached
// between runs.
type Record struct {
	Path         string
	Name         string
	LastAccessed time.Time
	LastModified time.Time
	Created      time.Time
	SizeBytes    int64
	AgeDays      float64
	IsActive     bool
	Status       Status
	Reason       string
}

package store

import "time"

// Run summarizes one clean execution.
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Scanned    int
	Kept       int
	Removed    int
	Errors     int
	BytesFreed int64
	DryRun     bool
}

// Removal records the outcome of deleting one environment during a run.
type Removal struct {
	ID        int64
	RunID     int64
	Path      string
	SizeBytes int64
	AgeDays   float64
	Reason    string
	Success   bool
}

// ActivityEvent records a filesystem event observed by the watcher under a
// known environment.
type ActivityEvent struct {
	ID         int64
	Path       string
	Op         string
	ObservedAt time.Time
}

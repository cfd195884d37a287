// Package evaluator turns a candidate environment path plus a criteria set
// into a scored record: keep, remove, or error, with a human-readable
// reason. Criteria are conjunctive for removal — every configured check
// must pass, so any single failing check keeps the environment. That is the
// conservative default: when in doubt, don't delete.
package evaluator

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/blackwell-systems/uvprune/internal/venv"
)

const mib = 1024 * 1024

// largeEnvBytes is the size above which the removal reason also mentions
// the reclaimed space.
const largeEnvBytes = 100 * mib

// Evaluator scores candidate environments against removal criteria.
type Evaluator struct {
	profile venv.Profile
	log     *slog.Logger
	now     func() time.Time
}

// New creates an Evaluator using the given platform profile and logger.
func New(profile venv.Profile, log *slog.Logger) *Evaluator {
	return &Evaluator{
		profile: profile,
		log:     log,
		now:     time.Now,
	}
}

// Evaluate collects metadata for the environment at path and applies the
// criteria. Metadata collection failure yields an error-status record with
// the failure description; it never aborts the caller's loop.
func (e *Evaluator) Evaluate(path string, c Criteria) *Record {
	rec := &Record{
		Path: path,
		Name: filepath.Base(path),
	}

	times, err := venv.Stat(path)
	if err != nil {
		e.log.Warn("evaluation failed", "path", path, "error", err)
		rec.Status = StatusError
		rec.Reason = fmt.Sprintf("evaluation error: %v", err)
		return rec
	}

	now := e.now()
	rec.LastAccessed = times.Accessed
	rec.LastModified = times.Modified
	rec.Created = times.Created
	rec.SizeBytes = venv.DirSize(path)
	rec.AgeDays = now.Sub(times.Accessed).Hours() / 24
	rec.IsActive = venv.IsActive(path, e.profile)

	Apply(rec, c)

	e.log.Debug("evaluated environment",
		"path", path,
		"age_days", fmt.Sprintf("%.1f", rec.AgeDays),
		"size_bytes", rec.SizeBytes,
		"active", rec.IsActive,
		"status", string(rec.Status),
	)
	return rec
}

// Apply re-derives status and reason from a record's already-collected
// metadata. It is pure: no filesystem access, so criteria can be re-applied
// (after auto-adjustment) without re-probing.
func Apply(rec *Record, c Criteria) {
	if rec.Status == StatusError {
		return
	}

	var reasons []string

	if rec.AgeDays < float64(c.MinAgeDays) {
		reasons = append(reasons,
			fmt.Sprintf("age below threshold (%.1f < %d days)", rec.AgeDays, c.MinAgeDays))
	}

	if c.MinSizeMB != nil && rec.SizeBytes < *c.MinSizeMB*mib {
		reasons = append(reasons,
			fmt.Sprintf("size below threshold (%.1f < %d MB)",
				float64(rec.SizeBytes)/mib, *c.MinSizeMB))
	}

	if c.UnusedOnly && rec.IsActive {
		reasons = append(reasons, "venv appears to be active")
	}

	if len(reasons) > 0 {
		rec.Status = StatusKeep
		rec.Reason = strings.Join(reasons, "; ")
		return
	}

	rec.Status = StatusRemove
	rec.Reason = fmt.Sprintf("unused for %.1f days", rec.AgeDays)
	if rec.SizeBytes > largeEnvBytes {
		rec.Reason += fmt.Sprintf(", size: %.1f MB", float64(rec.SizeBytes)/mib)
	}
}

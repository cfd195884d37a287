package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/uvprune/internal/evaluator"
	"github.com/blackwell-systems/uvprune/internal/rules"
	"github.com/blackwell-systems/uvprune/internal/store"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1023, "1023 B"},
		{1500, "1.5 KB"},
		{1500000, "1.4 MB"},
		{1500000000, "1.40 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), "FormatSize(%d)", tt.bytes)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	assert.Equal(t, "never", FormatRelativeTime(time.Time{}))
	assert.Equal(t, "just now", FormatRelativeTime(time.Now()))
	assert.Equal(t, "3h ago", FormatRelativeTime(time.Now().Add(-3*time.Hour)))
	assert.Equal(t, "5d ago", FormatRelativeTime(time.Now().Add(-5*24*time.Hour)))
}

func TestRenderEnvTable(t *testing.T) {
	records := []*evaluator.Record{
		{
			Name:         "api-env",
			SizeBytes:    1500000,
			AgeDays:      42.3,
			LastAccessed: time.Now().Add(-42 * 24 * time.Hour),
			Status:       evaluator.StatusRemove,
			Reason:       "unused for 42.3 days",
		},
		{
			Name:   "broken-env",
			Status: evaluator.StatusError,
			Reason: "evaluation error: permission denied",
		},
	}

	out := RenderEnvTable(records)

	assert.Contains(t, out, "api-env")
	assert.Contains(t, out, "1.4 MB")
	assert.Contains(t, out, "42.3d")
	assert.Contains(t, out, "unused for 42.3 days")
	// Error records have no metadata to show.
	assert.Contains(t, out, "broken-env")
	assert.Contains(t, out, "permission denied")
}

func TestRenderEnvTable_Empty(t *testing.T) {
	assert.Equal(t, "No environments found.\n", RenderEnvTable(nil))
}

func TestRenderSummary(t *testing.T) {
	s := rules.Summary{
		Total:         5,
		ToRemove:      2,
		ToKeep:        3,
		BytesToRemove: 1500,
		Oldest:        &evaluator.Record{Name: "ancient", Created: time.Now().Add(-100 * 24 * time.Hour)},
		Newest:        &evaluator.Record{Name: "fresh", Created: time.Now()},
	}

	out := RenderSummary(s)

	assert.Contains(t, out, "Environments found: 5")
	assert.Contains(t, out, "To remove: 2")
	assert.Contains(t, out, "Reclaimable: 1.5 KB")
	assert.Contains(t, out, "ancient")
	assert.Contains(t, out, "fresh")
	assert.NotContains(t, out, "Errors:")
}

func TestRenderRunTable(t *testing.T) {
	runs := []*store.Run{
		{
			ID:         3,
			StartedAt:  time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
			Scanned:    12,
			Removed:    4,
			Kept:       8,
			BytesFreed: 1500000000,
			DryRun:     true,
		},
	}

	out := RenderRunTable(runs)

	assert.Contains(t, out, "2026-08-20 10:30:00")
	assert.Contains(t, out, "1.40 GB")
	assert.Contains(t, out, "dry-run")
}

func TestRenderRemovalTable(t *testing.T) {
	removals := []*store.Removal{
		{Path: "/home/u/projects/x/.venv", SizeBytes: 500, Success: true, Reason: "unused for 40.0 days"},
		{Path: "/home/u/projects/y/.venv", Success: false, Reason: "unused for 90.0 days"},
	}

	out := RenderRemovalTable(removals)

	assert.Contains(t, out, "/home/u/projects/x/.venv")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "failed")
}

func TestProgressBar_NonTTYEmitsOnlyCompletion(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(3, "Removing environments")
	p.SetWriter(&buf)

	p.Increment()
	p.Increment()
	assert.Empty(t, buf.String())

	p.Increment()
	p.Finish()

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "100%"))
	assert.Contains(t, out, "Removing environments")
}

func TestProgressBar_IncrementNeverExceedsTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(1, "x")
	p.SetWriter(&buf)

	p.Increment()
	p.Increment()
	p.Finish()

	assert.Equal(t, 1, strings.Count(buf.String(), "100%"))
}

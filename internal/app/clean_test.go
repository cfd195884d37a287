package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/uvprune/internal/rules"
	"github.com/blackwell-systems/uvprune/internal/store"
)

func withTestDB(t *testing.T, path string) {
	t.Helper()
	old := dbPath
	dbPath = path
	t.Cleanup(func() { dbPath = old })
}

func TestPersistRun_RecordsHistory(t *testing.T) {
	withTestDB(t, filepath.Join(t.TempDir(), "history.db"))

	summary := rules.Summary{Total: 3, ToKeep: 1, Errors: 0, BytesToRemove: 4096}
	removals := []*store.Removal{
		{Path: "/envs/a", SizeBytes: 4096, AgeDays: 61.2, Reason: "unused for 61.2 days", Success: true},
		{Path: "/envs/b", Success: false},
	}
	require.NoError(t, persistRun(summary, removals, false))

	st, err := store.New(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Scanned)
	assert.Equal(t, 1, runs[0].Removed)
	assert.Equal(t, int64(4096), runs[0].BytesFreed)
	assert.False(t, runs[0].DryRun)
	assert.False(t, runs[0].FinishedAt.Before(runs[0].StartedAt))
	assert.WithinDuration(t, time.Now(), runs[0].FinishedAt, time.Minute)

	recorded, err := st.ListRemovals(runs[0].ID)
	require.NoError(t, err)
	require.Len(t, recorded, 2)
	assert.Equal(t, "/envs/a", recorded[0].Path)
	assert.True(t, recorded[0].Success)
	assert.False(t, recorded[1].Success)
}

func TestRecordRun_StoreFailureIsNotFatal(t *testing.T) {
	// A directory is not openable as a database file; recording must
	// swallow the failure instead of surfacing it to the command.
	withTestDB(t, t.TempDir())

	recordRun(discardLogger(), rules.Summary{Total: 1}, nil, true)
}

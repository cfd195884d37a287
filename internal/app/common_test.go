package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/uvprune/internal/config"
	"github.com/blackwell-systems/uvprune/internal/evaluator"
	"github.com/blackwell-systems/uvprune/internal/rules"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newCriteriaCmd builds a throwaway command with the criteria flags, so
// tests can toggle "explicitly set" without touching the real commands'
// global flag state.
func newCriteriaCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("min-age-days", rules.DefaultMinAgeDays, "")
	cmd.Flags().Int64("min-size-mb", 0, "")
	cmd.Flags().Bool("unused-only", true, "")
	return cmd
}

func makeEnv(t *testing.T, path string) {
	t.Helper()
	for _, sub := range []string{"bin", "lib", "include"} {
		require.NoError(t, os.MkdirAll(filepath.Join(path, sub), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(path, "pyvenv.cfg"), []byte("uv = 0.4.0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(path, "bin", "python"), []byte("#!/bin/sh\n"), 0o755))
}

func TestCriteriaOptions_Defaults(t *testing.T) {
	cmd := newCriteriaCmd()
	opts := criteriaOptions(cmd, &config.Config{}, rules.DefaultMinAgeDays, 0, true)

	c := rules.BuildCriteria(opts)
	assert.Equal(t, rules.DefaultMinAgeDays, c.MinAgeDays)
	assert.Nil(t, c.MinSizeMB)
	assert.True(t, c.UnusedOnly)
}

func TestCriteriaOptions_ConfigOverridesDefaults(t *testing.T) {
	age := 90
	size := int64(250)
	unused := false
	cfg := &config.Config{MinAgeDays: &age, MinSizeMB: &size, UnusedOnly: &unused}

	c := rules.BuildCriteria(criteriaOptions(newCriteriaCmd(), cfg, rules.DefaultMinAgeDays, 0, true))
	assert.Equal(t, 90, c.MinAgeDays)
	require.NotNil(t, c.MinSizeMB)
	assert.Equal(t, int64(250), *c.MinSizeMB)
	assert.False(t, c.UnusedOnly)
}

func TestCriteriaOptions_FlagOverridesConfig(t *testing.T) {
	age := 90
	cfg := &config.Config{MinAgeDays: &age}

	cmd := newCriteriaCmd()
	require.NoError(t, cmd.Flags().Set("min-age-days", "14"))
	require.NoError(t, cmd.Flags().Set("min-size-mb", "500"))

	c := rules.BuildCriteria(criteriaOptions(cmd, cfg, 14, 500, true))
	assert.Equal(t, 14, c.MinAgeDays)
	require.NotNil(t, c.MinSizeMB)
	assert.Equal(t, int64(500), *c.MinSizeMB)
}

func TestResolveRoots_FlagsWinOverConfig(t *testing.T) {
	flagDir := t.TempDir()
	cfgDir := t.TempDir()

	roots, err := resolveRoots([]string{flagDir}, &config.Config{Roots: []string{cfgDir}})
	require.NoError(t, err)
	assert.Equal(t, []string{flagDir}, roots)
}

func TestResolveRoots_DropsMissingDirs(t *testing.T) {
	existing := t.TempDir()
	missing := filepath.Join(existing, "does-not-exist")

	roots, err := resolveRoots([]string{missing, existing}, &config.Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{existing}, roots)
}

func TestResolveRoots_NoValidRoots(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := resolveRoots(nil, &config.Config{Roots: []string{missing}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid search directories")
}

func TestEvaluatePipeline_FindsAndDedupes(t *testing.T) {
	root := t.TempDir()
	makeEnv(t, filepath.Join(root, "proj-a", ".venv"))
	makeEnv(t, filepath.Join(root, "proj-b", ".venv"))

	// The same root twice must not double-count environments.
	records := evaluatePipeline(pipelineOpts{
		roots:    []string{root, root},
		maxDepth: 5,
		criteria: evaluator.Criteria{MinAgeDays: rules.DefaultMinAgeDays, UnusedOnly: true},
	}, discardLogger())

	assert.Len(t, records, 2)
	for _, rec := range records {
		assert.NotEqual(t, evaluator.StatusError, rec.Status)
	}
}

func TestEvaluatePipeline_AppliesPatternFilter(t *testing.T) {
	root := t.TempDir()
	makeEnv(t, filepath.Join(root, "keep", ".venv"))
	makeEnv(t, filepath.Join(root, "skipme", ".venv"))

	records := evaluatePipeline(pipelineOpts{
		roots:    []string{root},
		maxDepth: 5,
		patterns: []string{filepath.Join(root, "skipme", "*")},
		criteria: evaluator.Criteria{MinAgeDays: rules.DefaultMinAgeDays, UnusedOnly: true},
	}, discardLogger())

	require.Len(t, records, 1)
	assert.Contains(t, records[0].Path, "keep")
}

func TestDescribeCriteria(t *testing.T) {
	size := int64(100)
	attrs := describeCriteria(evaluator.Criteria{MinAgeDays: 30, MinSizeMB: &size, UnusedOnly: true})
	assert.Equal(t, []any{"min_age_days", 30, "unused_only", true, "min_size_mb", int64(100)}, attrs)
}

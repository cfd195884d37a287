package app

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvprune/internal/config"
	"github.com/blackwell-systems/uvprune/internal/evaluator"
	"github.com/blackwell-systems/uvprune/internal/rules"
	"github.com/blackwell-systems/uvprune/internal/scanner"
	"github.com/blackwell-systems/uvprune/internal/venv"
)

// newLogger builds the logger injected into scanner, evaluator and watcher,
// honoring the global --verbose and --json flags. Logs go to stderr so
// tables and prompts on stdout stay parseable.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if jsonLogs {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// loadConfig reads the config file named by --config, or the default
// location. A missing file is fine; a broken one is not.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// resolveRoots picks the search roots: explicit --dir flags win, then the
// config file, then the platform defaults. Roots that don't exist are
// dropped; no roots at all is fatal (there is nothing to scan).
func resolveRoots(flagDirs []string, cfg *config.Config) ([]string, error) {
	candidates := flagDirs
	if len(candidates) == 0 {
		candidates = cfg.Roots
	}
	if len(candidates) == 0 {
		candidates = venv.DefaultDirs()
	}

	var roots []string
	for _, dir := range candidates {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			roots = append(roots, dir)
		}
	}

	if len(roots) == 0 {
		return nil, fmt.Errorf("no valid search directories found (use --dir or configure roots)")
	}
	return roots, nil
}

// criteriaOptions folds flags and config into rules.Options, respecting
// "explicitly set" over "configured" over "default".
func criteriaOptions(cmd *cobra.Command, cfg *config.Config, minAge int, minSize int64, unusedOnly bool) rules.Options {
	opts := rules.Options{
		MinAgeDays: cfg.MinAgeDays,
		MinSizeMB:  cfg.MinSizeMB,
		UnusedOnly: cfg.UnusedOnly,
	}

	if cmd.Flags().Changed("min-age-days") {
		opts.MinAgeDays = &minAge
	}
	if cmd.Flags().Changed("min-size-mb") {
		opts.MinSizeMB = &minSize
	}
	if cmd.Flags().Changed("unused-only") {
		opts.UnusedOnly = &unusedOnly
	}

	return opts
}

// confirmRemoval prompts for confirmation on a TTY. In a non-interactive
// session the prompt can never be answered, so the caller must have passed
// --yes; anything else is an error rather than a hang or a silent removal.
func confirmRemoval(count int) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, fmt.Errorf("confirmation required: non-interactive session needs --yes to remove environments")
	}

	fmt.Printf("\nRemove %d environments? [y/N]: ", count)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, nil
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// pipelineOpts are the resolved inputs for one scan-and-evaluate pass.
type pipelineOpts struct {
	roots       []string
	maxDepth    int
	excludeDirs []string
	patterns    []string
	criteria    evaluator.Criteria
}

// evaluatePipeline discovers environments under the roots and evaluates
// each against the criteria. Roots may nest, so results are deduplicated
// across roots as well as within them.
func evaluatePipeline(opts pipelineOpts, log *slog.Logger) []*evaluator.Record {
	profile := venv.DefaultProfile()
	sc := scanner.New(profile, log)

	seen := make(map[string]bool)
	var paths []string
	for _, root := range opts.roots {
		log.Info("scanning", "dir", root, "max_depth", opts.maxDepth)
		found := sc.Find(root, opts.maxDepth, opts.excludeDirs)
		log.Info("found environments", "dir", root, "count", len(found))
		for _, p := range found {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}

	paths = venv.FilterPaths(paths, opts.patterns)

	ev := evaluator.New(profile, log)
	records := make([]*evaluator.Record, 0, len(paths))
	for _, p := range paths {
		records = append(records, ev.Evaluate(p, opts.criteria))
	}
	return records
}

// describeCriteria renders the active criteria for log output.
func describeCriteria(c evaluator.Criteria) []any {
	attrs := []any{
		"min_age_days", c.MinAgeDays,
		"unused_only", c.UnusedOnly,
	}
	if c.MinSizeMB != nil {
		attrs = append(attrs, "min_size_mb", *c.MinSizeMB)
	}
	return attrs
}

package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvprune/internal/config"
	"github.com/blackwell-systems/uvprune/internal/evaluator"
	"github.com/blackwell-systems/uvprune/internal/output"
	"github.com/blackwell-systems/uvprune/internal/rules"
	"github.com/blackwell-systems/uvprune/internal/store"
	"github.com/blackwell-systems/uvprune/internal/venv"
)

var (
	cleanDirs        []string
	cleanExclude     []string
	cleanExcludeDirs []string
	cleanMaxDepth    int
	cleanNoRecursive bool
	cleanMinAgeDays  int
	cleanMinSizeMB   int64
	cleanUnusedOnly  bool
	cleanSortBy      string
	cleanLimit       int
	cleanTarget      int
	cleanDryRun      bool
	cleanYes         bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Find and remove unused virtual environments",
	Long: `Scan the search roots for uv virtual environments, score each against the
removal criteria, and remove the ones that fail every reason to keep them.

Criteria are conjunctive: an environment is removed only when it is old
enough, big enough (if --min-size-mb is set), and not recently active (with
--unused-only, the default). Any single unmet criterion keeps it.

The command is a dry run unless you confirm at the prompt or pass --yes.
Non-interactive sessions without --yes fail rather than prompt.

--target N ignores --min-age-days and instead back-solves the age threshold
that would remove approximately N environments.`,
	Example: `  # Preview what would be removed (dry run)
  uvprune clean

  # Remove environments unused for 60+ days
  uvprune clean --min-age-days 60 --yes

  # Remove about 5 environments, oldest first
  uvprune clean --target 5

  # Only bother with environments over 500 MB
  uvprune clean --min-size-mb 500 --limit 10`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringArrayVar(&cleanDirs, "dir", nil, "directory to scan (repeatable; default: standard uv locations)")
	cleanCmd.Flags().StringArrayVar(&cleanExclude, "exclude", nil, "exclude paths matching this glob pattern (repeatable)")
	cleanCmd.Flags().StringArrayVar(&cleanExcludeDirs, "exclude-dir", nil, "directory names to skip while scanning (repeatable)")
	cleanCmd.Flags().IntVar(&cleanMaxDepth, "max-depth", 10, "maximum recursion depth when scanning")
	cleanCmd.Flags().BoolVar(&cleanNoRecursive, "no-recursive", false, "disable recursive scanning of subdirectories")
	cleanCmd.Flags().IntVar(&cleanMinAgeDays, "min-age-days", rules.DefaultMinAgeDays, "minimum age in days to consider a venv unused")
	cleanCmd.Flags().Int64Var(&cleanMinSizeMB, "min-size-mb", 0, "minimum size in MB to consider removing a venv")
	cleanCmd.Flags().BoolVar(&cleanUnusedOnly, "unused-only", true, "only remove venvs that appear unused")
	cleanCmd.Flags().StringVar(&cleanSortBy, "sort-by", rules.SortByAge, "sort venvs by: age, size, name, accessed, modified, created")
	cleanCmd.Flags().IntVar(&cleanLimit, "limit", 0, "limit the number of venvs to remove")
	cleanCmd.Flags().IntVar(&cleanTarget, "target", 0, "auto-adjust the age threshold to remove about this many venvs")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "show what would be removed without removing")
	cleanCmd.Flags().BoolVar(&cleanYes, "yes", false, "apply changes without prompting")

	RootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	roots, err := resolveRoots(cleanDirs, cfg)
	if err != nil {
		return err
	}

	records, criteria := evaluateRoots(cmd, cfg, roots, log)
	if len(records) == 0 {
		fmt.Println("No environments found.")
		return nil
	}

	// --target replaces the configured age threshold with a solved one and
	// re-applies the criteria to the already-collected metadata.
	if cmd.Flags().Changed("target") {
		criteria = rules.AutoAdjust(records, cleanTarget)
		for _, rec := range records {
			evaluator.Apply(rec, criteria)
		}
		log.Info("auto-adjusted criteria", describeCriteria(criteria)...)
	}

	records = rules.Sort(records, cleanSortBy)
	summary := rules.Summarize(records)

	limit := -1
	if cmd.Flags().Changed("limit") {
		limit = cleanLimit
	}
	toRemove := rules.Prune(records, limit)

	if len(toRemove) == 0 {
		fmt.Printf("No environments to remove (%d found, %d kept).\n", summary.Total, summary.ToKeep)
		return nil
	}

	var planned int64
	for _, rec := range toRemove {
		planned += rec.SizeBytes
	}

	fmt.Printf("\nEnvironments to remove:\n\n")
	fmt.Print(output.RenderEnvTable(toRemove))
	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Environments: %d\n", len(toRemove))
	fmt.Printf("  Disk space to free: %s\n", output.FormatSize(planned))
	fmt.Println()

	if cleanDryRun {
		fmt.Println("Dry-run mode: no environments will be removed.")
		recordRun(log, summary, nil, true)
		return nil
	}

	if !cleanYes {
		ok, err := confirmRemoval(len(toRemove))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Removal cancelled.")
			return nil
		}
	}

	fmt.Printf("Removing %d environments...\n", len(toRemove))
	progress := output.NewProgress(len(toRemove), "Removing environments")

	var results []*store.Removal
	var freed int64
	removed := 0
	var failures []string

	for _, rec := range toRemove {
		ok, rmErr := venv.Remove(rec.Path)
		if ok {
			removed++
			freed += rec.SizeBytes
		} else {
			failures = append(failures, fmt.Sprintf("%s: %v", rec.Path, rmErr))
			log.Error("failed to remove environment", "path", rec.Path, "error", rmErr)
		}
		results = append(results, &store.Removal{
			Path:      rec.Path,
			SizeBytes: rec.SizeBytes,
			AgeDays:   rec.AgeDays,
			Reason:    rec.Reason,
			Success:   ok,
		})
		progress.Increment()
	}
	progress.Finish()

	fmt.Printf("\n✓ Removed %d environments, freed %s\n", removed, output.FormatSize(freed))

	if len(failures) > 0 {
		fmt.Printf("\n⚠  %d failures:\n", len(failures))
		for _, failure := range failures {
			fmt.Printf("  - %s\n", failure)
		}
	}

	summary.BytesToRemove = freed
	recordRun(log, summary, results, false)
	return nil
}

// evaluateRoots runs the scan → evaluate pipeline over the given roots and
// returns the evaluated records along with the criteria used.
func evaluateRoots(cmd *cobra.Command, cfg *config.Config, roots []string, log *slog.Logger) ([]*evaluator.Record, evaluator.Criteria) {
	criteria := rules.BuildCriteria(criteriaOptions(cmd, cfg, cleanMinAgeDays, cleanMinSizeMB, cleanUnusedOnly))
	log.Info("using criteria", describeCriteria(criteria)...)

	maxDepth := cleanMaxDepth
	if !cmd.Flags().Changed("max-depth") && cfg.MaxDepth > 0 {
		maxDepth = cfg.MaxDepth
	}
	if cleanNoRecursive {
		maxDepth = 1
	}

	excludeDirs := cleanExcludeDirs
	if len(excludeDirs) == 0 {
		excludeDirs = cfg.ExcludeDirs
	}

	patterns := append(append([]string(nil), cfg.ExcludePatterns...), cleanExclude...)

	records := evaluatePipeline(pipelineOpts{
		roots:       roots,
		maxDepth:    maxDepth,
		excludeDirs: excludeDirs,
		patterns:    patterns,
		criteria:    criteria,
	}, log)
	return records, criteria
}

// recordRun persists the outcome of a clean invocation. History is
// reporting only; failure to record is logged, not fatal.
func recordRun(log *slog.Logger, summary rules.Summary, removals []*store.Removal, dryRun bool) {
	if err := persistRun(summary, removals, dryRun); err != nil {
		log.Warn("failed to record run history", "error", err)
	}
}

func persistRun(summary rules.Summary, removals []*store.Removal, dryRun bool) error {
	path, err := getDBPath()
	if err != nil {
		return err
	}
	st, err := store.New(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	started := time.Now()
	runID, err := st.BeginRun(started, dryRun)
	if err != nil {
		return err
	}

	removed := 0
	for _, r := range removals {
		r.RunID = runID
		if err := st.InsertRemoval(r); err != nil {
			return err
		}
		if r.Success {
			removed++
		}
	}

	return st.FinishRun(&store.Run{
		ID:         runID,
		FinishedAt: time.Now(),
		Scanned:    summary.Total,
		Kept:       summary.ToKeep,
		Removed:    removed,
		Errors:     summary.Errors,
		BytesFreed: summary.BytesToRemove,
	})
}

package app

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvprune/internal/evaluator"
	"github.com/blackwell-systems/uvprune/internal/output"
	"github.com/blackwell-systems/uvprune/internal/rules"
	"github.com/blackwell-systems/uvprune/internal/store"
)

var (
	statsDirs     []string
	statsMaxDepth int
	statsDays     int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show disk usage and activity statistics for virtual environments",
	Long: `Scan the search roots and report aggregate statistics: how many
environments exist, how much disk they use, and which would be removed
under the default criteria.

When the filesystem watcher has been running, recorded activity events are
summarized per environment over the --days window.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringArrayVar(&statsDirs, "dir", nil, "directory to scan (repeatable; default: standard uv locations)")
	statsCmd.Flags().IntVar(&statsMaxDepth, "max-depth", 10, "maximum recursion depth when scanning")
	statsCmd.Flags().IntVar(&statsDays, "days", 30, "activity window in days")

	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	roots, err := resolveRoots(statsDirs, cfg)
	if err != nil {
		return err
	}

	maxDepth := statsMaxDepth
	if !cmd.Flags().Changed("max-depth") && cfg.MaxDepth > 0 {
		maxDepth = cfg.MaxDepth
	}

	criteria := rules.BuildCriteria(criteriaOptions(cmd, cfg, rules.DefaultMinAgeDays, 0, true))

	records := evaluatePipeline(pipelineOpts{
		roots:       roots,
		maxDepth:    maxDepth,
		excludeDirs: cfg.ExcludeDirs,
		patterns:    cfg.ExcludePatterns,
		criteria:    criteria,
	}, log)

	if len(records) == 0 {
		fmt.Println("No environments found.")
		return nil
	}

	summary := rules.Summarize(records)

	var total int64
	for _, rec := range records {
		total += rec.SizeBytes
	}

	fmt.Printf("\nEnvironment statistics:\n\n")
	fmt.Printf("  Environments:       %d\n", summary.Total)
	fmt.Printf("  Total disk usage:   %s\n", output.FormatSize(total))
	fmt.Printf("  Reclaimable:        %s (%d environments)\n", output.FormatSize(summary.BytesToRemove), summary.ToRemove)
	if summary.Oldest != nil {
		fmt.Printf("  Oldest:             %s (%.0f days)\n", summary.Oldest.Name, summary.Oldest.AgeDays)
	}
	if summary.Newest != nil {
		fmt.Printf("  Newest:             %s (%.0f days)\n", summary.Newest.Name, summary.Newest.AgeDays)
	}
	fmt.Println()

	return printActivity(records, statsDays)
}

// printActivity reports watcher-recorded events per environment. A missing
// or empty database just means the watcher has not run; that is not an
// error.
func printActivity(records []*evaluator.Record, days int) error {
	path, err := getDBPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	st, err := store.New(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	since := time.Now().AddDate(0, 0, -days)
	counts, err := st.CountActivitySince(since)
	if err != nil {
		return err
	}
	last, err := st.LastActivity()
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return nil
	}

	fmt.Printf("Watcher activity (last %d days):\n\n", days)

	// Stable order: most events first, then path.
	paths := make([]string, 0, len(counts))
	for p := range counts {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if counts[paths[i]] != counts[paths[j]] {
			return counts[paths[i]] > counts[paths[j]]
		}
		return paths[i] < paths[j]
	})

	for _, p := range paths {
		fmt.Printf("  %-50s %5d events   last %s\n", p, counts[p], output.FormatRelativeTime(last[p]))
	}
	fmt.Println()
	return nil
}

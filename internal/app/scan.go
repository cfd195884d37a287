package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvprune/internal/output"
	"github.com/blackwell-systems/uvprune/internal/rules"
)

var (
	scanDirs        []string
	scanExclude     []string
	scanExcludeDirs []string
	scanMaxDepth    int
	scanNoRecursive bool
	scanMinAgeDays  int
	scanMinSizeMB   int64
	scanUnusedOnly  bool
	scanSortBy      string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List discovered virtual environments without removing anything",
	Long: `Scan the search roots for uv virtual environments and show how each one
scores against the removal criteria. Nothing is removed and nothing is
recorded; this is the read-only counterpart to 'clean'.`,
	Example: `  # Show every environment under the default locations
  uvprune scan

  # Scan a specific tree, sorted by size
  uvprune scan --dir ~/projects --sort-by size`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringArrayVar(&scanDirs, "dir", nil, "directory to scan (repeatable; default: standard uv locations)")
	scanCmd.Flags().StringArrayVar(&scanExclude, "exclude", nil, "exclude paths matching this glob pattern (repeatable)")
	scanCmd.Flags().StringArrayVar(&scanExcludeDirs, "exclude-dir", nil, "directory names to skip while scanning (repeatable)")
	scanCmd.Flags().IntVar(&scanMaxDepth, "max-depth", 10, "maximum recursion depth when scanning")
	scanCmd.Flags().BoolVar(&scanNoRecursive, "no-recursive", false, "disable recursive scanning of subdirectories")
	scanCmd.Flags().IntVar(&scanMinAgeDays, "min-age-days", rules.DefaultMinAgeDays, "minimum age in days to consider a venv unused")
	scanCmd.Flags().Int64Var(&scanMinSizeMB, "min-size-mb", 0, "minimum size in MB to consider removing a venv")
	scanCmd.Flags().BoolVar(&scanUnusedOnly, "unused-only", true, "only flag venvs that appear unused")
	scanCmd.Flags().StringVar(&scanSortBy, "sort-by", rules.SortByAge, "sort venvs by: age, size, name, accessed, modified, created")

	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	roots, err := resolveRoots(scanDirs, cfg)
	if err != nil {
		return err
	}

	criteria := rules.BuildCriteria(criteriaOptions(cmd, cfg, scanMinAgeDays, scanMinSizeMB, scanUnusedOnly))
	log.Info("using criteria", describeCriteria(criteria)...)

	maxDepth := scanMaxDepth
	if !cmd.Flags().Changed("max-depth") && cfg.MaxDepth > 0 {
		maxDepth = cfg.MaxDepth
	}
	if scanNoRecursive {
		maxDepth = 1
	}

	excludeDirs := scanExcludeDirs
	if len(excludeDirs) == 0 {
		excludeDirs = cfg.ExcludeDirs
	}

	patterns := append(append([]string(nil), cfg.ExcludePatterns...), scanExclude...)

	records := evaluatePipeline(pipelineOpts{
		roots:       roots,
		maxDepth:    maxDepth,
		excludeDirs: excludeDirs,
		patterns:    patterns,
		criteria:    criteria,
	}, log)

	if len(records) == 0 {
		fmt.Println("No environments found.")
		return nil
	}

	records = rules.Sort(records, scanSortBy)
	summary := rules.Summarize(records)

	fmt.Printf("\nVirtual environments:\n\n")
	fmt.Print(output.RenderEnvTable(records))
	fmt.Println()
	fmt.Print(output.RenderSummary(summary))

	return nil
}

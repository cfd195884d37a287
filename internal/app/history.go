package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvprune/internal/output"
	"github.com/blackwell-systems/uvprune/internal/store"
)

var (
	historyLimit int
	historyRunID int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past clean runs and what they removed",
	Long: `List past clean runs recorded in the database, newest first. With --run,
show the individual removals from one run instead.`,
	Example: `  # Recent runs
  uvprune history

  # What run 3 removed
  uvprune history --run 3`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of runs to show")
	historyCmd.Flags().Int64Var(&historyRunID, "run", 0, "show removals from this run")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := getDBPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Println("No history recorded yet.")
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

	if cmd.Flags().Changed("run") {
		run, err := st.GetRun(historyRunID)
		if err != nil {
			return err
		}
		removals, err := st.ListRemovals(run.ID)
		if err != nil {
			return err
		}
		if len(removals) == 0 {
			fmt.Printf("Run %d removed nothing.\n", run.ID)
			return nil
		}
		fmt.Printf("\nRemovals from run %d:\n\n", run.ID)
		fmt.Print(output.RenderRemovalTable(removals))
		return nil
	}

	runs, err := st.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No history recorded yet.")
		return nil
	}

	fmt.Printf("\nClean runs:\n\n")
	fmt.Print(output.RenderRunTable(runs))
	return nil
}

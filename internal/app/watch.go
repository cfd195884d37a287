package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/uvprune/internal/store"
	"github.com/blackwell-systems/uvprune/internal/watcher"
)

var (
	watchDirs        []string
	watchMaxDepth    int
	watchDaemon      bool
	watchStop        bool
	watchStatus      bool
	watchDaemonChild bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch virtual environments and record filesystem activity",
	Long: `Watch the search roots for filesystem events inside virtual environments
and record them in the database. The recorded activity feeds 'stats', which
uses it to distinguish environments that are merely old from environments
that are genuinely unused.

By default the watcher runs in the foreground until interrupted. With
--daemon it detaches and keeps running in the background; use --stop and
--status to manage the background process.`,
	Example: `  # Watch in the foreground
  uvprune watch

  # Run in the background
  uvprune watch --daemon
  uvprune watch --status
  uvprune watch --stop`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringArrayVar(&watchDirs, "dir", nil, "directory to watch (repeatable; default: standard uv locations)")
	watchCmd.Flags().IntVar(&watchMaxDepth, "max-depth", 10, "maximum recursion depth when scanning for environments")
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run the watcher in the background")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop the background watcher")
	watchCmd.Flags().BoolVar(&watchStatus, "status", false, "show whether the background watcher is running")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "")
	watchCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	pidFile, err := getDefaultPIDFile()
	if err != nil {
		return err
	}

	switch {
	case watchStop:
		if err := watcher.StopDaemon(pidFile); err != nil {
			return err
		}
		fmt.Println("Watcher stopped.")
		return nil

	case watchStatus:
		running, err := watcher.IsDaemonRunning(pidFile)
		if err != nil {
			return err
		}
		if running {
			fmt.Println("Watcher is running.")
		} else {
			fmt.Println("Watcher is not running.")
		}
		return nil

	case watchDaemon:
		running, err := watcher.IsDaemonRunning(pidFile)
		if err != nil {
			return err
		}
		if running {
			return fmt.Errorf("watcher is already running")
		}
		logFile, err := getDefaultLogFile()
		if err != nil {
			return err
		}
		var extra []string
		for _, d := range watchDirs {
			extra = append(extra, "--dir", d)
		}
		if cmd.Flags().Changed("max-depth") {
			extra = append(extra, "--max-depth", fmt.Sprint(watchMaxDepth))
		}
		if err := watcher.StartDaemon(pidFile, logFile, extra...); err != nil {
			return err
		}
		fmt.Println("Watcher started in the background.")
		return nil
	}

	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	roots, err := resolveRoots(watchDirs, cfg)
	if err != nil {
		return err
	}

	maxDepth := watchMaxDepth
	if !cmd.Flags().Changed("max-depth") && cfg.MaxDepth > 0 {
		maxDepth = cfg.MaxDepth
	}

	dbPath, err := getDBPath()
	if err != nil {
		return err
	}
	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	w, err := watcher.New(st, log)
	if err != nil {
		return err
	}

	if watchDaemonChild {
		return w.RunDaemon(pidFile, roots, maxDepth)
	}

	if err := w.Start(roots, maxDepth); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Println("Watching for activity. Press Ctrl+C to stop.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	fmt.Println("\nStopping watcher.")
	return nil
}

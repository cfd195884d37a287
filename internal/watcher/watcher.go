// Package watcher observes environment roots for filesystem activity and
// records what it sees in the run-history store. The recorded events feed
// the stats command; removal decisions always come from live filesystem
// probes, never from this log.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/uvprune/internal/scanner"
	"github.com/blackwell-systems/uvprune/internal/store"
	"github.com/blackwell-systems/uvprune/internal/venv"
)

// Watcher tails filesystem events under the configured search roots and
// attributes them to known environments.
type Watcher struct {
	store   *store.Store
	log     *slog.Logger
	profile venv.Profile

	fs     *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu   sync.Mutex
	envs map[string]bool // watched environment roots
}

// New creates a Watcher writing observations to st.
func New(st *store.Store, log *slog.Logger) (*Watcher, error) {
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	return &Watcher{
		store:   st,
		log:     log,
		profile: venv.DefaultProfile(),
		stopCh:  make(chan struct{}),
		envs:    make(map[string]bool),
	}, nil
}

// Start discovers environments under the given roots, registers watches on
// the roots and each environment, and begins recording events until Stop.
func (w *Watcher) Start(roots []string, maxDepth int) error {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fs watcher: %w", err)
	}
	w.fs = fs

	sc := scanner.New(w.profile, w.log)
	for _, root := range roots {
		if err := w.fs.Add(root); err != nil {
			w.log.Warn("cannot watch root", "path", root, "error", err)
			continue
		}
		for _, env := range sc.Find(root, maxDepth, nil) {
			w.trackEnv(env)
		}
	}

	w.wg.Add(1)
	go w.run()

	w.log.Info("watch started", "roots", len(roots), "environments", len(w.envs))
	return nil
}

// Stop halts event processing and releases the underlying watches.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.wg.Wait()

	if w.fs != nil {
		return w.fs.Close()
	}
	return nil
}

func (w *Watcher) trackEnv(env string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.envs[env] {
		return
	}
	if err := w.fs.Add(env); err != nil {
		w.log.Warn("cannot watch environment", "path", env, "error", err)
		return
	}
	w.envs[env] = true
	w.log.Debug("watching environment", "path", env)
}

func (w *Watcher) untrackEnv(env string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.envs[env] {
		delete(w.envs, env)
		// The watch disappears with the directory; Remove is best-effort.
		_ = w.fs.Remove(env)
	}
}

// envFor returns the watched environment root containing path, or "".
func (w *Watcher) envFor(path string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	for env := range w.envs {
		if path == env || strings.HasPrefix(path, env+string(filepath.Separator)) {
			return env
		}
	}
	return ""
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	// A directory created directly under a root may be a brand-new env.
	if ev.Op.Has(fsnotify.Create) && w.envFor(ev.Name) == "" {
		if venv.IsEnv(ev.Name, w.profile) {
			w.trackEnv(ev.Name)
		}
	}

	env := w.envFor(ev.Name)
	if env == "" {
		return
	}

	if ev.Op.Has(fsnotify.Remove) && ev.Name == env {
		w.untrackEnv(env)
	}

	event := &store.ActivityEvent{
		Path:       env,
		Op:         ev.Op.String(),
		ObservedAt: time.Now(),
	}
	if err := w.store.InsertActivityEvent(event); err != nil {
		w.log.Warn("failed to record activity", "path", env, "error", err)
	}
}

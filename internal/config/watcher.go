package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces the burst of events an editor save produces.
const DefaultWatchDebounce = 250 * time.Millisecond

// Watcher reports changes to a config file and the files it includes. Parent
// directories are watched so saves that replace a file by rename are seen too.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	files  map[string]struct{}
	update chan struct{}
}

func NewWatcher(path string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	path = filepath.Clean(path)
	return &Watcher{
		path:     path,
		debounce: debounce,
		logger:   logger,
		files:    map[string]struct{}{path: {}},
		update:   make(chan struct{}, 1),
	}
}

// Track replaces the set of included files to watch alongside the main config.
// It is safe to call while Run is active.
func (w *Watcher) Track(files []string) {
	set := map[string]struct{}{w.path: {}}
	for _, f := range files {
		set[filepath.Clean(f)] = struct{}{}
	}
	w.mu.Lock()
	w.files = set
	w.mu.Unlock()

	select {
	case w.update <- struct{}{}:
	default:
	}
}

func (w *Watcher) dirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	seen := make(map[string]struct{}, len(w.files))
	var out []string
	for f := range w.files {
		dir := filepath.Dir(f)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}
	return out
}

// Run calls onChange once per burst of changes until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Debug("watching config", "path", w.path)

	// Directories stay watched once added; relevant filters by file.
	watched := map[string]struct{}{dir: {}}
	addDirs := func() {
		for _, d := range w.dirs() {
			if _, ok := watched[d]; ok {
				continue
			}
			if err := fw.Add(d); err != nil {
				w.logger.Warn("failed to watch include directory", "dir", d, "error", err)
				continue
			}
			watched[d] = struct{}{}
			w.logger.Debug("watching include directory", "dir", d)
		}
	}
	addDirs()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.update:
			addDirs()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("config event", "file", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		case <-fire:
			fire = nil
			w.logger.Info("config file changed", "path", w.path)
			onChange()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	w.mu.Lock()
	_, tracked := w.files[filepath.Clean(ev.Name)]
	w.mu.Unlock()
	if !tracked {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

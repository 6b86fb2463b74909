package audit

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures the file watcher.
type WatchOptions struct {
	// DebounceMs groups rapid saves of the same file; only the last event
	// inside the window triggers a re-audit.
	DebounceMs int
}

// DefaultWatchOptions returns the stock watch configuration.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{DebounceMs: 200}
}

// ReportFunc receives the fresh report for a re-audited file.
type ReportFunc func(FileReport)

// Watcher re-audits files as they change on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	auditor  *Auditor
	cache    *ReportCache
	cfg      Config
	options  WatchOptions
	onReport ReportFunc
	log      *slog.Logger

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher delivering reports to onReport. The cache
// may be nil when no long-lived consumer needs memoized reports.
func NewWatcher(auditor *Auditor, cache *ReportCache, cfg Config, options WatchOptions, onReport ReportFunc, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = DefaultWatchOptions().DebounceMs
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		watcher:        fsw,
		auditor:        auditor,
		cache:          cache,
		cfg:            cfg,
		options:        options,
		onReport:       onReport,
		log:            logger,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start watches rootPath and its subdirectories, then runs the event loop
// in the background.
func (w *Watcher) Start(rootPath string) error {
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue on error.
		}
		if !d.IsDir() {
			return nil
		}
		if w.excluded(absRoot, path) {
			return filepath.SkipDir
		}
		if werr := w.watcher.Add(path); werr != nil {
			w.log.Warn("failed to watch directory", "path", path, "error", werr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set up watches: %w", err)
	}

	w.log.Info("watcher started", "root", absRoot)
	go w.eventLoop(absRoot)
	return nil
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.log.Info("watcher stopped")
	return err
}

func (w *Watcher) eventLoop(absRoot string) {
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(absRoot, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(absRoot string, event fsnotify.Event) {
	path := event.Name

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		if w.excluded(absRoot, path) || !w.included(absRoot, path) {
			return
		}
		w.debounceAudit(path)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if w.cache != nil {
			w.cache.Invalidate(path)
		}
	}
}

// debounceAudit schedules a re-audit after the debounce window; repeated
// events for the same path reset the timer.
func (w *Watcher) debounceAudit(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			report := w.auditor.AuditFile(path)
			if w.cache != nil && report.ReadError == "" {
				w.cache.Put(path, report)
			}
			if w.onReport != nil {
				w.onReport(report)
			}

			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()
		},
	)
}

func (w *Watcher) excluded(absRoot, path string) bool {
	rel := relSlash(absRoot, path)
	for _, pattern := range w.cfg.Exclude {
		if matched, _ := doublestar.PathMatch(pattern, rel); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) included(absRoot, path string) bool {
	if len(w.cfg.Include) == 0 {
		return true
	}
	rel := relSlash(absRoot, path)
	for _, pattern := range w.cfg.Include {
		if matched, _ := doublestar.PathMatch(pattern, rel); matched {
			return true
		}
	}
	return false
}

func relSlash(absRoot, path string) string {
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

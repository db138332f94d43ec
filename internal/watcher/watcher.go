// Package watcher watches template and data files for changes with
// debouncing, driving re-renders in the preview server.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/partirhq/partir/internal/logging"
)

// ChangeEvent represents one debounced file change.
type ChangeEvent struct {
	Path    string
	ModTime time.Time
}

// FileFilter determines if a file should be watched
type FileFilter func(path string) bool

// ChangeHandler handles batches of debounced change events.
type ChangeHandler func(events []ChangeEvent)

// FileWatcher watches for file changes with debouncing so rapid editor
// saves collapse into a single re-render.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	delay    time.Duration
	filters  []FileFilter
	handlers []ChangeHandler
	logger   logging.Logger

	mutex   sync.Mutex
	pending map[string]ChangeEvent
	timer   *time.Timer
}

// NewFileWatcher creates a watcher with the given debounce delay.
func NewFileWatcher(debounceDelay time.Duration, logger logging.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &FileWatcher{
		watcher: w,
		delay:   debounceDelay,
		pending: make(map[string]ChangeEvent),
		logger:  logger.WithComponent("watcher"),
	}, nil
}

// AddFilter adds a file filter
func (fw *FileWatcher) AddFilter(filter FileFilter) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.filters = append(fw.filters, filter)
}

// AddHandler adds a change handler
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.handlers = append(fw.handlers, handler)
}

// AddPath adds a file or directory to watch.
func (fw *FileWatcher) AddPath(path string) error {
	return fw.watcher.Add(filepath.Clean(path))
}

// Start runs the watch loop until the context is cancelled.
func (fw *FileWatcher) Start(ctx context.Context) {
	go fw.watchLoop(ctx)
}

// Stop closes the underlying watcher and stops any pending flush.
func (fw *FileWatcher) Stop() error {
	fw.mutex.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mutex.Unlock()
	return fw.watcher.Close()
}

func (fw *FileWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fw.handleEvent(event.Name)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn(ctx, err, "file watcher error")
		}
	}
}

func (fw *FileWatcher) handleEvent(path string) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	for _, filter := range fw.filters {
		if !filter(path) {
			return
		}
	}

	// Deduplicate by path; the debounce timer flushes the batch.
	fw.pending[path] = ChangeEvent{Path: path, ModTime: time.Now()}

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.delay, fw.flush)
}

func (fw *FileWatcher) flush() {
	fw.mutex.Lock()
	if len(fw.pending) == 0 {
		fw.mutex.Unlock()
		return
	}
	events := make([]ChangeEvent, 0, len(fw.pending))
	for _, event := range fw.pending {
		events = append(events, event)
	}
	fw.pending = make(map[string]ChangeEvent)
	handlers := fw.handlers
	fw.mutex.Unlock()

	for _, handler := range handlers {
		handler(events)
	}
}

// TemplateFilter accepts the template file extensions the renderer handles.
func TemplateFilter(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".hbs", ".tmpl":
		return true
	default:
		return false
	}
}

// DataFilter accepts the data context file extensions.
func DataFilter(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// NoHiddenFilter rejects dotfiles and editor swap artifacts.
func NoHiddenFilter(path string) bool {
	base := filepath.Base(path)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}

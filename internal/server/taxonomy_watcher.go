package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"atscore/internal/errors"
)

// TaxonomyReloadMetrics tracks taxonomy reload outcomes for health reporting
type TaxonomyReloadMetrics struct {
	ReloadCount        int64
	ReloadSuccessCount int64
	ReloadFailureCount int64
	LastReloadTime     time.Time
	LastReloadError    string
}

// TaxonomyWatcher watches the taxonomy override file for changes and
// triggers engine reloads
type TaxonomyWatcher struct {
	mu sync.RWMutex

	// File path to watch
	taxonomyFile string

	// File metadata
	lastModTime time.Time
	hasModTime  bool

	// Watcher components
	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	// Control channels
	stopChan   chan struct{}
	reloadChan chan struct{}

	// Callback and logging
	reloadCallback func() error
	logger         *errors.Logger

	// State
	running bool
	metrics TaxonomyReloadMetrics
}

// NewTaxonomyWatcher creates a new taxonomy file watcher. The reload
// callback loads the file and swaps the engine; its error is counted in
// the reload metrics.
func NewTaxonomyWatcher(taxonomyFile string, debounceDelay time.Duration, reloadCallback func() error, logger *errors.Logger) (*TaxonomyWatcher, error) {
	if taxonomyFile == "" {
		return nil, fmt.Errorf("taxonomy file path is required")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second // Default 1 second debounce
	}

	return &TaxonomyWatcher{
		taxonomyFile:   taxonomyFile,
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1), // Buffered to prevent blocking
		reloadCallback: reloadCallback,
		logger:         logger,
	}, nil
}

// Start begins watching the taxonomy file for changes
func (tw *TaxonomyWatcher) Start() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.running {
		return fmt.Errorf("taxonomy watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	tw.fsWatcher = watcher

	if err := tw.updateModTime(); err != nil {
		tw.cleanupWatcher()
		return fmt.Errorf("failed to get initial file modification time: %w", err)
	}

	if err := tw.addFileToWatcher(); err != nil {
		tw.cleanupWatcher()
		return err
	}

	tw.running = true
	go tw.watchLoop()

	if tw.logger != nil {
		tw.logger.Info("Taxonomy file watcher started",
			"file", tw.taxonomyFile,
			"debounce_delay", tw.debounceDelay)
	}
	return nil
}

// cleanupWatcher closes the file watcher and logs any errors
func (tw *TaxonomyWatcher) cleanupWatcher() {
	if tw.fsWatcher != nil {
		if closeErr := tw.fsWatcher.Close(); closeErr != nil && tw.logger != nil {
			tw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

// Stop stops the taxonomy file watcher
func (tw *TaxonomyWatcher) Stop() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if !tw.running {
		return nil
	}

	// Signal stop
	close(tw.stopChan)

	// Stop debounce timer if running
	if tw.debounceTimer != nil {
		tw.debounceTimer.Stop()
	}

	// Close file system watcher
	if tw.fsWatcher != nil {
		if err := tw.fsWatcher.Close(); err != nil {
			if tw.logger != nil {
				tw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	tw.running = false

	if tw.logger != nil {
		tw.logger.Info("Taxonomy file watcher stopped")
	}

	return nil
}

// addFileToWatcher adds the taxonomy file and its directory to the watcher
func (tw *TaxonomyWatcher) addFileToWatcher() error {
	// Watch the file itself
	if err := tw.fsWatcher.Add(tw.taxonomyFile); err != nil {
		// If the file doesn't exist, watch its directory instead
		if os.IsNotExist(err) {
			dir := filepath.Dir(tw.taxonomyFile)
			if err := tw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			if tw.logger != nil {
				tw.logger.Info("Watching directory for taxonomy file",
					"file", tw.taxonomyFile, "directory", dir)
			}
			return nil
		}
		return fmt.Errorf("failed to watch file %s: %w", tw.taxonomyFile, err)
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(tw.taxonomyFile)
	if err := tw.fsWatcher.Add(dir); err != nil {
		if tw.logger != nil {
			tw.logger.Warn("Failed to watch directory for atomic writes",
				"directory", dir, "error", err)
		}
	}

	return nil
}

// updateModTime records the current modification time of the taxonomy file
func (tw *TaxonomyWatcher) updateModTime() error {
	stat, err := os.Stat(tw.taxonomyFile)
	if err != nil {
		if os.IsNotExist(err) {
			tw.hasModTime = false
			return nil
		}
		return fmt.Errorf("failed to stat file %s: %w", tw.taxonomyFile, err)
	}

	tw.lastModTime = stat.ModTime()
	tw.hasModTime = true
	return nil
}

// hasFileChanged checks if the taxonomy file has been modified since last check
func (tw *TaxonomyWatcher) hasFileChanged() bool {
	stat, err := os.Stat(tw.taxonomyFile)
	if err != nil {
		if os.IsNotExist(err) && tw.hasModTime {
			// File was deleted
			tw.hasModTime = false
			return true
		}
		return false
	}

	if !tw.hasModTime || stat.ModTime().After(tw.lastModTime) {
		tw.lastModTime = stat.ModTime()
		tw.hasModTime = true
		return true
	}

	return false
}

// watchLoop is the main event loop for file watching
func (tw *TaxonomyWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-tw.fsWatcher.Events:
			if !ok {
				return
			}

			if tw.shouldProcessEvent(event) {
				tw.scheduleReload()
			}

		case err, ok := <-tw.fsWatcher.Errors:
			if !ok {
				return
			}
			if tw.logger != nil {
				tw.logger.LogError(err, "File watcher error")
			}

		case <-tw.reloadChan:
			// Debounced reload trigger
			if tw.hasFileChanged() {
				tw.runReload()
			}

		case <-tw.stopChan:
			return
		}
	}
}

// runReload invokes the reload callback and records the outcome
func (tw *TaxonomyWatcher) runReload() {
	if tw.logger != nil {
		tw.logger.Info("Taxonomy file changed, triggering reload",
			"file", tw.taxonomyFile)
	}

	err := tw.reloadCallback()

	tw.mu.Lock()
	tw.metrics.ReloadCount++
	tw.metrics.LastReloadTime = time.Now()
	if err != nil {
		tw.metrics.ReloadFailureCount++
		tw.metrics.LastReloadError = err.Error()
	} else {
		tw.metrics.ReloadSuccessCount++
		tw.metrics.LastReloadError = ""
	}
	tw.mu.Unlock()

	if err != nil && tw.logger != nil {
		tw.logger.LogError(err, "Taxonomy reload failed, keeping previous taxonomy")
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (tw *TaxonomyWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != tw.taxonomyFile && filepath.Base(event.Name) != filepath.Base(tw.taxonomyFile) {
		return false
	}

	// Process write, create, and rename events
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload
func (tw *TaxonomyWatcher) scheduleReload() {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	// Reset the debounce timer
	if tw.debounceTimer != nil {
		tw.debounceTimer.Stop()
	}

	tw.debounceTimer = time.AfterFunc(tw.debounceDelay, func() {
		select {
		case tw.reloadChan <- struct{}{}:
			// Reload scheduled
		default:
			// Channel is full, reload already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (tw *TaxonomyWatcher) IsRunning() bool {
	tw.mu.RLock()
	defer tw.mu.RUnlock()
	return tw.running
}

// GetMetrics returns a snapshot of the reload metrics
func (tw *TaxonomyWatcher) GetMetrics() TaxonomyReloadMetrics {
	tw.mu.RLock()
	defer tw.mu.RUnlock()
	return tw.metrics
}

// WatchedFile returns the path being watched
func (tw *TaxonomyWatcher) WatchedFile() string {
	return tw.taxonomyFile
}

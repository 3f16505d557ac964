// Package watcher monitors a scanned tree for changes to solution, project,
// and source files so that watch mode can trigger rescans.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/logging"
)

// ChangeType represents the type of file change detected
type ChangeType int

const (
	ChangeTypeSolution ChangeType = iota // .sln files: membership may have changed
	ChangeTypeProject                    // project files: references or items may have changed
	ChangeTypeSource                     // .cs/.vb files: affects SDK-style default globbing
)

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches a start path for changes relevant to a scan
type FileWatcher struct {
	watcher *fsnotify.Watcher
	start   string
	events  chan ChangeEvent
}

// NewFileWatcher creates a new file system watcher rooted at the scan start path
func NewFileWatcher(start string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: watcher,
		start:   start,
		events:  make(chan ChangeEvent, 100),
	}, nil
}

// Start adds every directory under the start path to the watcher and begins
// processing events. Directories that cannot be watched are skipped.
func (fw *FileWatcher) Start(ctx context.Context) error {
	count := 0
	err := filepath.WalkDir(fw.start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip directories we can't access
		}
		if !d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if name == ".git" || name == "bin" || name == "obj" || name == "node_modules" {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			logging.Warn("failed to watch directory", "path", path, "error", err)
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk start path: %w", err)
	}

	logging.Info("started watching", "path", fw.start, "directories", count)

	go fw.processEvents(ctx)
	return nil
}

// classify maps a changed path to its ChangeType; ok is false for files that
// cannot affect scan results.
func classify(path string) (ChangeType, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sln":
		return ChangeTypeSolution, true
	case ".csproj", ".vbproj", ".fsproj":
		return ChangeTypeProject, true
	case ".cs", ".vb":
		return ChangeTypeSource, true
	}
	return 0, false
}

// processEvents batches raw fsnotify events by type before emitting them
func (fw *FileWatcher) processEvents(ctx context.Context) {
	batches := make(map[ChangeType][]string)

	flushTimer := time.NewTimer(100 * time.Millisecond)
	flushTimer.Stop()

	flush := func() {
		// Solutions first: they change scan membership, not just content
		for _, ct := range []ChangeType{ChangeTypeSolution, ChangeTypeProject, ChangeTypeSource} {
			if paths := batches[ct]; len(paths) > 0 {
				fw.events <- ChangeEvent{
					Type:      ct,
					Paths:     paths,
					Timestamp: time.Now(),
				}
				delete(batches, ct)
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			fw.watcher.Close()
			close(fw.events)
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if ct, relevant := classify(event.Name); relevant {
				batches[ct] = append(batches[ct], event.Name)
				flushTimer.Reset(100 * time.Millisecond)
			}

		case <-flushTimer.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the source directories of a codebase and rescans
// files that were added, changed or removed on disk.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.seed()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

// seed records the files on disk without rescanning them; the codebase
// has just read them in ScanAll.
func (w *FileWatcher) seed() {
	w.walk(func(path string, info os.FileInfo) {
		w.modTimes[path] = info.ModTime()
	})
}

func (w *FileWatcher) scan() {
	currentFiles := w.walk(func(path string, info os.FileInfo) {
		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return
		}
		w.modTimes[path] = info.ModTime()
		if w.codebase.IsOpen(path) {
			return
		}
		if known {
			log.Debugf("%s changed", path)
		}
		w.codebase.ScanFile(path)
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			if w.codebase.IsOpen(path) {
				continue
			}
			log.Debugf("%s removed", path)
			w.codebase.RemoveFile(path)
		}
	}
}

// walk calls visit for every Java file under the source directories and
// returns the set of paths it saw.
func (w *FileWatcher) walk(visit func(path string, info os.FileInfo)) map[string]bool {
	seen := make(map[string]bool)
	for _, dir := range w.codebase.Project().SourceDirPaths() {
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if path != dir && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".java" {
				return nil
			}
			seen[path] = true
			visit(path, info)
			return nil
		})
	}
	return seen
}

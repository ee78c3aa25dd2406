// Package codebase keeps a universe of Java sources up to date as files
// change and serves byte-code names for it over LSP.
package codebase

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/dhamidi/scribe/java"
	"github.com/dhamidi/scribe/java/source"
	"github.com/dhamidi/scribe/mapping"
	"github.com/dhamidi/scribe/project"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("scribe.codebase")

type Codebase struct {
	mu        sync.RWMutex
	project   *project.Project
	files     map[string]*FileInfo
	open      map[string]bool
	externals []string
	store     *mapping.Store
	snapshot  Snapshot
}

type FileInfo struct {
	Path    string
	Content []byte
	// Parsed is the last version of the file that parsed without errors.
	Parsed   *source.File
	ParseErr error
}

// Snapshot is an immutable view of the codebase. Encodings obtained from
// one snapshot are only meaningful against that snapshot.
type Snapshot struct {
	Universe *source.Universe
	Codec    *java.Codec
	Mappings *mapping.Mappings
}

func New(p *project.Project, store *mapping.Store) *Codebase {
	if store == nil {
		store = mapping.New()
	}
	c := &Codebase{
		project: p,
		files:   make(map[string]*FileInfo),
		open:    make(map[string]bool),
		store:   store,
	}
	c.rebuildLocked()
	return c
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

// SetExternals replaces the binary names of classes known from compiled
// code, usually the contents of the classpath.
func (c *Codebase) SetExternals(binaryNames []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.externals = binaryNames
	c.rebuildLocked()
}

func (c *Codebase) ScanAll() error {
	paths, err := c.project.JavaFiles()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, path := range paths {
		if c.open[path] {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			log.Warningf("skipping %s: %s", path, err)
			continue
		}
		c.updateFileLocked(path, content)
	}
	c.rebuildLocked()
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile replaces the content of a file and rebuilds the universe. A
// parse error is returned, but the previous version of the file stays in
// the universe.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.updateFileLocked(path, content)
	c.rebuildLocked()
	return err
}

func (c *Codebase) updateFileLocked(path string, content []byte) error {
	info, ok := c.files[path]
	if !ok {
		info = &FileInfo{Path: path}
		c.files[path] = info
	}
	info.Content = content

	f, err := source.Parse(path, content)
	info.ParseErr = err
	if err != nil {
		log.Debugf("%s", err)
		return err
	}
	info.Parsed = f
	return nil
}

func (c *Codebase) rebuildLocked() {
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	b := source.NewBuilder()
	for _, path := range paths {
		if f := c.files[path].Parsed; f != nil {
			b.AddParsed(f)
		}
	}
	b.AddExternal(c.externals...)

	u := b.Build()
	codec := java.NewCodec(u)
	c.snapshot = Snapshot{
		Universe: u,
		Codec:    codec,
		Mappings: mapping.For(c.store, codec),
	}
}

// OpenFile replaces the content of path with a client's buffer. Open
// files are not reloaded from disk until CloseFile.
func (c *Codebase) OpenFile(path string, content []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open[path] = true
	err := c.updateFileLocked(path, content)
	c.rebuildLocked()
	return err
}

// CloseFile reloads path from disk, dropping it when it no longer exists.
func (c *Codebase) CloseFile(path string) {
	c.mu.Lock()
	delete(c.open, path)
	c.mu.Unlock()

	err := c.ScanFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		c.RemoveFile(path)
	} else if err != nil {
		log.Debugf("%s", err)
	}
}

func (c *Codebase) IsOpen(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.open[path]
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	c.rebuildLocked()
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

func (c *Codebase) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

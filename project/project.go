// Package project handles scribe.toml project configuration.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const FileName = "scribe.toml"

// Project represents a scribe.toml configuration. A directory without one
// is a project with default settings.
type Project struct {
	Source    Source    `toml:"source"`
	Classpath Classpath `toml:"classpath"`
	Log       Log       `toml:"log"`

	// RootDir is the directory containing scribe.toml (set at load time).
	RootDir string `toml:"-"`
	// Found reports whether a scribe.toml was read.
	Found bool `toml:"-"`
}

type Source struct {
	Dirs []string `toml:"dirs"`
}

// Classpath lists class directories and jar files. Entries may be glob
// patterns such as "lib/*.jar".
type Classpath struct {
	Entries []string `toml:"entries"`
}

type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Load reads scribe.toml from dir. A missing file yields the defaults.
func Load(dir string) (*Project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	p := &Project{RootDir: root}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parse error in %s: %w", path, err)
		}
		p.Found = true
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if len(p.Source.Dirs) == 0 {
		p.Source.Dirs = defaultSourceDirs(root)
	}
	return p, nil
}

// FindAndLoad walks up from startDir to find a scribe.toml file. Without
// one, startDir is loaded with the defaults.
func FindAndLoad(startDir string) (*Project, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Load(startDir)
		}
		dir = parent
	}
}

func defaultSourceDirs(root string) []string {
	if info, err := os.Stat(filepath.Join(root, "src", "main", "java")); err == nil && info.IsDir() {
		return []string{filepath.Join("src", "main", "java")}
	}
	return []string{"src"}
}

func (p *Project) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.RootDir, path)
}

// SourceDirPaths returns absolute paths for the configured source directories.
func (p *Project) SourceDirPaths() []string {
	var paths []string
	for _, d := range p.Source.Dirs {
		paths = append(paths, p.abs(d))
	}
	return paths
}

// ClasspathPaths returns absolute classpath entries with glob patterns
// expanded. Patterns matching nothing are dropped.
func (p *Project) ClasspathPaths() ([]string, error) {
	var paths []string
	for _, e := range p.Classpath.Entries {
		path := p.abs(e)
		if !strings.ContainsAny(e, "*?[") {
			paths = append(paths, path)
			continue
		}
		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, fmt.Errorf("bad classpath pattern %q: %w", e, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// LogFile returns the absolute log file path, or nil to log to stderr.
func (p *Project) LogFile() *string {
	if p.Log.File == "" {
		return nil
	}
	path := p.abs(p.Log.File)
	return &path
}

// JavaFiles returns all .java files below the source directories.
// Directories that do not exist are skipped.
func (p *Project) JavaFiles() ([]string, error) {
	var files []string
	for _, dir := range p.SourceDirPaths() {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".java") {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan java files in %s: %w", dir, err)
		}
	}
	return files, nil
}

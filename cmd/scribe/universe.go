package main

import (
	"fmt"

	"github.com/dhamidi/scribe/classpath"
	"github.com/dhamidi/scribe/java"
	"github.com/dhamidi/scribe/java/source"
	"github.com/dhamidi/scribe/project"
)

// openClasspath opens the configured classpath. It returns nil when none
// is configured.
func openClasspath(p *project.Project) (*classpath.Classpath, error) {
	paths, err := p.ClasspathPaths()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}
	return classpath.Open(paths)
}

// loadUniverse builds a universe from files, or from every source file of
// the project when files is empty. Classes on cp become known externals.
func loadUniverse(p *project.Project, cp *classpath.Classpath, files []string) (*source.Universe, *java.Codec, error) {
	if len(files) == 0 {
		var err error
		if files, err = p.JavaFiles(); err != nil {
			return nil, nil, err
		}
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no java files found in %v", p.SourceDirPaths())
	}

	var externals []string
	if cp != nil {
		var err error
		if externals, err = cp.ClassNames(); err != nil {
			return nil, nil, err
		}
	}

	// Files that fail to parse are logged by source.Load and left out.
	u, _ := source.Load(files, externals)
	return u, java.NewCodec(u), nil
}

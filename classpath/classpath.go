// Package classpath loads compiled classes from directories and jar files.
package classpath

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhamidi/scribe/classfile"
	"github.com/dhamidi/scribe/java"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("scribe.classpath")

var ErrNotFound = errors.New("class not found on classpath")

// Loader fetches the bytes of a compiled class by its internal name,
// e.g. "com/example/Outer$1".
type Loader interface {
	LoadCompiledBytes(internalName string) ([]byte, error)
}

type entry interface {
	load(internalName string) ([]byte, error)
	classNames() ([]string, error)
	close() error
}

// Classpath searches its entries in order, like the JVM does.
type Classpath struct {
	entries []entry
}

// Open opens class directories and .jar or .zip archives. Missing
// entries are skipped with a warning.
func Open(paths []string) (*Classpath, error) {
	cp := &Classpath{}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			log.Warningf("skipping classpath entry %s: %s", path, err)
			continue
		}
		if info.IsDir() {
			cp.entries = append(cp.entries, dirEntry{root: path})
			continue
		}
		jar, err := openJar(path)
		if err != nil {
			cp.Close()
			return nil, err
		}
		cp.entries = append(cp.entries, jar)
	}
	return cp, nil
}

func (cp *Classpath) Close() error {
	var errs []error
	for _, e := range cp.entries {
		errs = append(errs, e.close())
	}
	return errors.Join(errs...)
}

func (cp *Classpath) LoadCompiledBytes(internalName string) ([]byte, error) {
	for _, e := range cp.entries {
		data, err := e.load(internalName)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return data, err
	}
	return nil, fmt.Errorf("%s: %w", internalName, ErrNotFound)
}

func (cp *Classpath) Load(internalName string) (*classfile.ClassFile, error) {
	data, err := cp.LoadCompiledBytes(internalName)
	if err != nil {
		return nil, err
	}
	cf, err := classfile.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", internalName, err)
	}
	return cf, nil
}

// ClassNames lists the internal names of every class on the classpath,
// sorted and without duplicates.
func (cp *Classpath) ClassNames() ([]string, error) {
	seen := map[string]bool{}
	var names []string
	for _, e := range cp.entries {
		list, err := e.classNames()
		if err != nil {
			return nil, err
		}
		for _, name := range list {
			base := name[strings.LastIndexByte(name, '/')+1:]
			if base == "module-info" || base == "package-info" || strings.HasPrefix(name, "META-INF/") {
				continue
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadEntity loads the compiled bytes of a declared class.
func LoadEntity(loader Loader, codec *java.Codec, id java.ClassID) ([]byte, error) {
	name, err := codec.InternalName(id)
	if err != nil {
		return nil, err
	}
	return loader.LoadCompiledBytes(name)
}

type dirEntry struct {
	root string
}

func (d dirEntry) load(internalName string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(internalName)+".class"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (d dirEntry) classNames() ([]string, error) {
	var names []string
	err := filepath.WalkDir(d.root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() || !strings.HasSuffix(path, ".class") {
			return nil
		}
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		names = append(names, strings.TrimSuffix(filepath.ToSlash(rel), ".class"))
		return nil
	})
	return names, err
}

func (d dirEntry) close() error { return nil }

type jarEntry struct {
	path   string
	reader *zip.ReadCloser
	files  map[string]*zip.File
}

func openJar(path string) (*jarEntry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open jar %s: %w", path, err)
	}
	jar := &jarEntry{path: path, reader: r, files: map[string]*zip.File{}}
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, ".class") && !strings.HasPrefix(f.Name, "META-INF/") {
			jar.files[strings.TrimSuffix(f.Name, ".class")] = f
		}
	}
	log.Debugf("opened %s with %d classes", path, len(jar.files))
	return jar, nil
}

func (j *jarEntry) load(internalName string) ([]byte, error) {
	f, ok := j.files[internalName]
	if !ok {
		return nil, ErrNotFound
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in %s: %w", f.Name, j.path, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (j *jarEntry) classNames() ([]string, error) {
	names := make([]string, 0, len(j.files))
	for name := range j.files {
		names = append(names, name)
	}
	return names, nil
}

func (j *jarEntry) close() error {
	return j.reader.Close()
}

package classpath

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dhamidi/scribe/classfile/classfiletest"
)

func writeClass(t *testing.T, root, internalName string, data []byte) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(internalName)+".class")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func writeJar(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip Create() error = %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("zip Write() error = %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close() error = %v", err)
	}
}

func TestClasspathLoad(t *testing.T) {
	dir := t.TempDir()
	classes := filepath.Join(dir, "classes")
	writeClass(t, classes, "p/A", classfiletest.New("p/A").Bytes())
	writeClass(t, classes, "p/A$1", classfiletest.New("p/A$1").Bytes())

	jar := filepath.Join(dir, "lib.jar")
	writeJar(t, jar, map[string][]byte{
		"q/B.class":                      classfiletest.New("q/B").Bytes(),
		"p/A.class":                      classfiletest.New("p/Shadowed").Bytes(),
		"q/package-info.class":           classfiletest.New("q/package-info").Bytes(),
		"META-INF/MANIFEST.MF":           []byte("Manifest-Version: 1.0\n"),
		"META-INF/versions/11/q/B.class": classfiletest.New("q/B").Bytes(),
		"module-info.class":              classfiletest.New("module-info").Bytes(),
	})

	cp, err := Open([]string{classes, filepath.Join(dir, "missing"), jar})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cp.Close()

	cf, err := cp.Load("p/A")
	if err != nil {
		t.Fatalf("Load(p/A) error = %v", err)
	}
	if got := cf.ClassName(); got != "p/A" {
		t.Errorf("Load(p/A) found %q, want the directory entry first", got)
	}

	cf, err = cp.Load("q/B")
	if err != nil {
		t.Fatalf("Load(q/B) error = %v", err)
	}
	if got := cf.ClassName(); got != "q/B" {
		t.Errorf("Load(q/B).ClassName() = %q", got)
	}

	if _, err := cp.Load("r/C"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(r/C) error = %v, want ErrNotFound", err)
	}
	if _, err := cp.Load("META-INF/versions/11/q/B"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(META-INF/versions/11/q/B) error = %v, want ErrNotFound", err)
	}

	names, err := cp.ClassNames()
	if err != nil {
		t.Fatalf("ClassNames() error = %v", err)
	}
	want := []string{"p/A", "p/A$1", "q/B"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ClassNames() = %v, want %v", names, want)
	}
}

func TestOpenBadJar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jar")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open([]string{path}); err == nil {
		t.Error("Open() should fail on a corrupt archive")
	}
}

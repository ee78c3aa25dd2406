package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Found {
		t.Error("Found should be false without scribe.toml")
	}
	if want := []string{"src"}; !reflect.DeepEqual(p.Source.Dirs, want) {
		t.Errorf("Source.Dirs = %v, want %v", p.Source.Dirs, want)
	}
	if p.LogFile() != nil {
		t.Error("LogFile() should be nil by default")
	}

	if err := os.MkdirAll(filepath.Join(dir, "src", "main", "java"), 0o755); err != nil {
		t.Fatal(err)
	}
	p, err = Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := []string{filepath.Join("src", "main", "java")}; !reflect.DeepEqual(p.Source.Dirs, want) {
		t.Errorf("Source.Dirs = %v, want %v", p.Source.Dirs, want)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `
[source]
dirs = ["java"]

[classpath]
entries = ["build/classes", "lib/*.jar"]

[log]
verbosity = 2
file = "scribe.log"
`)
	writeFile(t, filepath.Join(dir, "lib", "a.jar"), "")
	writeFile(t, filepath.Join(dir, "lib", "b.jar"), "")
	writeFile(t, filepath.Join(dir, "java", "p", "A.java"), "package p; class A {}")
	writeFile(t, filepath.Join(dir, "java", "p", "notes.txt"), "")

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !p.Found || p.Log.Verbosity != 2 {
		t.Errorf("Load() = %+v", p)
	}
	if got := *p.LogFile(); got != filepath.Join(p.RootDir, "scribe.log") {
		t.Errorf("LogFile() = %q", got)
	}

	cp, err := p.ClasspathPaths()
	if err != nil {
		t.Fatalf("ClasspathPaths() error = %v", err)
	}
	want := []string{
		filepath.Join(p.RootDir, "build", "classes"),
		filepath.Join(p.RootDir, "lib", "a.jar"),
		filepath.Join(p.RootDir, "lib", "b.jar"),
	}
	if !reflect.DeepEqual(cp, want) {
		t.Errorf("ClasspathPaths() = %v, want %v", cp, want)
	}

	files, err := p.JavaFiles()
	if err != nil {
		t.Fatalf("JavaFiles() error = %v", err)
	}
	if want := []string{filepath.Join(p.RootDir, "java", "p", "A.java")}; !reflect.DeepEqual(files, want) {
		t.Errorf("JavaFiles() = %v, want %v", files, want)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[source\n")
	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on malformed TOML")
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[source]\ndirs = [\"code\"]\n")
	nested := filepath.Join(dir, "code", "p")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	p, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad() error = %v", err)
	}
	abs, _ := filepath.Abs(dir)
	if p.RootDir != abs || !p.Found {
		t.Errorf("FindAndLoad() root = %q, found = %v; want %q", p.RootDir, p.Found, abs)
	}
	if want := []string{filepath.Join(abs, "code")}; !reflect.DeepEqual(p.SourceDirPaths(), want) {
		t.Errorf("SourceDirPaths() = %v, want %v", p.SourceDirPaths(), want)
	}
}

package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/scribe/java/source"
	"github.com/dhamidi/scribe/project"
)

const mainSource = `package p;

public class Main {
    private int count;

    public Main(int count) {}

    void run(String name) {
        Runnable r = new Runnable() {
            public void run() {}
        };
    }
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestCodebase(t *testing.T) (*Codebase, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "src", "p", "Main.java")
	writeFile(t, path, mainSource)

	p, err := project.Load(dir)
	if err != nil {
		t.Fatalf("project.Load() error = %v", err)
	}
	c := New(p, nil)
	if err := c.ScanAll(); err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}
	return c, path
}

// position returns the 1-based line and column of the first occurrence
// of needle in mainSource.
func position(t *testing.T, needle string) (int, int) {
	t.Helper()
	offset := strings.Index(mainSource, needle)
	if offset < 0 {
		t.Fatalf("%q not in source", needle)
	}
	before := mainSource[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndex(before, "\n")
	return line, col
}

func TestDescribeAt(t *testing.T) {
	c, path := newTestCodebase(t)
	s := c.Snapshot()

	tests := []struct {
		needle string
		kind   source.DeclarationKind
		key    string
	}{
		{"Main {", source.DeclarationClass, "p/Main"},
		{"count;", source.DeclarationField, "p/Main.count:I"},
		{"Main(int", source.DeclarationMethod, "p/Main.<init>(I)V"},
		{"run(String", source.DeclarationMethod, "p/Main.run(Ljava/lang/String;)V"},
		{"run() {}", source.DeclarationMethod, "p/Main$1.run()V"},
	}
	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			line, col := position(t, tt.needle)
			d, ok := s.DescribeAt(path, line, col)
			if !ok {
				t.Fatalf("DescribeAt(%d, %d) found nothing", line, col)
			}
			if d.Err != nil {
				t.Fatalf("DescribeAt() error = %v", d.Err)
			}
			if d.Kind != tt.kind || d.Key() != tt.key {
				t.Errorf("DescribeAt() = %v %q, want %v %q", d.Kind, d.Key(), tt.kind, tt.key)
			}
		})
	}
}

func TestMapJavadocSurvivesRebuild(t *testing.T) {
	c, path := newTestCodebase(t)
	line, col := position(t, "run(String")

	if err := c.Snapshot().MapJavadoc(path, line, col, "Runs.\n@param name who"); err != nil {
		t.Fatalf("MapJavadoc() error = %v", err)
	}
	if err := c.Snapshot().MapParameter(path, line, col, 0, "who"); err != nil {
		t.Fatalf("MapParameter() error = %v", err)
	}

	// A comment above the class shifts every position by one line.
	if err := c.UpdateFile(path, []byte("// header\n"+mainSource)); err != nil {
		t.Fatalf("UpdateFile() error = %v", err)
	}
	d, ok := c.Snapshot().DescribeAt(path, line+1, col)
	if !ok {
		t.Fatal("DescribeAt() found nothing after the edit")
	}
	if want := "/**\nRuns.\n@param who who\n*/"; d.Javadoc != want {
		t.Errorf("Javadoc = %q, want %q", d.Javadoc, want)
	}
	if len(d.Parameters) != 1 || d.Parameters[0] != "who" {
		t.Errorf("Parameters = %v, want [who]", d.Parameters)
	}
	if !strings.Contains(d.Markdown(), "`p/Main.run(Ljava/lang/String;)V`") {
		t.Errorf("Markdown() = %q", d.Markdown())
	}
}

func TestUpdateFileKeepsLastGoodParse(t *testing.T) {
	c, path := newTestCodebase(t)
	if err := c.UpdateFile(path, []byte("package p; class {")); err == nil {
		t.Fatal("UpdateFile() should report the syntax error")
	}
	if f := c.GetFile(path); f.ParseErr == nil || f.Parsed == nil {
		t.Errorf("GetFile() = %+v, want the error and the previous parse", f)
	}
	line, col := position(t, "Main {")
	if _, ok := c.Snapshot().DescribeAt(path, line, col); !ok {
		t.Error("the previous version should still be described")
	}

	c.RemoveFile(path)
	if _, ok := c.Snapshot().DescribeAt(path, line, col); ok {
		t.Error("a removed file should not be described")
	}
}

func TestWatcherScan(t *testing.T) {
	dir := t.TempDir()
	p, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	c := New(p, nil)
	w := NewFileWatcher(c)

	path := filepath.Join(dir, "src", "q", "A.java")
	writeFile(t, path, "package q; public class A {}")
	w.scan()
	if _, ok := c.Snapshot().Codec.FindClass("q.A"); !ok {
		t.Fatal("scan() should pick up a new file")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if _, ok := c.Snapshot().Codec.FindClass("q.A"); ok {
		t.Error("scan() should drop a removed file")
	}
}

func TestWatcherLeavesOpenFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src", "q", "A.java")
	writeFile(t, path, "package q; public class A {}")
	p, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	c := New(p, nil)
	if err := c.OpenFile(path, []byte("package q; public class B {}")); err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	w := NewFileWatcher(c)
	w.scan()
	if _, ok := c.Snapshot().Codec.FindClass("q.B"); !ok {
		t.Error("scan() should keep the open buffer")
	}
	if _, ok := c.Snapshot().Codec.FindClass("q.A"); ok {
		t.Error("scan() should not load the disk version of an open file")
	}

	c.CloseFile(path)
	if _, ok := c.Snapshot().Codec.FindClass("q.A"); !ok {
		t.Error("CloseFile() should reload the disk version")
	}

	c.OpenFile(path, []byte("package q; public class B {}"))
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if _, ok := c.Snapshot().Codec.FindClass("q.B"); !ok {
		t.Error("scan() should not drop an open file removed from disk")
	}
	c.CloseFile(path)
	if _, ok := c.Snapshot().Codec.FindClass("q.B"); ok {
		t.Error("CloseFile() should drop a file missing on disk")
	}
}

func TestWatcherSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src", "q", "A.java")
	writeFile(t, path, "package q; public class A {}")
	p, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	c := New(p, nil)
	if err := c.ScanAll(); err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}

	w := NewFileWatcher(c)
	w.seed()
	if _, ok := w.modTimes[path]; !ok {
		t.Fatalf("seed() should record %s", path)
	}

	// A buffer that differs from disk stays until the file changes.
	c.UpdateFile(path, []byte("package q; public class B {}"))
	w.scan()
	if _, ok := c.Snapshot().Codec.FindClass("q.B"); !ok {
		t.Error("scan() should not rescan files unchanged since seed()")
	}
}

func TestArgs(t *testing.T) {
	args := []any{"file:///tmp/A.java", float64(3), 4, true}
	if s, err := argString(args, 0); err != nil || s != "file:///tmp/A.java" {
		t.Errorf("argString(0) = %q, %v", s, err)
	}
	if n, err := argInt(args, 1); err != nil || n != 3 {
		t.Errorf("argInt(1) = %d, %v", n, err)
	}
	if n, err := argInt(args, 2); err != nil || n != 4 {
		t.Errorf("argInt(2) = %d, %v", n, err)
	}
	if _, err := argInt(args, 3); err == nil {
		t.Error("argInt(3) should reject a bool")
	}
	if _, err := argString(args, 9); err == nil {
		t.Error("argString(9) should report a missing argument")
	}
	if path, _ := uriToPath("file:///tmp/A.java"); path != "/tmp/A.java" {
		t.Errorf("uriToPath() = %q", path)
	}
}

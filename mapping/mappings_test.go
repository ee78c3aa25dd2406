package mapping

import (
	"testing"

	"github.com/dhamidi/scribe/java"
	"github.com/dhamidi/scribe/java/source"
)

const mappingSource = `
package p;

public class Outer {
    class Inner {
        Inner(int a, long b, String c) {}
    }

    static <T> T pick(T first, double weight) { return first; }

    int count;
}
`

func mappingFixture(t *testing.T) (*source.Universe, *java.Codec) {
	t.Helper()
	b := source.NewBuilder()
	if err := b.AddSource("p/Outer.java", []byte(mappingSource)); err != nil {
		t.Fatalf("AddSource() error = %v", err)
	}
	u := b.Build()
	return u, java.NewCodec(u)
}

func findMethod(t *testing.T, u *source.Universe, codec *java.Codec, binaryName, name string) java.MethodEntity {
	t.Helper()
	id, ok := codec.FindClass(binaryName)
	if !ok {
		t.Fatalf("FindClass(%s) failed", binaryName)
	}
	for _, m := range u.Methods(id) {
		if java.InternalMethodName(m) == name {
			return m
		}
	}
	t.Fatalf("%s has no method %s", binaryName, name)
	return java.MethodEntity{}
}

func TestMappingsKeys(t *testing.T) {
	u, codec := mappingFixture(t)
	ctor := findMethod(t, u, codec, "p.Outer$Inner", "<init>")
	m := For(New(), codec)

	if err := m.SetParameterName(ctor, 1, "size"); err != nil {
		t.Fatalf("SetParameterName() error = %v", err)
	}
	md, ok := m.Store().Method("p/Outer$Inner", "<init>", "(Lp/Outer;IJLjava/lang/String;)V")
	if !ok {
		t.Fatal("the store should be keyed by internal name and descriptor")
	}
	p, ok := md.Parameter(3)
	if !ok || p.Name != "size" {
		t.Errorf("parameter in slot 3 = %+v, %v; want size", p, ok)
	}

	if got := m.ParameterName(ctor, 1); got != "size" {
		t.Errorf("ParameterName(1) = %q, want size", got)
	}
	if got := m.ParameterName(ctor, 2); got != "c" {
		t.Errorf("ParameterName(2) = %q, want the declared name c", got)
	}
	if err := m.SetParameterName(ctor, 3, "x"); err == nil {
		t.Error("SetParameterName() should reject an out of range parameter")
	}
}

func TestMappingsMethodJavadoc(t *testing.T) {
	u, codec := mappingFixture(t)
	pick := findMethod(t, u, codec, "p.Outer", "pick")
	m := For(New(), codec)

	if got := m.MethodJavadoc(pick); got != "" {
		t.Errorf("MethodJavadoc() = %q before any mapping", got)
	}
	if err := m.SetParameterName(pick, 1, "w"); err != nil {
		t.Fatal(err)
	}
	if err := m.SetMethodJavadoc(pick, "Picks one.\n@param first the candidate\n@param w its weight"); err != nil {
		t.Fatalf("SetMethodJavadoc() error = %v", err)
	}

	want := "/**\nPicks one.\n@param first the candidate\n@param w its weight\n*/"
	if got := m.MethodJavadoc(pick); got != want {
		t.Errorf("MethodJavadoc() = %q, want %q", got, want)
	}

	md, _ := m.Method(pick)
	if md.Descriptor != "(Ljava/lang/Object;D)Ljava/lang/Object;" {
		t.Errorf("Descriptor = %q", md.Descriptor)
	}
	if p, _ := md.Parameter(0); p.Name != "" || p.Javadoc != "the candidate" {
		t.Errorf("slot 0 = %+v, want an unnamed documented parameter", p)
	}
}

func TestMappingsClassAndField(t *testing.T) {
	u, codec := mappingFixture(t)
	outer, _ := codec.FindClass("p.Outer")
	count := u.Fields(outer)[0]
	m := For(New(), codec)

	if err := m.SetClassJavadoc(outer, "The outer class."); err != nil {
		t.Fatal(err)
	}
	if err := m.SetFieldJavadoc(count, "How many."); err != nil {
		t.Fatal(err)
	}
	if got := m.ClassJavadoc(outer); got != "/**\nThe outer class.\n*/" {
		t.Errorf("ClassJavadoc() = %q", got)
	}
	if got := m.FieldJavadoc(count); got != "/**\nHow many.\n*/" {
		t.Errorf("FieldJavadoc() = %q", got)
	}
	f, _ := m.Store().Field("p/Outer", "count")
	if f.Descriptor != "I" {
		t.Errorf("field descriptor = %q, want I", f.Descriptor)
	}
}

package mapping

import (
	"reflect"
	"testing"
)

func TestStoreClassJavadoc(t *testing.T) {
	s := New()
	if s.Modified() {
		t.Fatal("new store should not be modified")
	}
	s.SetClassJavadoc("com/example/Outer", "  First line\nSecond line \n")

	c, ok := s.Class("com/example/Outer")
	if !ok {
		t.Fatal("Class() should find the mapped class")
	}
	want := []string{"First line", "Second line"}
	if !reflect.DeepEqual(c.Javadoc, want) {
		t.Errorf("Javadoc = %q, want %q", c.Javadoc, want)
	}
	if !s.Modified() {
		t.Error("store should be modified after an edit")
	}
	s.ClearModified()
	if s.Modified() {
		t.Error("ClearModified() should reset the flag")
	}

	s.SetClassJavadoc("com/example/Outer", "   ")
	c, _ = s.Class("com/example/Outer")
	if c.Javadoc != nil {
		t.Errorf("blank text should clear the javadoc, got %q", c.Javadoc)
	}
}

func TestStoreMethodJavadoc(t *testing.T) {
	s := New()
	s.SetParameterName("A", "run", "(IJ)V", 1, "count")
	s.SetParameterName("A", "run", "(IJ)V", 2, "total")
	s.SetMethodJavadoc("A", "run", "(IJ)V", "Runs it.\n@param count how many\n@param\n@param missing nobody\nDone.")

	m, ok := s.Method("A", "run", "(IJ)V")
	if !ok {
		t.Fatal("Method() should find the mapped method")
	}
	if want := []string{"Runs it.", "Done."}; !reflect.DeepEqual(m.Javadoc, want) {
		t.Errorf("Javadoc = %q, want %q", m.Javadoc, want)
	}
	want := []ParameterData{
		{Index: 1, Name: "count", Javadoc: "how many"},
		{Index: 2, Name: "total"},
	}
	if !reflect.DeepEqual(m.Parameters, want) {
		t.Errorf("Parameters = %+v, want %+v", m.Parameters, want)
	}

	got := RenderMethod(m, nil)
	if wantDoc := "/**\nRuns it.\nDone.\n@param count how many\n*/"; got != wantDoc {
		t.Errorf("RenderMethod() = %q, want %q", got, wantDoc)
	}

	s.SetMethodJavadoc("A", "run", "(IJ)V", "Replaced.")
	m, _ = s.Method("A", "run", "(IJ)V")
	if p, _ := m.Parameter(1); p.Javadoc != "" {
		t.Errorf("parameter javadoc should be cleared, got %q", p.Javadoc)
	}
}

func TestStoreParametersSorted(t *testing.T) {
	s := New()
	for _, slot := range []int{5, 1, 3} {
		s.SetParameterJavadoc("A", "f", "(IJI)V", slot, "doc")
	}
	m, _ := s.Method("A", "f", "(IJI)V")
	var got []int
	for _, p := range m.Parameters {
		got = append(got, p.Index)
	}
	if want := []int{1, 3, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("parameter slots = %v, want %v", got, want)
	}
}

func TestStoreLookupsReturnCopies(t *testing.T) {
	s := New()
	s.SetFieldJavadoc("A", "count", "I", "The count.")
	f, ok := s.Field("A", "count")
	if !ok {
		t.Fatal("Field() should find the mapped field")
	}
	f.Javadoc[0] = "changed"

	f, _ = s.Field("A", "count")
	if f.Javadoc[0] != "The count." {
		t.Errorf("store was changed through a copy: %q", f.Javadoc[0])
	}
	if _, ok := s.Field("A", "other"); ok {
		t.Error("Field() should miss an unmapped field")
	}
	if _, ok := s.Method("B", "f", "()V"); ok {
		t.Error("Method() should miss an unmapped class")
	}
	if got := s.ClassNames(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("ClassNames() = %v", got)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"empty", nil, ""},
		{"one line", []string{"Hello."}, "/**\nHello.\n*/"},
		{"two lines", []string{"Hello.", "World."}, "/**\nHello.\nWorld.\n*/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.lines); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

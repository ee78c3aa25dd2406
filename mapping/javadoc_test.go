package mapping

import (
	"reflect"
	"testing"
)

func TestCommentLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"plain", "First.\nSecond.", []string{"First.", "Second."}},
		{"one line comment", "/** Short. */", []string{"Short."}},
		{
			"block comment",
			"/**\n * Does things.\n *\n *   indented\n * @param x the x\n */",
			[]string{"Does things.", "", "  indented", "@param x the x"},
		},
		{"no prefix", "/**\nBare line\n*/", []string{"Bare line"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commentLines(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("commentLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetMethodJavadocFromComment(t *testing.T) {
	s := New()
	s.SetParameterName("A", "f", "(I)V", 1, "x")
	s.SetMethodJavadoc("A", "f", "(I)V", RenderMethod(MethodData{
		Javadoc:    []string{"Sets x."},
		Parameters: []ParameterData{{Index: 1, Name: "x", Javadoc: "the value"}},
	}, nil))

	m, _ := s.Method("A", "f", "(I)V")
	if want := []string{"Sets x."}; !reflect.DeepEqual(m.Javadoc, want) {
		t.Errorf("Javadoc = %q, want %q", m.Javadoc, want)
	}
	if p, _ := m.Parameter(1); p.Javadoc != "the value" {
		t.Errorf("parameter javadoc = %q, want %q", p.Javadoc, "the value")
	}
}

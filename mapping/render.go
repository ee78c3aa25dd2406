package mapping

import (
	"strings"
)

// Render formats javadoc lines as a doc comment, or returns "" when there
// are none.
func Render(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return "/**\n" + strings.Join(lines, "\n") + "\n*/"
}

// RenderMethod formats the documentation of a method followed by one
// @param line per documented parameter. Parameters without a mapped name
// are named by sourceName, which receives the JVM slot.
func RenderMethod(m MethodData, sourceName func(index int) string) string {
	if !m.hasDocs() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("/**\n")
	sb.WriteString(strings.Join(m.Javadoc, "\n"))
	for _, p := range m.Parameters {
		if p.Javadoc == "" {
			continue
		}
		name := p.Name
		if name == "" && sourceName != nil {
			name = sourceName(p.Index)
		}
		sb.WriteString("\n@param ")
		sb.WriteString(name)
		sb.WriteString(" ")
		sb.WriteString(p.Javadoc)
	}
	sb.WriteString("\n*/")
	return sb.String()
}

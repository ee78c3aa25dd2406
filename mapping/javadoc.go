package mapping

import (
	"strings"
)

// commentLines returns the lines of text with doc comment syntax removed.
// Text that is not a doc comment is split as is, so both a pasted
// "/** ... */" block and plain lines are accepted.
func commentLines(text string) []string {
	text = strings.TrimSpace(text)
	body, ok := strings.CutPrefix(text, "/**")
	if !ok {
		return strings.Split(text, "\n")
	}
	body = strings.TrimSuffix(body, "*/")

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		lines = append(lines, strings.TrimRight(skipLinePrefix(line), " \t"))
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// skipLinePrefix removes leading whitespace and a single asterisk, plus
// the space after it.
func skipLinePrefix(line string) string {
	line = strings.TrimLeft(line, " \t")
	if rest, ok := strings.CutPrefix(line, "*"); ok {
		return strings.TrimPrefix(rest, " ")
	}
	return line
}

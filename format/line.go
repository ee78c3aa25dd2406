package format

import (
	"fmt"
	"io"
	"strings"
)

// LineEncoder writes one tab separated line per record.
type LineEncoder struct {
	w       io.Writer
	records []Record
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(records []Record) error {
	e.records = records
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, r := range e.records {
		name := r.Name
		if r.Error != "" {
			name = "error: " + r.Error
		}
		fmt.Fprintf(&sb, "%s:%d:%d\t%s\t%s\n", r.File, r.Line, r.Column, r.Kind, name)
	}
	return []byte(sb.String()), nil
}

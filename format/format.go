// Package format writes declaration names for the command line.
package format

import (
	"encoding"
	"io"
)

// Record is one declaration with its byte-code name.
type Record struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Kind   string `json:"kind"`
	// Name is "Outer$1", "Outer.run()V" or "Outer.count:I". It is empty
	// when Error is set.
	Name  string `json:"name,omitempty"`
	Error string `json:"error,omitempty"`
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(records []Record) error
}

// New returns the encoder for a format name: "line" or "json".
func New(name string, w io.Writer) (Encoder, bool) {
	switch name {
	case "line":
		return NewLineEncoder(w), true
	case "json":
		return NewJSONEncoder(w), true
	}
	return nil, false
}

package format

import (
	"encoding/json"
	"io"
)

type JSONEncoder struct {
	w       io.Writer
	records []Record
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(records []Record) error {
	e.records = records
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	records := e.records
	if records == nil {
		records = []Record{}
	}
	return json.MarshalIndent(records, "", "  ")
}

package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is a string field decoded leniently: JSON strings, numbers and booleans
// are kept as their literal text, null becomes empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		// Nested values are not meaningful for a flat lead record.
		*t = ""
		return nil
	}
	*t = Text(strings.TrimSpace(string(data)))
	return nil
}

func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

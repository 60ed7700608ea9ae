// Package parse pulls candidate lead records out of model output.
//
// Parsing never fails: output that holds no usable JSON array yields an
// empty slice, so the pipeline degrades to "no leads found".
package parse

import (
	"encoding/json"
	"strings"

	"github.com/jimezsa/creatorleads/internal/models"
)

// Leads decodes raw lead records from text. With strict set the text is
// expected to be a bare JSON array; otherwise the first balanced array of
// objects is located and surrounding prose is discarded.
func Leads(text string, strict bool) []models.RawLead {
	text = stripCodeFence(text)
	if strict {
		if leads, ok := decodeArray(text); ok {
			return leads
		}
	}

	candidate, ok := FindArray(text)
	if !ok {
		return []models.RawLead{}
	}
	leads, ok := decodeArray(candidate)
	if !ok {
		return []models.RawLead{}
	}
	return leads
}

// decodeArray decodes a JSON array element by element so one malformed
// entry does not discard its siblings.
func decodeArray(text string) ([]models.RawLead, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &items); err != nil {
		return nil, false
	}

	leads := make([]models.RawLead, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(string(item))
		if !strings.HasPrefix(trimmed, "{") {
			continue
		}
		var lead models.RawLead
		if err := json.Unmarshal(item, &lead); err != nil {
			continue
		}
		leads = append(leads, lead)
	}
	return leads, true
}

// FindArray returns the first balanced "[ { ... } ]" substring of text.
// Brackets inside JSON strings are ignored.
func FindArray(text string) (string, bool) {
	for start := strings.IndexByte(text, '['); start >= 0; {
		if startsObject(text[start+1:]) {
			if end, ok := matchBracket(text, start); ok {
				return text[start : end+1], true
			}
		}
		next := strings.IndexByte(text[start+1:], '[')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func startsObject(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	return strings.HasPrefix(rest, "{")
}

// matchBracket finds the index of the ']' closing the '[' at start.
func matchBracket(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				if c != ']' {
					return 0, false
				}
				return i, true
			}
			if depth < 0 {
				return 0, false
			}
		}
	}
	return 0, false
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```JSON")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// Package llmjson extracts JSON payloads from free-form model output.
package llmjson

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoObject is returned when no parseable JSON object is present in the
// text.
var ErrNoObject = errors.New("no JSON object in model output")

// Extract locates the first balanced JSON object in raw and unmarshals it
// into dst. Models occasionally wrap the object in prose or markdown fences,
// so scanning for braces is more reliable than unmarshalling the raw text.
func Extract(raw string, dst any) error {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return ErrNoObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if err := json.Unmarshal([]byte(raw[start:i+1]), dst); err != nil {
					return ErrNoObject
				}
				return nil
			}
		}
	}

	return ErrNoObject
}

package assistant

import "encoding/json"

// ExtractJSON pulls the first balanced JSON object out of free-form model
// output. Best effort: models wrap JSON in prose or code fences, and a
// partial stream may end mid-object. Returns ok=false when no complete
// object is present, never an error.
func ExtractJSON(text string) (json.RawMessage, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
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
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				if json.Valid([]byte(candidate)) {
					return json.RawMessage(candidate), true
				}
				// Malformed despite balanced braces. Restart the
				// scan after this object.
				start = -1
			}
		}
	}
	return nil, false
}

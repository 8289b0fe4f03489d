package llm

import (
	"encoding/json"
	"strings"
)

// extractJSON normalizes model output that should be a JSON object but may
// arrive wrapped in markdown fences or surrounded by commentary. If raw is
// already valid JSON it is returned as-is; otherwise the first balanced
// top-level object or array is extracted. Returns false when no JSON value
// can be found.
func extractJSON(raw json.RawMessage) (json.RawMessage, bool) {
	if json.Valid(raw) {
		return raw, true
	}

	s := strings.TrimSpace(string(raw))

	// Strip a ```json ... ``` fence if present.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
		if json.Valid([]byte(s)) {
			return json.RawMessage(s), true
		}
	}

	// Scan for the first balanced object or array, respecting strings.
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return nil, false
	}
	open := s[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				candidate := s[start : i+1]
				if json.Valid([]byte(candidate)) {
					return json.RawMessage(candidate), true
				}
				return nil, false
			}
		}
	}

	return nil, false
}

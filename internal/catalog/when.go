package catalog

import (
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// literalPattern matches from the first '{' to the last '}' on a single line.
var literalPattern = regexp.MustCompile(`\{.*\}`)

// ExtractWhen pulls the "when" value out of a loosely structured dates blob.
// A nil blob, a blob without a mapping literal, an unparsable literal or a
// mapping without a string "when" key all yield "".
func ExtractWhen(blob *string) string {
	when, _ := ExtractWhenChecked(blob)
	return when
}

// ExtractWhenChecked also reports whether the result is a fallback rather than a parsed value.
func ExtractWhenChecked(blob *string) (string, bool) {
	if blob == nil {
		return "", true
	}

	literal := literalPattern.FindString(*blob)
	if literal == "" {
		return "", true
	}

	m, ok := parseMapping(literal)
	if !ok {
		return "", true
	}

	when, ok := m["when"].(string)
	if !ok {
		return "", true
	}
	return when, false
}

// parseMapping accepts a JSON object or a Python-style dict literal that uses
// single-quoted strings.
func parseMapping(literal string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(literal), &m); err == nil {
		return m, true
	}

	converted, ok := pythonToJSON(literal)
	if !ok {
		return nil, false
	}
	m = nil
	if err := json.Unmarshal([]byte(converted), &m); err != nil {
		return nil, false
	}
	return m, true
}

// pythonToJSON rewrites single-quoted string literals and the None/True/False
// keywords into their JSON spelling, and drops a trailing comma before a
// closing bracket. Anything else is copied through and left for the JSON
// decoder to reject.
func pythonToJSON(s string) (string, bool) {
	b := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			end, body, ok := scanQuoted(s, i)
			if !ok {
				return "", false
			}
			b = append(b, '"')
			b = append(b, body...)
			b = append(b, '"')
			i = end
		case isIdentStart(c):
			j := i
			for j < len(s) && isIdentStart(s[j]) {
				j++
			}
			switch word := s[i:j]; word {
			case "None":
				b = append(b, "null"...)
			case "True":
				b = append(b, "true"...)
			case "False":
				b = append(b, "false"...)
			default:
				b = append(b, word...)
			}
			i = j - 1
		case c == '}' || c == ']':
			b = append(trimTrailingComma(b), c)
		default:
			b = append(b, c)
		}
	}
	return string(b), true
}

// trimTrailingComma removes a comma, and the spaces after it, from the end of b.
func trimTrailingComma(b []byte) []byte {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == '\t') {
		end--
	}
	if end > 0 && b[end-1] == ',' {
		return b[:end-1]
	}
	return b
}

// scanQuoted reads the string literal opening at s[start] and returns the
// index of its closing quote and a JSON-escaped body.
func scanQuoted(s string, start int) (int, string, bool) {
	quote := s[start]
	var body strings.Builder
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			next := s[i+1]
			if next == '\'' {
				body.WriteByte('\'')
			} else {
				body.WriteByte('\\')
				body.WriteByte(next)
			}
			i++
		case c == quote:
			return i, body.String(), true
		case c == '"':
			body.WriteString(`\"`)
		default:
			body.WriteByte(c)
		}
	}
	return 0, "", false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

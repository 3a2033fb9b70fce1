// Package llmjson parses structured JSON artifacts out of free-form LLM
// responses. Models routinely wrap JSON in markdown fences or prose; callers
// get a single strict parse operation and decide their own fallback.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON indicates the response contained no JSON document at all.
var ErrNoJSON = errors.New("no json found in response")

// Extract returns the first balanced JSON object or array embedded in raw,
// after stripping markdown code fences.
func Extract(raw string) (string, error) {
	s := stripFences(raw)
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", ErrNoJSON
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
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("%w: unbalanced document", ErrNoJSON)
}

// Unmarshal extracts the embedded JSON document and decodes it into v.
func Unmarshal(raw string, v any) error {
	doc, err := Extract(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return fmt.Errorf("decode llm json: %w", err)
	}
	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

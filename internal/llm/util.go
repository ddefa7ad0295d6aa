// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"encoding/json"
	"strings"
)

// SanitizeJSON runs the full sanitize-and-repair sequence on raw oracle
// output: strip markdown fences and surrounding prose, drop control
// characters, and if the result still does not parse, truncate at the last
// closing brace and retry once. Returns the parseable document, or ok=false
// when the text is unrecoverable.
func SanitizeJSON(raw string) (string, bool) {
	doc := StripControlChars(CleanJSONBlock(raw))
	if json.Valid([]byte(doc)) {
		return doc, true
	}

	repaired, ok := RepairTruncatedJSON(doc)
	if !ok || !json.Valid([]byte(repaired)) {
		return "", false
	}
	return repaired, true
}

// CleanJSONBlock extracts a JSON document from raw oracle output.
// LLMs often wrap JSON in ```json ... ``` blocks, add conversational
// preamble, or append trailing prose even when instructed not to. The
// result is the first balanced top-level object or array found, or the
// fence-stripped text if no balanced document exists. Applying this twice
// yields the same result as once.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	// Drop preamble/trailing prose around the first balanced document.
	if idx := strings.IndexAny(text, "{["); idx >= 0 {
		candidate := text[idx:]
		var extracted string
		if candidate[0] == '{' {
			extracted = extractJSONObject(candidate)
		} else {
			extracted = extractJSONArray(candidate)
		}
		if extracted != "" {
			return extracted
		}
	}

	return text
}

// StripControlChars removes ASCII control characters that make otherwise
// valid JSON unparseable. Newlines, carriage returns and tabs survive.
func StripControlChars(text string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, text)
}

// RepairTruncatedJSON attempts to recover a parseable document from a
// response cut off mid-generation by truncating at the last closing brace.
// Returns the truncated text and whether a brace was found; the caller must
// still re-parse the result.
func RepairTruncatedJSON(text string) (string, bool) {
	idx := strings.LastIndex(text, "}")
	if idx < 0 {
		return "", false
	}
	return text[:idx+1], true
}

// extractJSONObject returns the balanced object at the start of s,
// or "" if s does not begin with one or it never closes.
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced array at the start of s,
// or "" if s does not begin with one or it never closes.
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, close byte) string {
	if len(s) == 0 || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Braces inside strings don't count
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

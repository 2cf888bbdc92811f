package agent

import (
	"strconv"
	"strings"
)

// extractJSON strips a markdown code fence from a model reply, tolerating
// both ```json and bare ``` fences plus surrounding prose.
func extractJSON(reply string) string {
	text := strings.TrimSpace(reply)
	if i := strings.Index(text, "```json"); i >= 0 {
		text = text[i+len("```json"):]
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
		return strings.TrimSpace(text)
	}
	if i := strings.Index(text, "```"); i >= 0 {
		text = text[i+3:]
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
		return strings.TrimSpace(text)
	}
	return text
}

// cleanFilter treats "null"-ish filter expressions from the model as absent.
func cleanFilter(filter string) string {
	f := strings.TrimSpace(filter)
	if f == "" || strings.Contains(strings.ToLower(f), "null") {
		return ""
	}
	return f
}

// asInt coerces the loosely typed numbers the model emits (number, quoted
// number, null) to an int.
func asInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	case int:
		return n
	}
	return fallback
}

package textutil

import "strings"

// Truncate collapses whitespace runs in s and caps the result at limit runes,
// appending an ellipsis when text was dropped. A limit <= 0 returns the
// collapsed text untouched. Engine stderr can run to many kilobytes; reports
// only ever carry the bounded form.
func Truncate(s string, limit int) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if limit <= 0 {
		return collapsed
	}
	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

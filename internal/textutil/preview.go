package textutil

import "strings"

// Preview collapses runs of whitespace in s into single spaces and cuts the
// result to at most maxLen bytes, appending "..." when anything was dropped.
// The cut never splits a multi-byte UTF-8 sequence.
func Preview(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	cut := max(maxLen, 0)
	for cut > 0 && s[cut]>>6 == 0b10 {
		cut--
	}
	return s[:cut] + "..."
}

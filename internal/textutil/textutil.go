// Package textutil holds small string helpers shared by the log lines.
package textutil

import "unicode/utf8"

// MaxLogRunes is how much of a message or tool payload goes into a log line.
const MaxLogRunes = 180

// Short cuts s to MaxLogRunes runes and marks the cut with "...". The cut
// always lands on a rune boundary.
func Short(s string) string {
	if utf8.RuneCountInString(s) <= MaxLogRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxLogRunes {
			return s[:i] + "..."
		}
		n++
	}
	return s
}

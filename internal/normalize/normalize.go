// Package normalize flattens the irregular whitespace that OCR conversion
// leaves in contract text. Every downstream matcher assumes its output.
package normalize

import (
	"regexp"
	"strings"
)

var (
	horizontalRuns = regexp.MustCompile(`[ \t]+`)
	blankLineRuns  = regexp.MustCompile(`\n{3,}`)
)

// Text converts tabs and carriage returns to spaces, collapses runs of
// horizontal whitespace to a single space, and caps consecutive blank lines at
// two. No content is removed. The function is pure and idempotent.
func Text(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	s = horizontalRuns.ReplaceAllString(s, " ")
	s = blankLineRuns.ReplaceAllString(s, "\n\n")
	return s
}

// Flatten additionally folds newlines into spaces and trims the result. Used
// where a matcher wants one long line, e.g. label look-aheads.
func Flatten(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(horizontalRuns.ReplaceAllString(s, " "))
}

package pipeline

import (
	"path/filepath"
	"regexp"
	"strings"
)

// The process code joins a text file to its database row. Filenames carry it
// in several shapes, so extraction is a best-effort cascade from the most
// specific pattern to the most generic, falling back to the whole stem.
var codePatterns = []*regexp.Regexp{
	regexp.MustCompile(`PROC[_-]?[A-Z0-9\-_/]+`),
	regexp.MustCompile(`[A-Z]{2,}\d{4,}`),
	regexp.MustCompile(`[A-Z0-9\-_/]{6,}`),
}

// Patterns that name the code inside the contract body. Batch runs key
// strictly on the filename so the pending filter and the update hit the same
// row; the body cascade is for callers that have text but no usable filename.
var bodyCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)c[oó]d(?:igo)?\.?\s*(?:del\s+)?proceso[:\s\-]*([A-Z0-9\-_/]{6,})`),
	regexp.MustCompile(`(?i)(?:proc(?:eso)?\s*no\.?|expediente)[:\s\-]*([A-Z0-9\-_/]{6,})`),
}

// CodeFromFilename extracts the process code from a filename, uppercased.
func CodeFromFilename(filename string) string {
	stem := strings.ToUpper(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	for _, re := range codePatterns {
		if m := re.FindString(stem); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return stem
}

// CodeFromText extracts the process code from the document body, falling back
// to the given code when the body never names it.
func CodeFromText(text, fallback string) string {
	for _, re := range bodyCodePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.ToUpper(strings.TrimSpace(m[1]))
		}
	}
	return strings.ToUpper(fallback)
}

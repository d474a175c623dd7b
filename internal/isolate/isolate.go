// Package isolate narrows a multi-thousand-line contract down to the few
// contiguous regions that plausibly describe the contractor. Precision beats
// recall here: a missed span is recoverable by the LLM re-scan of full-text
// chunks, while irrelevant text inflates both regex false positives and
// hallucination risk downstream.
package isolate

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/opencontratos/contratista/internal/model"
)

// Separator joins the surviving spans in the isolated block.
const Separator = "\n\n---\n\n"

// Block is the isolation output.
type Block struct {
	Text     string
	Spans    int  // spans surviving after merging
	Degraded bool // true when no trigger matched and the prefix fallback was used
}

// Isolator slices normalized text down to the contractor-relevant block.
type Isolator struct {
	catalog        []Trigger
	maxBlock       int
	fallbackPrefix int
	mergeGap       int
}

// New creates an isolator with the default trigger catalog.
func New(cfg model.IsolatorConfig) *Isolator {
	return &Isolator{
		catalog:        DefaultCatalog(),
		maxBlock:       cfg.MaxBlock,
		fallbackPrefix: cfg.FallbackPrefix,
		mergeGap:       cfg.MergeGap,
	}
}

type span struct {
	start, end int
}

// Isolate runs every catalog trigger over the text, keeps a context window
// around each match, merges overlapping and near windows, and joins the result
// in document order. Output never exceeds the configured cap and is never
// empty for non-empty input.
func (iso *Isolator) Isolate(text string) Block {
	if text == "" {
		return Block{}
	}

	var spans []span
	for _, t := range iso.catalog {
		for _, loc := range t.Pattern.FindAllStringIndex(text, -1) {
			s := span{start: loc[0] - t.Before, end: loc[1] + t.After}
			if s.start < 0 {
				s.start = 0
			}
			if s.end > len(text) {
				s.end = len(text)
			}
			// Window arithmetic is in bytes; accented text must not be
			// sliced mid-rune.
			s.start = snapToRune(text, s.start)
			s.end = snapToRune(text, s.end)
			spans = mergeOverlapping(spans, s)
		}
	}

	if len(spans) == 0 {
		end := iso.fallbackPrefix
		if end > len(text) {
			end = len(text)
		}
		return Block{Text: text[:snapToRune(text, end)], Spans: 1, Degraded: true}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	// Merge spans separated by less than the proximity threshold, regardless
	// of which trigger produced them.
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start-last.end < iso.mergeGap {
			if s.end > last.end {
				last.end = s.end
			}
		} else {
			merged = append(merged, s)
		}
	}

	parts := make([]string, len(merged))
	for i, s := range merged {
		parts[i] = text[s.start:s.end]
	}
	out := strings.Join(parts, Separator)
	if len(out) > iso.maxBlock {
		out = out[:snapToRune(out, iso.maxBlock)]
	}
	return Block{Text: out, Spans: len(merged)}
}

// snapToRune moves a byte offset left to the nearest rune start.
func snapToRune(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// mergeOverlapping inserts s, folding it into any existing span it overlaps.
// Merging always keeps the union of the extents, never shrinks.
func mergeOverlapping(spans []span, s span) []span {
	for i := range spans {
		if s.end < spans[i].start || s.start > spans[i].end {
			continue
		}
		if s.start < spans[i].start {
			spans[i].start = s.start
		}
		if s.end > spans[i].end {
			spans[i].end = s.end
		}
		return spans
	}
	return append(spans, s)
}

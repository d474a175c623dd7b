// Package extract implements the rule-based candidate cascade: an ordered
// list of independent strategies, each scanning the isolated block (or a
// narrower slice of it) for contractor fields. The driver threads a candidate
// set through the strategies in priority order and stops as soon as every
// field holds a usable value.
package extract

import (
	"regexp"
	"strings"

	"github.com/opencontratos/contratista/internal/model"
	"github.com/opencontratos/contratista/internal/validate"
)

// Source is the read-only input every strategy sees: the isolated block plus
// the full document's line list for the strategies that need document tails.
type Source struct {
	Block string
	Lines []string
}

// NewSource builds a Source from the isolated block and the full text.
func NewSource(block, fullText string) *Source {
	return &Source{Block: block, Lines: strings.Split(fullText, "\n")}
}

// Strategy proposes candidates for fields it knows how to find. It receives
// the current candidate set and returns an updated copy; the driver decides
// which proposals survive. Strategies never mutate the Source.
type Strategy interface {
	Name() string
	Apply(src *Source, cur model.Result) model.Result
}

// Extractor runs the cascade.
type Extractor struct {
	strategies     []Strategy
	replaceOverLen int
}

// New builds the default cascade in its fixed evaluation order.
func New(cfg model.ExtractConfig) *Extractor {
	return &Extractor{
		replaceOverLen: cfg.ReplaceOverLen,
		strategies: []Strategy{
			comparecientesStrategy{},
			labeledEntityStrategy{},
			labeledFieldStrategy{},
			contactSliceStrategy{},
			sectionStrategy{},
			signatureTailStrategy{tailLines: cfg.TailLines},
			rucAnchoredStrategy{weights: DefaultWeights()},
			representativeOverrideStrategy{},
		},
	}
}

var boilerplateCandidate = regexp.MustCompile(`(?i)para\s+todos\s+los\s+efectos`)

// needsReplace flags low-quality values a later strategy may overwrite:
// empty, boilerplate legal phrasing, or suspiciously long fragments.
func (e *Extractor) needsReplace(v string) bool {
	if v == "" {
		return true
	}
	if boilerplateCandidate.MatchString(v) {
		return true
	}
	return len(v) > e.replaceOverLen
}

func (e *Extractor) settled(r model.Result) bool {
	for _, f := range model.Fields {
		if e.needsReplace(r.Get(f)) {
			return false
		}
	}
	return true
}

// Run applies the strategies in order, accepting a proposal only for fields
// that are empty or flagged needs-replace, then passes the surviving
// candidates through the field validator. Strategies after the first one that
// settles every field never run.
func (e *Extractor) Run(src *Source) model.Result {
	var r model.Result
	for _, s := range e.strategies {
		// Strategies skip fields that already hold a value, so flagged
		// fields must be presented as open or no replacement candidate is
		// ever proposed for them.
		view := r
		for _, f := range model.Fields {
			if e.needsReplace(view.Get(f)) {
				view.Set(f, "")
			}
		}
		next := s.Apply(src, view)
		for _, f := range model.Fields {
			v := next.Get(f)
			if v == "" || v == r.Get(f) {
				continue
			}
			if e.needsReplace(r.Get(f)) {
				r.Set(f, v)
			}
		}
		if e.settled(r) {
			break
		}
	}
	return validate.Result(r)
}

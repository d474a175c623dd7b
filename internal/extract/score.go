package extract

import (
	"strings"

	"github.com/opencontratos/contratista/internal/model"
	"github.com/opencontratos/contratista/internal/validate"
)

// Weights tune the context scorer that disambiguates between the contractor's
// tax ID and the contracting entity's when a block carries several 13-digit
// sequences.
type Weights struct {
	ContractorContext  int // generic contractor-side keywords nearby
	ContratistaLiteral int // uppercase CONTRATISTA nearby
	Consorcio          int // consortium mention nearby
	EntityContext      int // contracting-entity keywords nearby (negative)
	ContratanteLiteral int // uppercase CONTRATANTE nearby (negative)
}

// DefaultWeights is the tuning the corpus was calibrated against.
func DefaultWeights() Weights {
	return Weights{
		ContractorContext:  3,
		ContratistaLiteral: 2,
		Consorcio:          1,
		EntityContext:      -3,
		ContratanteLiteral: -2,
	}
}

const scoreRadius = 150

func (w Weights) score(ctx string) int {
	s := 0
	if contractorContext.MatchString(ctx) {
		s += w.ContractorContext
	}
	if literalContratista.MatchString(ctx) {
		s += w.ContratistaLiteral
	}
	if literalConsorcio.MatchString(ctx) {
		s += w.Consorcio
	}
	if entityContext.MatchString(ctx) {
		s += w.EntityContext
	}
	if literalContratante.MatchString(ctx) {
		s += w.ContratanteLiteral
	}
	return s
}

// rucAnchoredStrategy finds every 13-digit sequence, scores its surrounding
// context, and keeps the highest non-negative scorer (ties broken by earliest
// position). The winning context is also mined for a name or company sitting
// next to the RUC label.
type rucAnchoredStrategy struct {
	weights Weights
}

func (rucAnchoredStrategy) Name() string { return "ruc-anchored" }

func (s rucAnchoredStrategy) Apply(src *Source, cur model.Result) model.Result {
	if cur.RUC != "" && cur.Representante != "" && cur.RazonSocial != "" {
		return cur
	}

	best := -1
	bestScore := 0
	locs := rucDigits.FindAllStringIndex(src.Block, -1)
	for i, loc := range locs {
		ctx := contextWindow(src.Block, loc[0], loc[1], scoreRadius)
		// Ties break toward the earliest position; negative scorers are
		// contracting-entity identifiers and never win.
		if sc := s.weights.score(ctx); sc >= 0 && (best < 0 || sc > bestScore) {
			best, bestScore = i, sc
		}
	}
	if best < 0 {
		return cur
	}

	loc := locs[best]
	if cur.RUC == "" {
		cur.RUC = src.Block[loc[0]:loc[1]]
	}

	ctx := contextWindow(src.Block, loc[0], loc[1], scoreRadius*2)
	if cur.Representante == "" {
		if m := nameNearRUC.FindStringSubmatch(ctx); m != nil && !validate.LooksLikeEmployer(m[1]) {
			cur.Representante = m[1]
		} else if m := rucThenName.FindStringSubmatch(ctx); m != nil && !validate.LooksLikeEmployer(m[1]) {
			cur.Representante = m[1]
		}
	}
	if cur.RazonSocial == "" {
		if m := companyNearRUC.FindStringSubmatch(ctx); m != nil && !validate.LooksLikeEmployer(m[1]) {
			cur.RazonSocial = strings.TrimSpace(m[1])
		}
	}
	return cur
}

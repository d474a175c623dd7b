// Package pipeline wires the extraction stages end to end: normalize,
// isolate, rule-based cascade, LLM chunk extraction, validation, and the
// update-only persist. One Pipeline value serves a whole run; per-document
// state lives on the stack.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/opencontratos/contratista/internal/cache"
	"github.com/opencontratos/contratista/internal/extract"
	"github.com/opencontratos/contratista/internal/isolate"
	"github.com/opencontratos/contratista/internal/llm"
	"github.com/opencontratos/contratista/internal/model"
	"github.com/opencontratos/contratista/internal/normalize"
	"github.com/opencontratos/contratista/internal/store"
	"github.com/opencontratos/contratista/internal/validate"
)

// Pipeline orchestrates the complete extraction of one document.
type Pipeline struct {
	isolator  *isolate.Isolator
	extractor *extract.Extractor
	chunker   *llm.ChunkExtractor // nil when no API key is configured
	store     store.ContractStore // nil for extract-only runs
	results   cache.Cache         // nil when caching is disabled
	config    *model.Config
}

// New builds a pipeline from the configuration. The LLM stage is optional:
// without an API key the rule-based cascade still runs. The store is
// optional for extract-only use.
func New(cfg *model.Config, st store.ContractStore) *Pipeline {
	p := &Pipeline{
		isolator:  isolate.New(cfg.Isolator),
		extractor: extract.New(cfg.Extract),
		store:     st,
		config:    cfg,
	}
	if cfg.LLM.APIKey != "" {
		provider, err := llm.NewOpenAIProvider(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: LLM stage disabled: %v\n", err)
		} else {
			p.chunker = llm.NewChunkExtractor(provider, cfg.LLM, cfg.Output.Verbose)
		}
	}
	if cfg.Cache.Enabled {
		p.results = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
	}
	return p
}

// ExtractDocument runs the extraction stages without persisting. The
// rule-based result takes precedence per field; the LLM fills what the rules
// missed, scanning the full normalized text in chunks.
func (p *Pipeline) ExtractDocument(ctx context.Context, doc model.Document) (model.Result, error) {
	key := cache.Key(doc.Text)
	if p.results != nil {
		if data, ok := p.results.Get(key); ok {
			var cached model.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				p.logf("cache hit for %s", doc.Name)
				return cached, nil
			}
		}
	}

	text := normalize.Text(doc.Text)
	block := p.isolator.Isolate(text)
	if block.Degraded {
		p.logf("no trigger matched in %s, using prefix fallback", doc.Name)
	}

	final := p.extractor.Run(extract.NewSource(block.Text, text))

	if p.chunker != nil && !final.Complete() {
		llmResult, err := p.chunker.Extract(ctx, doc.Name, text)
		if err != nil {
			return final, err
		}
		// Field-wise: rules win where they produced a value.
		final = final.Merge(validate.Result(llmResult))
	}

	if p.results != nil {
		if data, err := json.Marshal(final); err == nil {
			_ = p.results.Set(key, data, p.config.Cache.TTL)
		}
	}
	return final, nil
}

// ProcessDocument extracts and persists one document.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc model.Document) model.DocumentResult {
	res := model.DocumentResult{Document: doc}

	result, err := p.ExtractDocument(ctx, doc)
	res.Result = result
	if err != nil {
		res.Outcome = model.OutcomeFailed
		res.Err = err
		return res
	}

	if result.Empty() {
		res.Outcome = model.OutcomeSkipped
		res.Reason = "no contractor data found"
		return res
	}
	if p.store == nil {
		res.Outcome = model.OutcomeSkipped
		res.Reason = "no store configured"
		return res
	}

	outcome, err := p.store.UpdateContractor(ctx, doc.ProcessCode, doc.Name, result)
	if err != nil {
		res.Outcome = model.OutcomeFailed
		res.Err = err
		return res
	}
	switch outcome.Status {
	case store.StatusUpdated:
		res.Outcome = model.OutcomeUpdated
		res.Reason = fmt.Sprintf("%d columns", len(outcome.Columns))
	default:
		res.Outcome = model.OutcomeSkipped
		res.Reason = outcome.Reason
	}
	return res
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

package worker

import (
	"context"

	"github.com/opencontratos/contratista/internal/model"
)

// Processor runs the full pipeline for one document.
type Processor interface {
	ProcessDocument(ctx context.Context, doc model.Document) model.DocumentResult
}

// DocumentJob processes one contract document.
type DocumentJob struct {
	Document  model.Document
	Processor Processor
}

// Execute runs the pipeline for the job's document.
func (j *DocumentJob) Execute(ctx context.Context) Result {
	res := j.Processor.ProcessDocument(ctx, j.Document)
	return &DocumentOutcome{Result: res}
}

// DocumentOutcome wraps a document result for the pool.
type DocumentOutcome struct {
	Result model.DocumentResult
}

// GetError returns the processing error, if any.
func (o *DocumentOutcome) GetError() error {
	return o.Result.Err
}

// BatchProcessor processes documents concurrently up to a fan-out limit.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{processor: processor, concurrency: concurrency}
}

// ProcessDocuments runs every document through the pool and collects the
// outcomes. Order of results is completion order, not submission order;
// callers aggregate by outcome and never rely on position.
func (b *BatchProcessor) ProcessDocuments(ctx context.Context, docs []model.Document) []model.DocumentResult {
	if len(docs) == 0 {
		return nil
	}

	pool := NewPool(ctx, b.concurrency, len(docs))
	pool.Start()

	for _, doc := range docs {
		pool.Submit(&DocumentJob{Document: doc, Processor: b.processor})
	}

	results := pool.Wait()
	out := make([]model.DocumentResult, 0, len(results))
	for _, r := range results {
		if o, ok := r.(*DocumentOutcome); ok {
			out = append(out, o.Result)
		}
	}
	return out
}

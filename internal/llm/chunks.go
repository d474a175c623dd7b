package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/opencontratos/contratista/internal/model"
)

// sleepFunc is the delay between retries (injectable for tests)
var sleepFunc = time.Sleep

// SplitChunks cuts text into consecutive non-overlapping chunks of at most
// size characters; the final chunk may be shorter.
func SplitChunks(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 || len(text) <= size {
		return []string{text}
	}
	chunks := make([]string, 0, len(text)/size+1)
	for start := 0; start < len(text); start += size {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}

// ChunkExtractor runs the chunked extraction loop against a provider.
type ChunkExtractor struct {
	provider    Provider
	limiter     *rate.Limiter
	chunkSize   int
	maxRetries  int
	backoffBase time.Duration
	timeout     time.Duration
	verbose     bool
}

// NewChunkExtractor wires the loop to a provider. The rate limiter is shared
// across all documents going through this extractor.
func NewChunkExtractor(provider Provider, cfg model.LLMConfig, verbose bool) *ChunkExtractor {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &ChunkExtractor{
		provider:    provider,
		limiter:     rate.NewLimiter(rate.Limit(rps), burst),
		chunkSize:   cfg.ChunkSize,
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
		timeout:     cfg.Timeout,
		verbose:     verbose,
	}
}

// Extract splits the text and processes chunks strictly in order: the merge
// rule is first-non-empty-wins, so chunk ordering is a correctness
// requirement, not an optimization. A chunk that fails all retries
// contributes an all-absent result and never aborts the document.
func (e *ChunkExtractor) Extract(ctx context.Context, name, text string) (model.Result, error) {
	var final model.Result
	chunks := SplitChunks(text, e.chunkSize)
	for i, chunk := range chunks {
		partial, err := e.extractChunk(ctx, name, chunk, i+1, len(chunks))
		if err != nil {
			// Context cancellation is the only error that stops the loop.
			if ctx.Err() != nil {
				return final, ctx.Err()
			}
			e.logf("chunk %d/%d of %s failed after %d attempts: %v", i+1, len(chunks), name, e.maxRetries, err)
			continue
		}
		final = final.Merge(partial)
		if final.Complete() {
			break
		}
	}
	return final, nil
}

func (e *ChunkExtractor) extractChunk(ctx context.Context, name, chunk string, num, total int) (model.Result, error) {
	prompt := BuildChunkPrompt(chunk, num, total)

	var lastErr error
	for attempt := 0; attempt < e.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := e.backoffBase * time.Duration(1<<uint(attempt-1))
			e.logf("retry %d/%d for chunk %d/%d of %s after %s", attempt+1, e.maxRetries, num, total, name, backoff)
			sleepFunc(backoff)
		}
		if err := e.limiter.Wait(ctx); err != nil {
			return model.Result{}, err
		}

		callCtx := ctx
		var cancel context.CancelFunc
		if e.timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		}
		completion, err := e.provider.Complete(callCtx, prompt)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			if ctx.Err() != nil {
				return model.Result{}, ctx.Err()
			}
			lastErr = err
			continue
		}

		switch completion.Reason {
		case FailContentFiltered:
			// A hard safety block is no-data for this chunk, not an error.
			e.logf("chunk %d/%d of %s blocked by content filter, skipping", num, total, name)
			return model.Result{}, nil
		case FailEmpty:
			lastErr = fmt.Errorf("empty completion")
			continue
		}
		return ParseResult(completion.Text), nil
	}
	return model.Result{}, lastErr
}

func (e *ChunkExtractor) logf(format string, args ...any) {
	if e.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

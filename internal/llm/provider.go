// Package llm is the hosted-model boundary: a provider interface, the chunked
// extraction loop, and the tolerant response parsing that turns free-form
// model output into a candidate set.
package llm

import "context"

// FailReason classifies why a completion carries no usable text.
type FailReason string

const (
	FailNone            FailReason = ""
	FailContentFiltered FailReason = "content_filtered" // hard safety block, treated as no-data
	FailTruncated       FailReason = "truncated"        // length-limit cut, text may still be parseable
	FailEmpty           FailReason = "empty"            // provider returned no choices or blank text
)

// Completion is one model response.
type Completion struct {
	Text   string
	Reason FailReason
}

// Provider issues one generation request. Implementations must be safe for
// concurrent use; the chunk loop within one document is sequential but
// multiple documents share one provider.
type Provider interface {
	// Name returns the provider name for diagnostics.
	Name() string

	// Complete sends the prompt and returns the raw completion. Transport
	// and quota errors come back as err; content-level failures (safety
	// block, empty choice) come back as a Completion with a FailReason.
	Complete(ctx context.Context, prompt string) (Completion, error)
}

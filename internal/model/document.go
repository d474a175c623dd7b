package model

// Document is one contract text file held in memory for the duration of a
// single extraction run. It is never mutated.
type Document struct {
	Path        string // absolute or relative path of the source file
	Name        string // base filename
	ProcessCode string // join key against the target store
	Text        string // full raw content
}

// Outcome is the single user-visible status of one processed document.
type Outcome string

const (
	OutcomeUpdated Outcome = "updated" // at least one column written
	OutcomeSkipped Outcome = "skipped" // no record in store, or nothing new to write
	OutcomeFailed  Outcome = "failed"  // fatal I/O or schema error
)

// DocumentResult pairs a document with its final outcome.
type DocumentResult struct {
	Document Document
	Result   Result
	Outcome  Outcome
	Reason   string // human-readable detail for skipped/failed
	Err      error
}

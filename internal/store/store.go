// Package store is the persistence boundary: an update-only adapter over the
// externally owned contracts table. The pipeline never creates rows; an
// upstream loader owns inserts and this package only fills contractor columns
// on records that already exist.
package store

import (
	"context"

	"github.com/opencontratos/contratista/internal/model"
)

// UpdateStatus classifies the outcome of one persist call.
type UpdateStatus string

const (
	StatusUpdated UpdateStatus = "updated" // row matched and columns written
	StatusSkipped UpdateStatus = "skipped" // no row for the process code; normal, not an error
)

// UpdateOutcome reports what happened to one record.
type UpdateOutcome struct {
	Status  UpdateStatus
	Reason  string
	Columns []string // column names actually written
}

// ContractStore is what the pipeline needs from the database.
type ContractStore interface {
	// FilterPending returns the subset of process codes that exist in the
	// table and still have both razon_social and ruc empty. Codes with no
	// row and codes already carrying critical data are dropped.
	FilterPending(ctx context.Context, codes []string) ([]string, error)

	// UpdateContractor writes the non-empty fields of the result onto the
	// existing row for the process code. A missing row is a skip, never an
	// error, and never an insert.
	UpdateContractor(ctx context.Context, code, sourceFile string, result model.Result) (UpdateOutcome, error)

	// Close releases the underlying connections.
	Close()
}

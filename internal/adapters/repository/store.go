// Package repository defines the rating store interface, its errors and the
// memory, Postgres and Google Sheets implementations.
package repository

import (
	"context"

	"github.com/okian/pickup/internal/domain/model"
)

// Store provides read/write access to the rating table.
type Store interface {
	// LoadAll returns the full rating table. Failures wrap ErrStoreUnavailable.
	LoadAll(ctx context.Context) (model.Table, error)

	// Upsert writes one rating cell, overwriting any previous value for the
	// same (player, position, user). Repeating the call is a no-op.
	Upsert(ctx context.Context, player string, pos model.Position, user string, r model.Rating) error

	// Close releases the underlying client handle, if any.
	Close() error
}

// Row is one flat rating record as stored by tabular backends.
type Row struct {
	Player   string
	Position model.Position
	User     string
	Rating   model.Rating
}

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSheets   = "sheets"
)

package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for rating store errors.
var (
	ErrStoreUnavailable = errors.New("rating store unavailable")
	ErrMalformedRow     = errors.New("malformed rating row")
	ErrUnknownDriver    = errors.New("unknown store driver")
	ErrClosed           = errors.New("store closed")
)

// unavailable wraps err as a store failure of operation op.
func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// malformed reports a row that could not be parsed. Rows are numbered from 1
// as the backend shows them.
func malformed(row int, err error) error {
	return fmt.Errorf("%w at row %d: %w", ErrMalformedRow, row, err)
}

package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrUnknownRegistry = errors.New("metrics registry is not gatherable")
)

package service

import (
	"errors"
)

// Sentinel kinds for service errors.
var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrNotStarted        = errors.New("service not started")
)

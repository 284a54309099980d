package seeder

import "errors"

// Sentinel kinds for seeding failures.
var (
	ErrUnhealthy = errors.New("service is not healthy")
	ErrSubmit    = errors.New("submission failed")
	ErrMismatch  = errors.New("reported averages do not match")
	ErrStatus    = errors.New("unexpected status code")
)

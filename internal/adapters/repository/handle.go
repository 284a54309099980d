package repository

import (
	"context"
	"sync"
)

// handle is a lazily dialed client owned by exactly one store. The first Get
// dials; a failed dial is retried on the next Get. Close releases the client
// and makes later Gets fail with ErrClosed.
type handle[T any] struct {
	mu      sync.Mutex
	dial    func(ctx context.Context) (T, error)
	release func(T) error
	client  T
	ready   bool
	closed  bool
}

func newHandle[T any](dial func(ctx context.Context) (T, error), release func(T) error) *handle[T] {
	return &handle[T]{dial: dial, release: release}
}

// Get returns the client, dialing it on first use.
func (h *handle[T]) Get(ctx context.Context) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	if h.closed {
		return zero, ErrClosed
	}
	if h.ready {
		return h.client, nil
	}
	c, err := h.dial(ctx)
	if err != nil {
		return zero, err
	}
	h.client = c
	h.ready = true
	return c, nil
}

// Close releases the client if it was dialed.
func (h *handle[T]) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	if !h.ready || h.release == nil {
		return nil
	}
	var zero T
	c := h.client
	h.client = zero
	h.ready = false
	return h.release(c)
}

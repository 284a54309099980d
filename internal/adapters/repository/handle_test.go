package repository

import (
	"context"
	"errors"
	"testing"
)

func TestHandle_DialsOnce(t *testing.T) {
	ctx := context.Background()
	dials := 0
	h := newHandle(func(context.Context) (int, error) {
		dials++
		return 42, nil
	}, nil)

	if dials != 0 {
		t.Fatalf("expected lazy dial, got %d dials at construction", dials)
	}
	for i := 0; i < 3; i++ {
		v, err := h.Get(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 42 {
			t.Errorf("expected 42, got %d", v)
		}
	}
	if dials != 1 {
		t.Errorf("expected 1 dial, got %d", dials)
	}
}

func TestHandle_RetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	attempts := 0
	h := newHandle(func(context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "", boom
		}
		return "ok", nil
	}, nil)

	if _, err := h.Get(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	v, err := h.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if v != "ok" {
		t.Errorf("expected ok, got %q", v)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestHandle_Close(t *testing.T) {
	ctx := context.Background()
	released := 0
	h := newHandle(func(context.Context) (int, error) { return 7, nil }, func(int) error {
		released++
		return nil
	})

	// Closing an undialed handle must not call release.
	if err := h.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if released != 0 {
		t.Errorf("expected no release, got %d", released)
	}
	if _, err := h.Get(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after close, got %v", err)
	}

	h2 := newHandle(func(context.Context) (int, error) { return 7, nil }, func(int) error {
		released++
		return nil
	})
	if _, err := h2.Get(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = h2.Close()
	_ = h2.Close()
	if released != 1 {
		t.Errorf("expected exactly one release, got %d", released)
	}
}

package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTrigger_RunsHooksInReverseOrder(t *testing.T) {
	h := NewHandler(time.Second)

	var order []int
	h.OnShutdown(func(ctx context.Context) error {
		order = append(order, 1)
		return nil
	})
	h.OnShutdown(func(ctx context.Context) error {
		order = append(order, 2)
		return nil
	})

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait() }()

	h.Trigger()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after Trigger")
	}

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Fatalf("hook order = %v, want [2 1]", order)
	}

	select {
	case <-h.Done():
	default:
		t.Fatal("Done() not closed after shutdown")
	}
}

func TestTrigger_Idempotent(t *testing.T) {
	h := NewHandler(time.Second)

	go h.Wait()
	h.Trigger()
	h.Trigger()
}

func TestWait_ReturnsLastHookError(t *testing.T) {
	h := NewHandler(time.Second)

	first := errors.New("first")
	last := errors.New("last")
	h.OnShutdown(func(ctx context.Context) error { return last })
	h.OnShutdown(func(ctx context.Context) error { return first })

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait() }()
	h.Trigger()

	// Hooks run in reverse registration order, so "last" runs last.
	if err := <-errCh; !errors.Is(err, last) {
		t.Fatalf("Wait() error = %v, want %v", err, last)
	}
}

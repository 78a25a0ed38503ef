package shutdown

import (
	"context"
	"errors"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"
)

func recordHooks(h *Handler, n int) (*[]int, *sync.Mutex) {
	order := make([]int, 0, n)
	var mu sync.Mutex
	for i := 1; i <= n; i++ {
		id := i
		h.OnShutdown(func(context.Context) error {
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
			return nil
		})
	}
	return &order, &mu
}

func TestHandler_ShutdownReverseOrderOnce(t *testing.T) {
	h := NewHandler(5 * time.Second)
	order, mu := recordHooks(h, 3)

	if err := h.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := h.Shutdown(); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(*order) != 3 || (*order)[0] != 3 || (*order)[1] != 2 || (*order)[2] != 1 {
		t.Errorf("hooks called as %v, want [3 2 1] once", *order)
	}
}

func TestHandler_ShutdownHookError(t *testing.T) {
	h := NewHandler(5 * time.Second)
	expectedErr := errors.New("hook error")

	h.OnShutdown(func(context.Context) error { return nil })
	h.OnShutdown(func(context.Context) error { return expectedErr })
	h.OnShutdown(func(context.Context) error { return nil })

	if err := h.Shutdown(); err != expectedErr {
		t.Errorf("Shutdown() = %v, want %v", err, expectedErr)
	}
}

func TestHandler_ShutdownDeadline(t *testing.T) {
	h := NewHandler(time.Second)
	h.OnShutdown(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("hook context has no deadline")
		}
		return nil
	})
	_ = h.Shutdown()
}

func TestHandler_WatchSignal(t *testing.T) {
	h := NewHandler(5 * time.Second)
	h.signals = []os.Signal{syscall.SIGUSR1}
	order, mu := recordHooks(h, 2)

	ctx, stop := h.Watch(context.Background())
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatal(err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled after signal")
	}

	// Hooks run only when the caller asks for them.
	mu.Lock()
	if len(*order) != 0 {
		t.Errorf("hooks run on signal: %v, want none before Shutdown", *order)
	}
	mu.Unlock()

	if err := h.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(*order) != 2 {
		t.Errorf("hooks run = %v, want 2 after Shutdown", *order)
	}
}

func TestHandler_WatchStop(t *testing.T) {
	h := NewHandler(5 * time.Second)
	order, mu := recordHooks(h, 1)

	ctx, stop := h.Watch(context.Background())
	stop()
	stop()

	if ctx.Err() == nil {
		t.Error("stop() should cancel the context")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(*order) != 0 {
		t.Error("stop() ran the hooks")
	}
}

func TestHandler_ConcurrentOnShutdown(t *testing.T) {
	h := NewHandler(5 * time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.OnShutdown(func(context.Context) error { return nil })
		}()
	}
	wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.hooks) != 10 {
		t.Errorf("expected 10 hooks, got %d", len(h.hooks))
	}
}

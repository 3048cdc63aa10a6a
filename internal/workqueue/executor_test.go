package workqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apierrors "github.com/styleai/styleai-go/internal/errors"
)

func TestFIFOOrderWithinKey(t *testing.T) {
	e := NewExecutor(Config{Lanes: 4})
	defer e.Stop()

	var mu sync.Mutex
	var order []int
	for i := 0; i < 20; i++ {
		i := i
		err := e.Submit(context.Background(), "same-key", JobFunc(func(context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}))
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if err := e.Barrier(context.Background(), "same-key"); err != nil {
		t.Fatalf("barrier: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 20 {
		t.Fatalf("ran %d jobs, want 20", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order[%d] = %d, FIFO violated: %v", i, v, order)
		}
	}
}

func TestRetryOnRecoverableError(t *testing.T) {
	e := NewExecutor(Config{MaxAttempts: 3, BaseBackoff: time.Millisecond, MaxInterval: 5 * time.Millisecond})
	defer e.Stop()

	var attempts int32
	err := e.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return apierrors.NewHTTPError(503, nil, "flaky op")
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := e.Barrier(context.Background(), "k"); err != nil {
		t.Fatalf("barrier: %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
}

func TestIrrecoverableErrorFailsFast(t *testing.T) {
	var handled atomic.Value
	e := NewExecutor(Config{
		MaxAttempts: 5,
		BaseBackoff: time.Millisecond,
		ErrorHandler: func(err error) {
			handled.Store(err)
		},
	})
	defer e.Stop()

	var attempts int32
	err := e.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return apierrors.NewHTTPError(400, []byte(`{"detail": "bad image"}`), "upload")
	}))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := e.Barrier(context.Background(), "k"); err != nil {
		t.Fatalf("barrier: %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("attempts = %d, want 1 (no retry for 4xx)", got)
	}
	if handled.Load() == nil {
		t.Fatal("error handler not invoked")
	}
}

func TestMaxAttemptsExhausted(t *testing.T) {
	var handled atomic.Value
	e := NewExecutor(Config{
		MaxAttempts:  2,
		BaseBackoff:  time.Millisecond,
		ErrorHandler: func(err error) { handled.Store(err) },
	})
	defer e.Stop()

	var attempts int32
	_ = e.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return apierrors.NewHTTPError(500, nil, "always down")
	}))
	if err := e.Barrier(context.Background(), "k"); err != nil {
		t.Fatalf("barrier: %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Fatalf("attempts = %d, want 2", got)
	}
	if handled.Load() == nil {
		t.Fatal("exhausted retries did not reach the error handler")
	}
}

func TestSubmitAfterStop(t *testing.T) {
	e := NewExecutor(Config{})
	e.Stop()
	err := e.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))
	if !errors.Is(err, ErrExecutorClosed) {
		t.Fatalf("err = %v, want ErrExecutorClosed", err)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	e := NewExecutor(Config{})
	e.Stop()
	e.Stop()
	if err := e.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestQueueFull(t *testing.T) {
	block := make(chan struct{})
	e := NewExecutor(Config{Lanes: 1, QueueSize: 1, EnqueueTimeout: 10 * time.Millisecond})
	defer func() {
		close(block)
		e.Stop()
	}()

	// First job occupies the worker, second fills the queue slot.
	_ = e.Submit(context.Background(), "k", JobFunc(func(context.Context) error {
		<-block
		return nil
	}))
	_ = e.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))

	// Keep submitting until the slot race settles into a definitive full error.
	var err error
	for i := 0; i < 3; i++ {
		err = e.Submit(context.Background(), "k", JobFunc(func(context.Context) error { return nil }))
		if err != nil {
			break
		}
	}
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	var qf *QueueFullError
	if !errors.As(err, &qf) {
		t.Fatalf("err type = %T", err)
	}
}

func TestDifferentKeysRunConcurrently(t *testing.T) {
	e := NewExecutor(Config{Lanes: 8})
	defer e.Stop()

	// Two keys that land in different lanes can overlap. Find such a pair.
	keyA, keyB := "a", ""
	for _, cand := range []string{"b", "c", "d", "e", "f", "g", "h"} {
		if e.laneFor(cand) != e.laneFor(keyA) {
			keyB = cand
			break
		}
	}
	if keyB == "" {
		t.Skip("no lane-distinct key pair found")
	}

	aStarted := make(chan struct{})
	bRan := make(chan struct{})
	_ = e.Submit(context.Background(), keyA, JobFunc(func(context.Context) error {
		close(aStarted)
		select {
		case <-bRan:
		case <-time.After(2 * time.Second):
			t.Error("lane B never ran while lane A was busy")
		}
		return nil
	}))
	<-aStarted
	_ = e.Submit(context.Background(), keyB, JobFunc(func(context.Context) error {
		close(bRan)
		return nil
	}))

	if err := e.Barrier(context.Background(), keyA); err != nil {
		t.Fatalf("barrier: %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Lanes != 2 || cfg.QueueSize != 64 || cfg.MaxAttempts != 3 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.EnqueueTimeout != 100*time.Millisecond {
		t.Fatalf("enqueue timeout = %v", cfg.EnqueueTimeout)
	}
}

package eventloop

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	l := New(8, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})
	go func() {
		_ = l.Run(ctx)
		close(exited)
	}()
	t.Cleanup(func() {
		cancel()
		<-exited
	})
	return l, cancel
}

func TestLoop_DoRunsInOrder(t *testing.T) {
	l, _ := startLoop(t)

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		if err := l.Post(func() { got = append(got, i) }); err != nil {
			t.Fatalf("Post() error: %v", err)
		}
	}
	var snapshot []int
	if err := l.Do(context.Background(), func() { snapshot = append(snapshot, got...) }); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	for i, v := range snapshot {
		if v != i {
			t.Fatalf("order = %v, want 0..4", snapshot)
		}
	}
	if len(snapshot) != 5 {
		t.Fatalf("ran %d funcs, want 5", len(snapshot))
	}
}

func TestLoop_RecoversPanics(t *testing.T) {
	l, _ := startLoop(t)

	_ = l.Post(func() { panic("boom") })
	ran := false
	if err := l.Do(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if !ran {
		t.Fatal("loop stopped after panic")
	}
}

func TestLoop_AfterFuncRunsOnLoop(t *testing.T) {
	l, _ := startLoop(t)

	fired := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestLoop_AfterFuncCancelWhileQueued(t *testing.T) {
	l, _ := startLoop(t)

	// Block the loop so the timer's callback is queued behind us.
	release := make(chan struct{})
	_ = l.Post(func() { <-release })

	var mu sync.Mutex
	ran := false
	cancel := l.AfterFunc(time.Millisecond, func() {
		mu.Lock()
		ran = true
		mu.Unlock()
	})
	time.Sleep(20 * time.Millisecond)
	cancel()
	close(release)

	if err := l.Do(context.Background(), func() {}); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if ran {
		t.Fatal("cancelled timer callback ran")
	}
}

func TestLoop_PostAfterStop(t *testing.T) {
	l, cancel := startLoop(t)
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := l.Post(func() {}); errors.Is(err, ErrStopped) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("expected ErrStopped after loop exit")
}

func TestLoop_DoSkipsExpiredWork(t *testing.T) {
	l, _ := startLoop(t)

	release := make(chan struct{})
	_ = l.Post(func() { <-release })

	var mu sync.Mutex
	ran := false
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Do(ctx, func() {
		mu.Lock()
		ran = true
		mu.Unlock()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Do() error = %v, want deadline exceeded", err)
	}
	close(release)

	if err := l.Do(context.Background(), func() {}); err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if ran {
		t.Fatal("work queued by a timed-out Do still ran")
	}
}

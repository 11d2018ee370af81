package toggle

import (
	"reflect"
	"testing"
	"time"
)

func TestRun_ImmediateActsInOrder(t *testing.T) {
	host := newFakeHost(normalWindow(3, 0), normalWindow(1, 0), normalWindow(2, 0))
	clock := &fakeClock{}
	var finished *run

	r := newRun(ActionMinimize, []WindowID{3, 1, 2}, 0, host, clock, discardLogger(), func(r *run) { finished = r })
	r.start()

	if finished != r {
		t.Fatal("expected run to finish synchronously")
	}
	want := []string{"minimize:3", "minimize:1", "minimize:2"}
	if !reflect.DeepEqual(host.calls, want) {
		t.Fatalf("calls = %v, want %v", host.calls, want)
	}
	if clock.active() != 0 {
		t.Fatalf("expected no timers, got %d", clock.active())
	}
}

func TestRun_EmptyFinishesImmediately(t *testing.T) {
	host := newFakeHost()
	clock := &fakeClock{}
	done := false

	newRun(ActionRestore, nil, 35*time.Millisecond, host, clock, discardLogger(), func(*run) { done = true }).start()

	if !done {
		t.Fatal("expected empty run to finish")
	}
	if clock.active() != 0 {
		t.Fatal("empty run should not schedule anything")
	}
}

func TestRun_StaggeredOneWindowPerTick(t *testing.T) {
	host := newFakeHost(normalWindow(1, 0), normalWindow(2, 0), normalWindow(3, 0))
	clock := &fakeClock{}
	delay := 35 * time.Millisecond
	done := false

	r := newRun(ActionMinimize, []WindowID{1, 2, 3}, delay, host, clock, discardLogger(), func(*run) { done = true })
	r.start()

	if host.mutatorCalls() != 0 {
		t.Fatalf("staggered run acted before first tick: %v", host.calls)
	}
	for i := 1; i <= 3; i++ {
		clock.Advance(delay)
		if host.mutatorCalls() != i {
			t.Fatalf("after tick %d: %d calls, want %d", i, host.mutatorCalls(), i)
		}
	}
	if !done {
		t.Fatal("expected run to finish on the last tick")
	}

	want := []time.Duration{delay, 2 * delay, 3 * delay}
	if !reflect.DeepEqual(clock.fired, want) {
		t.Fatalf("tick times = %v, want %v", clock.fired, want)
	}
	if clock.active() != 0 {
		t.Fatalf("expected no timers after finish, got %d", clock.active())
	}
}

func TestRun_SkipsStaleWindowAndContinues(t *testing.T) {
	host := newFakeHost(normalWindow(1, 0), normalWindow(2, 0), normalWindow(3, 0))
	clock := &fakeClock{}
	delay := 10 * time.Millisecond

	r := newRun(ActionMinimize, []WindowID{1, 2, 3}, delay, host, clock, discardLogger(), nil)
	r.start()
	clock.Advance(delay)
	host.dead[2] = true
	clock.Advance(2 * delay)

	want := []string{"minimize:1", "minimize:3"}
	if !reflect.DeepEqual(host.calls, want) {
		t.Fatalf("calls = %v, want %v", host.calls, want)
	}
	if r.acted != 2 || r.skipped != 1 {
		t.Fatalf("acted=%d skipped=%d, want 2 and 1", r.acted, r.skipped)
	}
	if !reflect.DeepEqual(r.affected, []WindowID{1, 3}) {
		t.Fatalf("affected = %v, want [1 3]", r.affected)
	}
}

func TestRun_MutatorFailureIsSkipped(t *testing.T) {
	host := newFakeHost(normalWindow(1, 0), normalWindow(2, 0))
	host.failMinimize[1] = true
	clock := &fakeClock{}

	r := newRun(ActionMinimize, []WindowID{1, 2}, 0, host, clock, discardLogger(), nil)
	r.start()

	if !reflect.DeepEqual(r.affected, []WindowID{2}) {
		t.Fatalf("affected = %v, want [2]", r.affected)
	}
	if r.skipped != 1 {
		t.Fatalf("skipped = %d, want 1", r.skipped)
	}
}

func TestRun_StopCancelsPendingTick(t *testing.T) {
	host := newFakeHost(normalWindow(1, 0), normalWindow(2, 0))
	clock := &fakeClock{}
	delay := 10 * time.Millisecond
	done := false

	r := newRun(ActionRestore, []WindowID{1, 2}, delay, host, clock, discardLogger(), func(*run) { done = true })
	r.start()
	clock.Advance(delay)
	r.stop()
	clock.Advance(time.Second)

	if !reflect.DeepEqual(host.calls, []string{"unminimize:1"}) {
		t.Fatalf("calls = %v, want only the first window", host.calls)
	}
	if done {
		t.Fatal("stopped run must not report completion")
	}
}

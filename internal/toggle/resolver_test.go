package toggle

import (
	"reflect"
	"testing"
	"time"
)

func TestPickFocusTarget(t *testing.T) {
	tests := []struct {
		name     string
		pending  []WindowID
		captured map[WindowID]Snapshot
		last     WindowID
		hasLast  bool
		dead     []WindowID
		want     WindowID
		wantOK   bool
	}{
		{
			name:    "hint wins",
			pending: []WindowID{1, 2, 3},
			captured: map[WindowID]Snapshot{
				1: {UserTime: 900},
				2: {UserTime: 10},
				3: {UserTime: 20, WasFocused: true},
			},
			last: 2, hasLast: true,
			want: 2, wantOK: true,
		},
		{
			name:    "dead hint falls back to focused snapshot",
			pending: []WindowID{1, 2, 3},
			captured: map[WindowID]Snapshot{
				1: {UserTime: 900},
				2: {UserTime: 10},
				3: {UserTime: 20, WasFocused: true},
			},
			last: 2, hasLast: true,
			dead: []WindowID{2},
			want: 3, wantOK: true,
		},
		{
			name:    "hint not pending is ignored",
			pending: []WindowID{1, 3},
			captured: map[WindowID]Snapshot{
				1: {UserTime: 10},
				3: {UserTime: 20},
			},
			last: 2, hasLast: true,
			want: 3, wantOK: true,
		},
		{
			name:    "highest user time, first on ties",
			pending: []WindowID{4, 5, 6},
			captured: map[WindowID]Snapshot{
				4: {UserTime: 5},
				5: {UserTime: 70},
				6: {UserTime: 70},
			},
			want: 5, wantOK: true,
		},
		{
			name:     "first alive pending without snapshots",
			pending:  []WindowID{7, 8},
			captured: map[WindowID]Snapshot{},
			dead:     []WindowID{7},
			want:     8, wantOK: true,
		},
		{
			name:     "nothing alive",
			pending:  []WindowID{1},
			captured: map[WindowID]Snapshot{1: {}},
			dead:     []WindowID{1},
			wantOK:   false,
		},
		{
			name:   "empty pending",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost()
			for _, id := range tt.pending {
				host.windows = append(host.windows, normalWindow(id, 0))
			}
			for _, id := range tt.dead {
				host.dead[id] = true
			}

			got, ok := pickFocusTarget(host, tt.pending, tt.captured, tt.last, tt.hasLast)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("target = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFocusSequence_ActivatesOnCurrentWorkspace(t *testing.T) {
	host := newFakeHost(normalWindow(1, 0))
	clock := &fakeClock{}

	f := &focusSequence{target: 1, known: true, host: host, sched: clock, logger: discardLogger()}
	f.start()

	if !reflect.DeepEqual(host.calls, []string{"activate:1"}) {
		t.Fatalf("calls = %v, want immediate activation", host.calls)
	}
	clock.Advance(FocusConfirmDelay)
	if len(host.calls) != 1 {
		t.Fatalf("confirmed focus should not retry: %v", host.calls)
	}
}

func TestFocusSequence_SwitchesWorkspaceFirst(t *testing.T) {
	w := normalWindow(1, 0)
	w.Desktop = 2
	host := newFakeHost(w)
	clock := &fakeClock{}

	f := &focusSequence{target: 1, workspace: 2, known: true, host: host, sched: clock, logger: discardLogger()}
	f.start()

	if !reflect.DeepEqual(host.calls, []string{"workspace:2"}) {
		t.Fatalf("calls = %v, want workspace switch only", host.calls)
	}
	clock.Advance(WorkspaceSettleDelay - time.Millisecond)
	if len(host.calls) != 1 {
		t.Fatalf("activated before workspace settled: %v", host.calls)
	}
	clock.Advance(time.Millisecond)
	if !reflect.DeepEqual(host.calls, []string{"workspace:2", "activate:1"}) {
		t.Fatalf("calls = %v", host.calls)
	}
}

func TestFocusSequence_StickyWindowSkipsWorkspaceSwitch(t *testing.T) {
	host := newFakeHost(normalWindow(1, 0))
	host.workspace = 3
	clock := &fakeClock{}

	f := &focusSequence{target: 1, workspace: StickyDesktop, known: true, host: host, sched: clock, logger: discardLogger()}
	f.start()

	if !reflect.DeepEqual(host.calls, []string{"activate:1"}) {
		t.Fatalf("calls = %v", host.calls)
	}
}

func TestFocusSequence_RetriesOnceWhenFocusNotConfirmed(t *testing.T) {
	host := newFakeHost(normalWindow(1, 0))
	host.stickyFocus = true
	host.focus(9)
	clock := &fakeClock{}

	f := &focusSequence{target: 1, known: true, host: host, sched: clock, logger: discardLogger()}
	f.start()
	clock.Advance(10 * FocusConfirmDelay)

	want := []string{"activate:1", "activate:1"}
	if !reflect.DeepEqual(host.calls, want) {
		t.Fatalf("calls = %v, want %v", host.calls, want)
	}
}

func TestFocusSequence_StopCancelsTimers(t *testing.T) {
	w := normalWindow(1, 0)
	w.Desktop = 1
	host := newFakeHost(w)
	clock := &fakeClock{}

	f := &focusSequence{target: 1, workspace: 1, known: true, host: host, sched: clock, logger: discardLogger()}
	f.start()
	f.stop()
	clock.Advance(time.Second)

	if !reflect.DeepEqual(host.calls, []string{"workspace:1"}) {
		t.Fatalf("calls = %v, want no activation after stop", host.calls)
	}
}

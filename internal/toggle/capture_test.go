package toggle

import "testing"

func TestCaptureStates_FocusedMemberIsHint(t *testing.T) {
	host := newFakeHost(normalWindow(1, 50), normalWindow(2, 10), normalWindow(3, 90))
	host.focus(2)
	windows, _ := host.Inventory(ScopeAllWorkspaces)

	captured, last, ok := captureStates(host, windows)
	if !ok || last != 2 {
		t.Fatalf("hint = %d (ok=%v), want 2", last, ok)
	}
	if !captured[2].WasFocused {
		t.Fatal("expected window 2 to be captured as focused")
	}
	if captured[1].WasFocused || captured[3].WasFocused {
		t.Fatal("only window 2 should be captured as focused")
	}
	if captured[3].OriginalIndex != 2 {
		t.Fatalf("OriginalIndex = %d, want 2", captured[3].OriginalIndex)
	}
	if captured[3].UserTime != 90 {
		t.Fatalf("UserTime = %d, want 90", captured[3].UserTime)
	}
}

func TestCaptureStates_FallsBackToHighestUserTime(t *testing.T) {
	host := newFakeHost(normalWindow(1, 50), normalWindow(2, 90), normalWindow(3, 90))
	// Focus is on a window outside the candidate set.
	host.focus(99)
	windows, _ := host.Inventory(ScopeAllWorkspaces)

	_, last, ok := captureStates(host, windows)
	if !ok {
		t.Fatal("expected a hint")
	}
	if last != 2 {
		t.Fatalf("hint = %d, want 2 (first of the tied windows)", last)
	}
}

func TestCaptureStates_SkipsDeadWindows(t *testing.T) {
	host := newFakeHost(normalWindow(1, 50), normalWindow(2, 90))
	windows, _ := host.Inventory(ScopeAllWorkspaces)
	host.dead[2] = true

	captured, last, ok := captureStates(host, windows)
	if _, found := captured[2]; found {
		t.Fatal("dead window should not be captured")
	}
	if !ok || last != 1 {
		t.Fatalf("hint = %d (ok=%v), want 1", last, ok)
	}
}

func TestCaptureStates_NoLiveWindows(t *testing.T) {
	host := newFakeHost(normalWindow(1, 50))
	windows, _ := host.Inventory(ScopeAllWorkspaces)
	host.dead[1] = true

	captured, _, ok := captureStates(host, windows)
	if ok {
		t.Fatal("expected no hint")
	}
	if len(captured) != 0 {
		t.Fatalf("captured %d windows, want 0", len(captured))
	}
}

package toggle

import (
	"log/slog"
	"time"
)

// pickFocusTarget chooses the single window that regains focus after a
// restore. First match wins:
//
//  1. the capture-time focus hint, if still pending and alive
//  2. a pending, alive window that held focus at capture
//  3. the pending, alive captured window with the highest user time
//  4. the first alive pending window
func pickFocusTarget(host Host, pending []WindowID, captured map[WindowID]Snapshot, lastFocused WindowID, hasLast bool) (WindowID, bool) {
	if hasLast && host.Alive(lastFocused) {
		for _, id := range pending {
			if id == lastFocused {
				return id, true
			}
		}
	}

	for _, id := range pending {
		if snap, ok := captured[id]; ok && snap.WasFocused && host.Alive(id) {
			return id, true
		}
	}

	var (
		best     WindowID
		bestTime uint32
		found    bool
	)
	for _, id := range pending {
		snap, ok := captured[id]
		if !ok || !host.Alive(id) {
			continue
		}
		if !found || snap.UserTime > bestTime {
			best, bestTime, found = id, snap.UserTime, true
		}
	}
	if found {
		return best, true
	}

	for _, id := range pending {
		if host.Alive(id) {
			return id, true
		}
	}
	return 0, false
}

// focusSequence switches to the target's workspace when needed, activates the
// target and confirms once that it really holds focus.
type focusSequence struct {
	target    WindowID
	workspace int
	known     bool

	host   Host
	sched  Scheduler
	logger *slog.Logger

	cancels []func()
	retried bool
}

func (f *focusSequence) start() {
	ts := f.host.CurrentTime()

	if f.known && f.workspace != StickyDesktop {
		active, err := f.host.ActiveWorkspace()
		if err == nil && active != f.workspace {
			if err := f.host.ActivateWorkspace(f.workspace, ts); err != nil {
				f.logger.Debug("workspace switch failed", "workspace", f.workspace, "error", err)
			}
			f.after(WorkspaceSettleDelay, func() { f.activate(ts) })
			return
		}
	}
	f.activate(ts)
}

func (f *focusSequence) activate(ts uint32) {
	if !f.host.Alive(f.target) {
		f.logger.Debug("focus target vanished", "window", f.target)
		return
	}
	if err := f.host.ActivateWindow(f.target, ts); err != nil {
		f.logger.Debug("activation failed", "window", f.target, "error", err)
	}
	f.after(FocusConfirmDelay, f.confirm)
}

func (f *focusSequence) confirm() {
	if f.retried || !f.host.Alive(f.target) {
		return
	}
	if focused, ok := f.host.FocusedWindow(); ok && focused == f.target {
		return
	}
	f.retried = true
	f.logger.Debug("focus not confirmed, retrying", "window", f.target)
	if err := f.host.ActivateWindow(f.target, f.host.CurrentTime()); err != nil {
		f.logger.Debug("activation retry failed", "window", f.target, "error", err)
	}
}

func (f *focusSequence) after(d time.Duration, fn func()) {
	f.cancels = append(f.cancels, f.sched.AfterFunc(d, fn))
}

func (f *focusSequence) stop() {
	for _, cancel := range f.cancels {
		cancel()
	}
	f.cancels = nil
}

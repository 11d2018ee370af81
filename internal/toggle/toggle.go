// Package toggle implements the minimize-all / restore cycle behind the show
// desktop action: selecting eligible windows, capturing enough state to give
// focus back later, running the (optionally staggered) minimize and restore
// passes, and picking the single window that regains focus.
//
// The package is single-threaded. Every Controller method and every callback
// handed to the Scheduler must run on the same goroutine (the daemon's event
// loop); nothing here takes a lock.
package toggle

import "time"

// WindowID is an opaque host window handle.
type WindowID uint32

// WindowType mirrors the EWMH window type of a client.
type WindowType string

const (
	TypeNormal  WindowType = "normal"
	TypeDialog  WindowType = "dialog"
	TypeUtility WindowType = "utility"
	TypeDock    WindowType = "dock"
	TypeDesktop WindowType = "desktop"
	TypeOther   WindowType = "other"
)

// StickyDesktop is the Desktop value of windows shown on every workspace.
const StickyDesktop = -1

// Window is an attribute snapshot of a host window taken when the inventory
// was queried. It is never refreshed; use Host.Alive before acting on it.
type Window struct {
	ID          WindowID
	Title       string
	Type        WindowType
	Minimized   bool
	Above       bool
	SkipTaskbar bool
	CanMinimize bool
	Desktop     int
	UserTime    uint32
}

// Scope selects which part of the window inventory is considered.
type Scope int

const (
	ScopeCurrentWorkspace Scope = iota
	ScopeAllWorkspaces
)

func (s Scope) String() string {
	if s == ScopeAllWorkspaces {
		return "all-workspaces"
	}
	return "current-workspace"
}

// Options is resolved once per Toggle and carried through the whole cycle so
// a config reload mid-run cannot change the behaviour of that run.
type Options struct {
	Scope        Scope
	ExcludeAbove bool
	Delay        time.Duration
	ShowCount    bool
}

// Host is the window-system capability surface the controller works against.
type Host interface {
	// Inventory lists client windows in stacking order for the given scope.
	Inventory(scope Scope) ([]Window, error)
	// Alive reports whether the window still exists.
	Alive(id WindowID) bool
	// FocusedWindow returns the window holding input focus, if any.
	FocusedWindow() (WindowID, bool)
	ActiveWorkspace() (int, error)
	// CurrentTime returns the timestamp token for activation requests.
	CurrentTime() uint32

	Minimize(id WindowID) error
	Unminimize(id WindowID) error
	ActivateWorkspace(workspace int, ts uint32) error
	// ActivateWindow raises, activates and focuses the window using every
	// primitive the host has. It fails only when none of them could be sent.
	ActivateWindow(id WindowID, ts uint32) error
}

// Scheduler runs fn once after d on the controller's goroutine. The returned
// cancel func prevents fn from running if it has not started yet.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Action is what a run does to each window.
type Action int

const (
	ActionMinimize Action = iota
	ActionRestore
)

func (a Action) String() string {
	if a == ActionRestore {
		return "restore"
	}
	return "minimize"
}

// Outcome reports what a Toggle call did.
type Outcome string

const (
	OutcomeMinimizing Outcome = "minimizing"
	OutcomeRestoring  Outcome = "restoring"
	OutcomeEmpty      Outcome = "empty"
	OutcomeBusy       Outcome = "busy"
	OutcomeInactive   Outcome = "inactive"
)

// Fixed delays of the restoration sequence.
const (
	RestoreSettleDelay   = 150 * time.Millisecond
	WorkspaceSettleDelay = 100 * time.Millisecond
	FocusConfirmDelay    = 300 * time.Millisecond
)

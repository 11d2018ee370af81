//go:build linux

package platform

import (
	"errors"
	"fmt"
	"os"

	"github.com/1broseidon/showdesk/internal/toggle"
	"github.com/1broseidon/showdesk/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an X11 connection behind the toggle.Host interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection. Empty display
// uses $DISPLAY; a non-empty xauthority overrides $XAUTHORITY first.
func NewLinuxBackendFromDisplay(display, xauthority string) (*LinuxBackend, error) {
	if xauthority != "" {
		if err := os.Setenv("XAUTHORITY", xauthority); err != nil {
			return nil, fmt.Errorf("failed to set XAUTHORITY: %w", err)
		}
	}
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// Quit stops EventLoop.
func (b *LinuxBackend) Quit() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Inventory lists managed clients bottom to top, restricted to scope.
func (b *LinuxBackend) Inventory(scope toggle.Scope) ([]toggle.Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := conn.ClientList()
	if err != nil {
		return nil, err
	}

	active, err := conn.GetCurrentDesktop()
	if err != nil {
		// Without _NET_CURRENT_DESKTOP every window counts as current.
		active = 0
		scope = toggle.ScopeAllWorkspaces
	}

	windows := make([]toggle.Window, 0, len(clients))
	for _, id := range clients {
		desktop, err := conn.GetWindowDesktop(id)
		if err != nil {
			desktop = active
		}
		if !inScope(scope, desktop, active) {
			continue
		}
		windows = append(windows, b.describe(id, desktop))
	}
	return windows, nil
}

func (b *LinuxBackend) describe(id xproto.Window, desktop int) toggle.Window {
	conn := b.conn
	states := parseStates(conn.WindowStates(id))
	actions, published := conn.AllowedActions(id)

	return toggle.Window{
		ID:          toggle.WindowID(id),
		Title:       conn.WindowTitle(id),
		Type:        classifyWindowType(conn.WindowTypes(id), conn.IsTransient(id)),
		Minimized:   states.hidden || conn.IsIconic(id),
		Above:       states.above,
		SkipTaskbar: states.skipTaskbar,
		CanMinimize: canMinimize(actions, published),
		Desktop:     desktop,
		UserTime:    conn.UserTime(id),
	}
}

// Alive reports whether the window still exists on the server.
func (b *LinuxBackend) Alive(id toggle.WindowID) bool {
	conn, err := b.connection()
	if err != nil {
		return false
	}
	return conn.Exists(xproto.Window(id))
}

// FocusedWindow returns _NET_ACTIVE_WINDOW, falling back to the X input focus.
func (b *LinuxBackend) FocusedWindow() (toggle.WindowID, bool) {
	conn, err := b.connection()
	if err != nil {
		return 0, false
	}
	if win, err := conn.GetActiveWindow(); err == nil && win != 0 {
		return toggle.WindowID(win), true
	}
	win, err := conn.GetInputFocus()
	if err != nil || win == 0 || win == conn.Root || win == xproto.InputFocusPointerRoot {
		return 0, false
	}
	return toggle.WindowID(win), true
}

// ActiveWorkspace returns the current desktop number.
func (b *LinuxBackend) ActiveWorkspace() (int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	return conn.GetCurrentDesktop()
}

// CurrentTime returns the last server timestamp seen by the connection.
func (b *LinuxBackend) CurrentTime() uint32 {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Timestamp()
}

// Minimize iconifies a window via WM_CHANGE_STATE.
func (b *LinuxBackend) Minimize(id toggle.WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Iconify(xproto.Window(id))
}

// Unminimize maps the window and clears its hidden state.
func (b *LinuxBackend) Unminimize(id toggle.WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Deiconify(xproto.Window(id))
}

// ActivateWorkspace switches to desktop.
func (b *LinuxBackend) ActivateWorkspace(workspace int, ts uint32) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SwitchDesktop(workspace, ts)
}

// ActivateWindow raises the window, asks the window manager to activate it
// and sets input focus directly. Focus-stealing prevention may drop any one
// of these, so every primitive is tried and the call fails only when all of
// them failed.
func (b *LinuxBackend) ActivateWindow(id toggle.WindowID, ts uint32) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	win := xproto.Window(id)

	raiseErr := conn.Raise(win)
	activateErr := conn.FocusWindow(win, ts)
	focusErr := conn.SetInputFocus(win, ts)
	if raiseErr != nil && activateErr != nil && focusErr != nil {
		return errors.Join(raiseErr, activateErr, focusErr)
	}
	return nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// ClientList returns managed clients bottom to top. Window managers that do
// not publish _NET_CLIENT_LIST_STACKING fall back to _NET_CLIENT_LIST.
func (c *Connection) ClientList() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListStackingGet(c.XUtil)
	if err == nil && len(clients) > 0 {
		return clients, nil
	}
	clients, err = ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	return clients, nil
}

// Exists reports whether the window is still known to the server.
func (c *Connection) Exists(windowID xproto.Window) bool {
	_, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	return err == nil
}

// WindowTypes returns the _NET_WM_WINDOW_TYPE atoms, most preferred first.
func (c *Connection) WindowTypes(windowID xproto.Window) []string {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return nil
	}
	return types
}

// IsTransient reports whether WM_TRANSIENT_FOR is set.
func (c *Connection) IsTransient(windowID xproto.Window) bool {
	parent, err := icccm.WmTransientForGet(c.XUtil, windowID)
	return err == nil && parent != 0
}

// WindowStates returns the _NET_WM_STATE atoms.
func (c *Connection) WindowStates(windowID xproto.Window) []string {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return nil
	}
	return states
}

// IsIconic reports whether the ICCCM WM_STATE is IconicState.
func (c *Connection) IsIconic(windowID xproto.Window) bool {
	state, err := icccm.WmStateGet(c.XUtil, windowID)
	return err == nil && state != nil && state.State == icccm.StateIconic
}

// AllowedActions returns _NET_WM_ALLOWED_ACTIONS. ok is false when the window
// manager does not publish the property.
func (c *Connection) AllowedActions(windowID xproto.Window) (actions []string, ok bool) {
	actions, err := ewmh.WmAllowedActionsGet(c.XUtil, windowID)
	if err != nil {
		return nil, false
	}
	return actions, true
}

// UserTime returns _NET_WM_USER_TIME, read from _NET_WM_USER_TIME_WINDOW
// when the client uses one. Zero means unknown.
func (c *Connection) UserTime(windowID xproto.Window) uint32 {
	if t, err := ewmh.WmUserTimeGet(c.XUtil, windowID); err == nil {
		return uint32(t)
	}
	if tw, err := ewmh.WmUserTimeWindowGet(c.XUtil, windowID); err == nil && tw != 0 {
		if t, err := ewmh.WmUserTimeGet(c.XUtil, tw); err == nil {
			return uint32(t)
		}
	}
	return 0
}

// WindowTitle prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// Iconify asks the window manager to minimize a window via WM_CHANGE_STATE.
func (c *Connection) Iconify(windowID xproto.Window) error {
	return c.sendRootMessage(windowID, "WM_CHANGE_STATE", icccm.StateIconic)
}

// Deiconify maps the window, which moves it back to NormalState, and clears
// _NET_WM_STATE_HIDDEN for window managers that track it separately.
func (c *Connection) Deiconify(windowID xproto.Window) error {
	if err := xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check(); err != nil {
		return fmt.Errorf("failed to map window: %w", err)
	}
	hidden, err := c.atom("_NET_WM_STATE_HIDDEN")
	if err != nil {
		return err
	}
	const stateRemove = 0
	return c.sendRootMessage(windowID, "_NET_WM_STATE", stateRemove, uint32(hidden), 0, sourcePager)
}

// Raise restacks the window above its siblings.
func (c *Connection) Raise(windowID xproto.Window) error {
	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
}

// SetInputFocus gives the window keyboard focus directly.
func (c *Connection) SetInputFocus(windowID xproto.Window, timestamp uint32) error {
	return xproto.SetInputFocusChecked(
		c.XUtil.Conn(),
		xproto.InputFocusPointerRoot,
		windowID,
		xproto.Timestamp(timestamp),
	).Check()
}

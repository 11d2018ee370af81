package platform

import "github.com/1broseidon/showdesk/internal/toggle"

// classifyWindowType maps _NET_WM_WINDOW_TYPE atoms to a toggle.WindowType.
// The first recognised atom wins. An untyped window is a dialog when it is
// transient for another window and a normal window otherwise.
func classifyWindowType(types []string, transient bool) toggle.WindowType {
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return toggle.TypeNormal
		case "_NET_WM_WINDOW_TYPE_DIALOG":
			return toggle.TypeDialog
		case "_NET_WM_WINDOW_TYPE_UTILITY", "_NET_WM_WINDOW_TYPE_TOOLBAR", "_NET_WM_WINDOW_TYPE_MENU":
			return toggle.TypeUtility
		case "_NET_WM_WINDOW_TYPE_DOCK":
			return toggle.TypeDock
		case "_NET_WM_WINDOW_TYPE_DESKTOP":
			return toggle.TypeDesktop
		case "_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION",
			"_NET_WM_WINDOW_TYPE_TOOLTIP",
			"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
			"_NET_WM_WINDOW_TYPE_POPUP_MENU",
			"_NET_WM_WINDOW_TYPE_COMBO",
			"_NET_WM_WINDOW_TYPE_DND":
			return toggle.TypeOther
		}
	}
	if len(types) > 0 {
		return toggle.TypeOther
	}
	if transient {
		return toggle.TypeDialog
	}
	return toggle.TypeNormal
}

type stateFlags struct {
	hidden      bool
	above       bool
	skipTaskbar bool
}

func parseStates(states []string) stateFlags {
	var f stateFlags
	for _, s := range states {
		switch s {
		case "_NET_WM_STATE_HIDDEN":
			f.hidden = true
		case "_NET_WM_STATE_ABOVE":
			f.above = true
		case "_NET_WM_STATE_SKIP_TASKBAR":
			f.skipTaskbar = true
		}
	}
	return f
}

// canMinimize reports whether _NET_WM_ALLOWED_ACTIONS permits minimizing.
// Window managers that do not publish the property allow everything.
func canMinimize(actions []string, published bool) bool {
	if !published {
		return true
	}
	for _, a := range actions {
		if a == "_NET_WM_ACTION_MINIMIZE" {
			return true
		}
	}
	return false
}

// inScope reports whether a window on desktop belongs to the inventory for
// scope, given the active desktop.
func inScope(scope toggle.Scope, desktop, active int) bool {
	if scope == toggle.ScopeAllWorkspaces {
		return true
	}
	return desktop == toggle.StickyDesktop || desktop == active
}

// Package platform adapts the window system to the toggle controller.
package platform

import "github.com/1broseidon/showdesk/internal/toggle"

// Backend is a toggle.Host that also owns the window-system connection.
type Backend interface {
	toggle.Host
	// EventLoop dispatches window-system events until Quit is called.
	EventLoop()
	Quit()
	Disconnect()
}

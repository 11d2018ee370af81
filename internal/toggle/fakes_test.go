package toggle

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"
)

// fakeHost is an in-memory window system that records every mutator call.
type fakeHost struct {
	windows      []Window
	dead         map[WindowID]bool
	focused      WindowID
	hasFocus     bool
	workspace    int
	now          uint32
	inventoryErr error
	failMinimize map[WindowID]bool
	stickyFocus  bool // ActivateWindow does not move focus

	calls []string
}

func newFakeHost(windows ...Window) *fakeHost {
	return &fakeHost{
		windows:      windows,
		dead:         make(map[WindowID]bool),
		failMinimize: make(map[WindowID]bool),
		now:          1000,
	}
}

func normalWindow(id WindowID, userTime uint32) Window {
	return Window{
		ID:          id,
		Title:       fmt.Sprintf("window-%d", id),
		Type:        TypeNormal,
		CanMinimize: true,
		UserTime:    userTime,
	}
}

func (h *fakeHost) focus(id WindowID) {
	h.focused = id
	h.hasFocus = true
}

func (h *fakeHost) Inventory(scope Scope) ([]Window, error) {
	if h.inventoryErr != nil {
		return nil, h.inventoryErr
	}
	out := make([]Window, 0, len(h.windows))
	for _, w := range h.windows {
		if scope == ScopeCurrentWorkspace && w.Desktop != h.workspace && w.Desktop != StickyDesktop {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (h *fakeHost) Alive(id WindowID) bool {
	if h.dead[id] {
		return false
	}
	for _, w := range h.windows {
		if w.ID == id {
			return true
		}
	}
	return false
}

func (h *fakeHost) FocusedWindow() (WindowID, bool) {
	return h.focused, h.hasFocus
}

func (h *fakeHost) ActiveWorkspace() (int, error) {
	return h.workspace, nil
}

func (h *fakeHost) CurrentTime() uint32 {
	return h.now
}

func (h *fakeHost) Minimize(id WindowID) error {
	h.calls = append(h.calls, fmt.Sprintf("minimize:%d", id))
	if h.failMinimize[id] {
		return errors.New("BadWindow")
	}
	h.setMinimized(id, true)
	return nil
}

func (h *fakeHost) Unminimize(id WindowID) error {
	h.calls = append(h.calls, fmt.Sprintf("unminimize:%d", id))
	h.setMinimized(id, false)
	return nil
}

func (h *fakeHost) ActivateWorkspace(workspace int, ts uint32) error {
	h.calls = append(h.calls, fmt.Sprintf("workspace:%d", workspace))
	h.workspace = workspace
	return nil
}

func (h *fakeHost) ActivateWindow(id WindowID, ts uint32) error {
	h.calls = append(h.calls, fmt.Sprintf("activate:%d", id))
	if !h.stickyFocus {
		h.focus(id)
	}
	return nil
}

func (h *fakeHost) setMinimized(id WindowID, v bool) {
	for i := range h.windows {
		if h.windows[i].ID == id {
			h.windows[i].Minimized = v
		}
	}
}

func (h *fakeHost) minimized(id WindowID) bool {
	for _, w := range h.windows {
		if w.ID == id {
			return w.Minimized
		}
	}
	return false
}

func (h *fakeHost) mutatorCalls() int {
	return len(h.calls)
}

// fakeClock is a manual Scheduler. Timers fire in deadline order when the
// clock is advanced.
type fakeClock struct {
	now    time.Duration
	seq    int
	timers []*fakeTimer
	fired  []time.Duration
}

type fakeTimer struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
	done      bool
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) func() {
	c.seq++
	t := &fakeTimer{at: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return func() { t.cancelled = true }
}

func (c *fakeClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		next := c.next(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.done = true
		c.fired = append(c.fired, next.at)
		next.fn()
	}
	c.now = target
}

func (c *fakeClock) next(limit time.Duration) *fakeTimer {
	var ready []*fakeTimer
	for _, t := range c.timers {
		if !t.done && !t.cancelled && t.at <= limit {
			ready = append(ready, t)
		}
	}
	if len(ready) == 0 {
		return nil
	}
	sort.Slice(ready, func(i, j int) bool {
		if ready[i].at != ready[j].at {
			return ready[i].at < ready[j].at
		}
		return ready[i].seq < ready[j].seq
	})
	return ready[0]
}

func (c *fakeClock) active() int {
	n := 0
	for _, t := range c.timers {
		if !t.done && !t.cancelled {
			n++
		}
	}
	return n
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ids(windows []Window) []WindowID {
	out := make([]WindowID, 0, len(windows))
	for _, w := range windows {
		out = append(out, w.ID)
	}
	return out
}

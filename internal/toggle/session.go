package toggle

// Snapshot is the per-window state captured right before minimizing.
type Snapshot struct {
	OriginalIndex int
	UserTime      uint32
	WasFocused    bool
	Workspace     int
}

// Session is the state of one minimize/restore cycle. A non-empty pending
// set means the next toggle restores.
type Session struct {
	pending     []WindowID
	captured    map[WindowID]Snapshot
	lastFocused WindowID
	hasFocused  bool

	run   *run
	focus *focusSequence
}

func newSession() *Session {
	return &Session{captured: make(map[WindowID]Snapshot)}
}

func (s *Session) busy() bool {
	return s.run != nil
}

// reset returns the session to minimize mode. Timers are not touched.
func (s *Session) reset() {
	s.pending = nil
	s.captured = make(map[WindowID]Snapshot)
	s.lastFocused = 0
	s.hasFocused = false
}

// State is the externally visible part of a session.
type State struct {
	PendingRestore bool   `json:"pending_restore"`
	PendingCount   int    `json:"pending_count"`
	Running        bool   `json:"running"`
	Action         string `json:"action,omitempty"`
}

func (s *Session) state() State {
	st := State{
		PendingRestore: len(s.pending) > 0,
		PendingCount:   len(s.pending),
		Running:        s.run != nil,
	}
	if s.run != nil {
		st.Action = s.run.action.String()
	}
	return st
}

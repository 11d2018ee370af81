package toggle

// captureStates snapshots the candidate set right before it is minimized.
// Windows that died since selection are left out. The returned focus hint is
// the focused member, or else the member with the highest user time (first
// one wins on ties); ok is false only when no member survived.
func captureStates(host Host, windows []Window) (captured map[WindowID]Snapshot, lastFocused WindowID, ok bool) {
	captured = make(map[WindowID]Snapshot, len(windows))
	focused, hasFocus := host.FocusedWindow()

	var (
		recent      WindowID
		recentTime  uint32
		haveRecent  bool
		focusMember bool
	)
	for index, w := range windows {
		if !host.Alive(w.ID) {
			continue
		}
		wasFocused := hasFocus && w.ID == focused
		captured[w.ID] = Snapshot{
			OriginalIndex: index,
			UserTime:      w.UserTime,
			WasFocused:    wasFocused,
			Workspace:     w.Desktop,
		}
		if wasFocused {
			focusMember = true
		}
		if !haveRecent || w.UserTime > recentTime {
			recent, recentTime, haveRecent = w.ID, w.UserTime, true
		}
	}

	switch {
	case focusMember:
		return captured, focused, true
	case haveRecent:
		return captured, recent, true
	default:
		return captured, 0, false
	}
}

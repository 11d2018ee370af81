package toggle

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Controller owns the toggle session and is the single entry point used by
// the hotkey, IPC, D-Bus and MCP front ends.
type Controller struct {
	host    Host
	sched   Scheduler
	options func() Options
	logger  *slog.Logger

	// SettleDelay is the pause between the end of a restore run and focus
	// resolution. Zero resolves immediately.
	SettleDelay time.Duration

	session  *Session
	cycle    *slog.Logger
	onChange []func(State)
	newID    func() string
}

// NewController creates an inactive controller. options is called once per
// Toggle to resolve the configuration for that cycle.
func NewController(host Host, sched Scheduler, options func() Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		host:        host,
		sched:       sched,
		options:     options,
		logger:      logger,
		SettleDelay: RestoreSettleDelay,
		newID:       uuid.NewString,
	}
}

// OnChange registers fn to be called after every state transition.
func (c *Controller) OnChange(fn func(State)) {
	c.onChange = append(c.onChange, fn)
}

// Activate creates a fresh session. Calling it twice is a no-op.
func (c *Controller) Activate() {
	if c.session != nil {
		return
	}
	c.session = newSession()
	c.logger.Info("toggle session activated")
	c.notify()
}

// Deactivate stops any pending timer and drops the session. Windows already
// minimized or restored by an interrupted run are left as they are.
func (c *Controller) Deactivate() {
	s := c.session
	if s == nil {
		return
	}
	if s.run != nil {
		s.run.stop()
		s.run = nil
	}
	c.stopFocus()
	c.session = nil
	c.cycle = nil
	c.logger.Info("toggle session deactivated", "abandoned", len(s.pending))
	c.notify()
}

// Active reports whether a session exists.
func (c *Controller) Active() bool {
	return c.session != nil
}

// HasPendingRestore reports whether the next Toggle restores windows.
func (c *Controller) HasPendingRestore() bool {
	return c.session != nil && len(c.session.pending) > 0
}

// State returns the visible session state.
func (c *Controller) State() State {
	if c.session == nil {
		return State{}
	}
	return c.session.state()
}

// Toggle minimizes the eligible windows, or restores the ones minimized by
// the previous call. It is rejected while a run is in progress.
func (c *Controller) Toggle() Outcome {
	s := c.session
	if s == nil {
		return OutcomeInactive
	}
	if s.busy() {
		c.logger.Debug("toggle ignored, run in progress", "action", s.run.action.String())
		return OutcomeBusy
	}

	opts := c.options()
	c.stopFocus()

	if len(s.pending) > 0 {
		c.restore(s, opts)
		return OutcomeRestoring
	}
	return c.minimize(s, opts)
}

func (c *Controller) minimize(s *Session, opts Options) Outcome {
	windows, err := selectEligible(c.host, opts)
	if err != nil {
		c.logger.Warn("window selection failed", "error", err)
		return OutcomeEmpty
	}
	if len(windows) == 0 {
		c.logger.Debug("no eligible windows", "scope", opts.Scope.String())
		return OutcomeEmpty
	}

	c.cycle = c.logger.With("cycle", c.newID())

	captured, last, ok := captureStates(c.host, windows)
	s.captured = captured
	s.lastFocused = last
	s.hasFocused = ok

	targets := make([]WindowID, 0, len(windows))
	for _, w := range windows {
		targets = append(targets, w.ID)
	}

	c.cycle.Info("minimizing windows",
		"count", len(targets),
		"scope", opts.Scope.String(),
		"delay", opts.Delay,
		"focus_hint", last)

	s.run = newRun(ActionMinimize, targets, opts.Delay, c.host, c.sched, c.cycle, func(r *run) {
		c.minimizeDone(s, r)
	})
	c.notify()
	s.run.start()
	return OutcomeMinimizing
}

func (c *Controller) minimizeDone(s *Session, r *run) {
	if c.session != s || s.run != r {
		return
	}
	s.run = nil
	c.cycle.Info("windows minimized", "acted", r.acted, "skipped", r.skipped)
	if len(r.affected) == 0 {
		s.reset()
		c.cycle = nil
	} else {
		s.pending = r.affected
	}
	c.notify()
}

func (c *Controller) restore(s *Session, opts Options) {
	if c.cycle == nil {
		c.cycle = c.logger.With("cycle", c.newID())
	}
	targets := append([]WindowID(nil), s.pending...)
	c.cycle.Info("restoring windows", "count", len(targets), "delay", opts.Delay)

	s.run = newRun(ActionRestore, targets, opts.Delay, c.host, c.sched, c.cycle, func(r *run) {
		c.restoreDone(s, r)
	})
	c.notify()
	s.run.start()
}

func (c *Controller) restoreDone(s *Session, r *run) {
	if c.session != s || s.run != r {
		return
	}
	c.cycle.Info("windows restored", "acted", r.acted, "skipped", r.skipped)
	if c.SettleDelay <= 0 {
		c.resolve(s, r)
		return
	}
	r.settle = c.sched.AfterFunc(c.SettleDelay, func() {
		c.resolve(s, r)
	})
}

// resolve picks and focuses the target window, then returns the session to
// minimize mode regardless of the result.
func (c *Controller) resolve(s *Session, r *run) {
	if c.session != s || s.run != r {
		return
	}

	target, ok := pickFocusTarget(c.host, s.pending, s.captured, s.lastFocused, s.hasFocused)
	if ok {
		snap, known := s.captured[target]
		s.focus = &focusSequence{
			target:    target,
			workspace: snap.Workspace,
			known:     known,
			host:      c.host,
			sched:     c.sched,
			logger:    c.cycle,
		}
		c.cycle.Debug("focusing window", "window", target)
		s.focus.start()
	} else {
		c.cycle.Debug("no live window to focus")
	}

	s.reset()
	s.run = nil
	c.cycle = nil
	c.notify()
}

func (c *Controller) stopFocus() {
	if c.session == nil || c.session.focus == nil {
		return
	}
	c.session.focus.stop()
	c.session.focus = nil
}

func (c *Controller) notify() {
	st := c.State()
	for _, fn := range c.onChange {
		fn(st)
	}
}

// Prune drops pending windows that no longer exist. It is a no-op while a
// run is in progress. When nothing is left the session returns to minimize
// mode. It reports the number of windows dropped.
func (c *Controller) Prune() int {
	s := c.session
	if s == nil || s.busy() || len(s.pending) == 0 {
		return 0
	}
	kept := s.pending[:0:0]
	for _, id := range s.pending {
		if c.host.Alive(id) {
			kept = append(kept, id)
		}
	}
	dropped := len(s.pending) - len(kept)
	if dropped == 0 {
		return 0
	}
	if len(kept) == 0 {
		s.reset()
		c.cycle = nil
	} else {
		s.pending = kept
	}
	c.logger.Debug("pruned vanished windows", "dropped", dropped, "pending", len(kept))
	c.notify()
	return dropped
}

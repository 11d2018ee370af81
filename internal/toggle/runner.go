package toggle

import (
	"log/slog"
	"time"
)

// run applies one action to a fixed window sequence, either in a single
// synchronous pass or one window per tick. It is an explicit state machine:
// index is the next window to act on, cancel the pending tick.
type run struct {
	action  Action
	targets []WindowID
	delay   time.Duration

	host   Host
	sched  Scheduler
	logger *slog.Logger
	onDone func(*run)

	index    int
	acted    int
	skipped  int
	affected []WindowID
	cancel   func()
	settle   func()
	stopped  bool
	done     bool
}

func newRun(action Action, targets []WindowID, delay time.Duration, host Host, sched Scheduler, logger *slog.Logger, onDone func(*run)) *run {
	return &run{
		action:  action,
		targets: targets,
		delay:   delay,
		host:    host,
		sched:   sched,
		logger:  logger,
		onDone:  onDone,
	}
}

func (r *run) start() {
	if len(r.targets) == 0 {
		r.finish()
		return
	}
	if r.delay <= 0 {
		for r.index < len(r.targets) {
			r.step()
		}
		r.finish()
		return
	}
	r.cancel = r.sched.AfterFunc(r.delay, r.tick)
}

func (r *run) tick() {
	r.cancel = nil
	if r.stopped || r.done {
		return
	}
	r.step()
	if r.index >= len(r.targets) {
		r.finish()
		return
	}
	r.cancel = r.sched.AfterFunc(r.delay, r.tick)
}

// step acts on the window at index and advances. A window that is gone or
// whose mutator fails is skipped; the run carries on.
func (r *run) step() {
	id := r.targets[r.index]
	r.index++

	if !r.host.Alive(id) {
		r.skipped++
		r.logger.Debug("skipping stale window", "window", id, "action", r.action.String())
		return
	}

	var err error
	switch r.action {
	case ActionMinimize:
		err = r.host.Minimize(id)
	case ActionRestore:
		err = r.host.Unminimize(id)
	}
	if err != nil {
		r.skipped++
		r.logger.Debug("window action failed", "window", id, "action", r.action.String(), "error", err)
		return
	}
	r.acted++
	r.affected = append(r.affected, id)
}

func (r *run) finish() {
	if r.done {
		return
	}
	r.done = true
	if r.onDone != nil {
		r.onDone(r)
	}
}

// stop cancels the pending tick or settle timer. Windows already acted on
// stay as they are.
func (r *run) stop() {
	r.stopped = true
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.settle != nil {
		r.settle()
		r.settle = nil
	}
}

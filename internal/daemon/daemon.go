// Package daemon wires the toggle controller to its front ends: the global
// hotkey, the IPC socket, the session bus and config reloads.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/showdesk/internal/config"
	"github.com/1broseidon/showdesk/internal/eventloop"
	"github.com/1broseidon/showdesk/internal/indicator"
	"github.com/1broseidon/showdesk/internal/ipc"
	"github.com/1broseidon/showdesk/internal/logging"
	"github.com/1broseidon/showdesk/internal/toggle"
)

// Daemon serializes every controller call onto the event loop and keeps
// the live configuration.
type Daemon struct {
	loop       *eventloop.Loop
	controller *toggle.Controller
	logs       *logging.Logger
	logger     *slog.Logger
	configPath string
	startTime  time.Time

	mu         sync.RWMutex
	cfg        *config.Config
	bindHotkey func(string) error
	onLoad     func(files []string)

	// Serializes reloads from SIGHUP, the file watcher and IPC.
	reloadMu sync.Mutex

	// Loop-owned.
	listeners []func(ipc.StatusData)
}

var _ ipc.Service = (*Daemon)(nil)

// New creates a daemon around host. The controller starts inactive; call
// Activate once the front ends are ready.
func New(cfg *config.Config, configPath string, host toggle.Host, loop *eventloop.Loop, logs *logging.Logger) *Daemon {
	d := &Daemon{
		loop:       loop,
		logs:       logs,
		logger:     logs.Component("daemon"),
		configPath: configPath,
		startTime:  time.Now(),
		cfg:        cfg,
	}
	d.controller = toggle.NewController(host, loop, d.options, logs.Component("toggle"))
	d.controller.OnChange(d.stateChanged)
	return d
}

// Config returns the live configuration.
func (d *Daemon) Config() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

func (d *Daemon) options() toggle.Options {
	return d.Config().Options()
}

// SetHotkeyBinder installs the func used to rebind the shortcut on reload.
func (d *Daemon) SetHotkeyBinder(bind func(string) error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bindHotkey = bind
}

// OnLoad installs fn to receive the files read by every successful reload.
func (d *Daemon) OnLoad(fn func(files []string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onLoad = fn
}

// OnStatus registers fn to receive the status after every state change.
// fn runs on the event loop. Register listeners before Activate.
func (d *Daemon) OnStatus(fn func(ipc.StatusData)) {
	d.listeners = append(d.listeners, fn)
}

// Activate creates the toggle session.
func (d *Daemon) Activate(ctx context.Context) error {
	return d.loop.Do(ctx, d.controller.Activate)
}

// Deactivate drops the toggle session and cancels pending timers.
func (d *Daemon) Deactivate(ctx context.Context) error {
	return d.loop.Do(ctx, d.controller.Deactivate)
}

// HotkeyPressed is the global shortcut callback. It runs on the X event
// goroutine and only queues the toggle.
func (d *Daemon) HotkeyPressed() {
	err := d.loop.Post(func() {
		outcome := d.controller.Toggle()
		d.logger.Debug("hotkey toggle", "outcome", outcome)
	})
	if err != nil {
		d.logger.Warn("hotkey toggle dropped", "error", err)
	}
}

// Toggle runs one toggle and reports its outcome.
func (d *Daemon) Toggle(ctx context.Context) (string, error) {
	var outcome toggle.Outcome
	if err := d.loop.Do(ctx, func() {
		outcome = d.controller.Toggle()
	}); err != nil {
		return "", err
	}
	return string(outcome), nil
}

// Status returns the current toggle and indicator state.
func (d *Daemon) Status(ctx context.Context) (ipc.StatusData, error) {
	var st ipc.StatusData
	if err := d.loop.Do(ctx, func() {
		st = d.status(d.controller.State())
	}); err != nil {
		return ipc.StatusData{}, err
	}
	return st, nil
}

// SetEnabled activates or deactivates the toggle session.
func (d *Daemon) SetEnabled(ctx context.Context, enabled bool) error {
	if enabled {
		return d.Activate(ctx)
	}
	return d.Deactivate(ctx)
}

// Prune drops closed windows from the pending restore set.
func (d *Daemon) Prune(ctx context.Context) (int, error) {
	var dropped int
	if err := d.loop.Do(ctx, func() {
		dropped = d.controller.Prune()
	}); err != nil {
		return 0, err
	}
	return dropped, nil
}

// Reload re-reads the config file and applies it. The old config stays in
// effect when the new one fails to load or its hotkey cannot be bound.
func (d *Daemon) Reload(ctx context.Context) error {
	d.reloadMu.Lock()
	defer d.reloadMu.Unlock()

	res, err := config.LoadFromPath(d.configPath)
	if err != nil {
		return err
	}
	if err := d.apply(ctx, res.Config); err != nil {
		return err
	}

	d.mu.RLock()
	onLoad := d.onLoad
	d.mu.RUnlock()
	if onLoad != nil {
		onLoad(res.Files)
	}
	return nil
}

// ReloadLogged runs Reload and logs the result; used by SIGHUP and the
// file watcher.
func (d *Daemon) ReloadLogged(ctx context.Context, trigger string) {
	if err := d.Reload(ctx); err != nil {
		d.logger.Warn("config reload failed", "trigger", trigger, "error", err)
		return
	}
	d.logger.Info("config reloaded", "trigger", trigger)
}

func (d *Daemon) apply(ctx context.Context, cfg *config.Config) error {
	d.mu.RLock()
	old := d.cfg
	bind := d.bindHotkey
	d.mu.RUnlock()

	if bind != nil && old.Hotkey != cfg.Hotkey {
		if err := bind(cfg.Hotkey); err != nil {
			if restoreErr := bind(old.Hotkey); restoreErr != nil {
				d.logger.Error("failed to restore previous hotkey", "hotkey", old.Hotkey, "error", restoreErr)
			}
			return fmt.Errorf("failed to bind hotkey %q: %w", cfg.Hotkey, err)
		}
	}

	d.mu.Lock()
	d.cfg = cfg
	d.mu.Unlock()

	if err := d.logs.SetLevel(cfg.LogLevel); err != nil {
		d.logger.Warn("invalid log level", "level", cfg.LogLevel, "error", err)
	}

	if old.Display != cfg.Display || old.XAuthority != cfg.XAuthority || old.DBus != cfg.DBus {
		d.logger.Warn("display and dbus settings take effect after a restart")
	}

	// The tooltip depends on show_count_in_tooltip.
	return d.loop.Do(ctx, func() {
		d.stateChanged(d.controller.State())
	})
}

func (d *Daemon) stateChanged(st toggle.State) {
	status := d.status(st)
	d.logger.Debug("indicator updated",
		"icon", status.IconName,
		"tooltip", status.Tooltip,
		"pending", status.PendingCount)
	for _, fn := range d.listeners {
		fn(status)
	}
}

// status must run on the loop.
func (d *Daemon) status(st toggle.State) ipc.StatusData {
	cfg := d.Config()
	p := indicator.Present(st.PendingCount, cfg.ShowCountInTooltip)
	return ipc.StatusData{
		DaemonRunning:  true,
		UptimeSeconds:  int64(time.Since(d.startTime).Seconds()),
		Enabled:        d.controller.Active(),
		PendingRestore: st.PendingRestore,
		PendingCount:   st.PendingCount,
		Running:        st.Running,
		Action:         st.Action,
		Scope:          cfg.Options().Scope.String(),
		Hotkey:         cfg.Hotkey,
		IconName:       p.IconName,
		Tooltip:        p.Tooltip,
	}
}

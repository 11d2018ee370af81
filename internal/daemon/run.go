package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/showdesk/internal/config"
	"github.com/1broseidon/showdesk/internal/dbusapi"
	"github.com/1broseidon/showdesk/internal/eventloop"
	"github.com/1broseidon/showdesk/internal/hotkeys"
	"github.com/1broseidon/showdesk/internal/ipc"
	"github.com/1broseidon/showdesk/internal/logging"
	"github.com/1broseidon/showdesk/internal/platform"
)

// RunOptions configures Run.
type RunOptions struct {
	// ConfigPath overrides the default config location.
	ConfigPath string
	LogOutput  io.Writer
}

// Run starts the daemon in the foreground and blocks until SIGINT or
// SIGTERM.
func Run(opts RunOptions) error {
	path := opts.ConfigPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config

	logs := logging.New(opts.LogOutput, cfg.LogLevel)
	logger := logs.Component("daemon")
	logger.Info("configuration loaded",
		"path", path,
		"hotkey", cfg.Hotkey,
		"scope", cfg.Options().Scope.String(),
		"animation_delay_ms", cfg.AnimationDelay)

	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display, cfg.XAuthority)
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer backend.Disconnect()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := eventloop.New(64, logs.Component("eventloop"))
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- loop.Run(ctx)
	}()

	d := New(cfg, path, backend, loop, logs)

	hotkeyHandler, err := hotkeys.NewHandler(backend, logs.Component("hotkeys"))
	if err != nil {
		return err
	}
	d.SetHotkeyBinder(func(seq string) error {
		return hotkeyHandler.Bind(seq, d.HotkeyPressed)
	})
	if err := hotkeyHandler.Bind(cfg.Hotkey, d.HotkeyPressed); err != nil {
		return fmt.Errorf("failed to register hotkey: %w", err)
	}

	ipcServer, err := ipc.NewServer(d, logs.Component("ipc"))
	if err != nil {
		return fmt.Errorf("failed to create IPC server: %w", err)
	}
	if err := ipcServer.Start(); err != nil {
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	defer ipcServer.Stop()

	if cfg.DBus.Enabled {
		bus, err := dbusapi.Start(cfg.DBus.Name, d, logs.Component("dbus"))
		if err != nil {
			logger.Warn("D-Bus service unavailable", "error", err)
		} else {
			defer bus.Close()
			busLogger := logs.Component("dbus")
			d.OnStatus(func(st ipc.StatusData) {
				if err := bus.EmitStateChanged(st); err != nil {
					busLogger.Warn("signal not sent", "error", err)
				}
			})
		}
	}

	if err := d.Activate(ctx); err != nil {
		return fmt.Errorf("failed to activate toggle: %w", err)
	}

	if cfg.ReconcileInterval > 0 {
		reconciler := NewReconciler(ReconcilerConfig{
			Interval: time.Duration(cfg.ReconcileInterval) * time.Second,
			Logger:   logs.Component("reconciler"),
		}, d.Prune)
		go reconciler.Run(ctx)
	}

	watcher := config.NewWatcher(path, config.DefaultWatchDebounce, logs.Component("config"))
	watcher.Track(res.Files)
	d.OnLoad(watcher.Track)
	go func() {
		err := watcher.Run(ctx, func() { d.ReloadLogged(ctx, "file change") })
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("config watcher stopped", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				if sig == syscall.SIGHUP {
					d.ReloadLogged(ctx, "SIGHUP")
					continue
				}
				logger.Info("shutting down", "signal", sig.String())
				shutdownCtx, stop := context.WithTimeout(context.Background(), time.Second)
				if err := d.Deactivate(shutdownCtx); err != nil {
					logger.Warn("failed to deactivate toggle", "error", err)
				}
				stop()
				backend.Quit()
				backend.Disconnect()
				return
			}
		}
	}()

	logger.Info("showdesk daemon started")
	backend.EventLoop()

	cancel()
	<-loopDone
	logger.Info("showdesk daemon stopped")
	return nil
}

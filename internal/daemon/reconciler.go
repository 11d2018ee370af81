package daemon

import (
	"context"
	"log/slog"
	"time"
)

// PruneFunc drops windows that no longer exist from the restore set and
// reports how many were dropped.
type PruneFunc func(ctx context.Context) (int, error)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically drops vanished windows from the pending restore
// set so the indicator does not advertise windows that were closed while
// minimized.
type Reconciler struct {
	interval time.Duration
	timeout  time.Duration
	prune    PruneFunc
	logger   *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, prune PruneFunc) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval: interval,
		timeout:  timeout,
		prune:    prune,
		logger:   logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile(ctx context.Context) int {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	dropped, err := r.prune(ctx)
	if err != nil {
		r.logger.Warn("reconciler: prune failed", "error", err)
		return 0
	}
	if dropped > 0 {
		r.logger.Info("reconciler: dropped vanished windows", "count", dropped)
	}
	return dropped
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow(ctx context.Context) int {
	return r.reconcile(ctx)
}

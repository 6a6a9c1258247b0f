package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

// WindowChecker reports whether a window still exists.
type WindowChecker func(win uint32) bool

// Reconciler periodically drops engines for windows that disappeared
// without a close request, so held display captures are released.
type Reconciler struct {
	interval time.Duration
	manager  *Manager
	exists   WindowChecker
	logger   *slog.Logger
}

// NewReconciler creates a reconciler over the manager's tracked windows.
// A nil exists checker uses the X connection directly.
func NewReconciler(interval time.Duration, manager *Manager, exists WindowChecker, logger *slog.Logger) *Reconciler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	if exists == nil {
		exists = func(win uint32) bool {
			return manager.conn.WindowExists(xproto.Window(win))
		}
	}
	return &Reconciler{
		interval: interval,
		manager:  manager,
		exists:   exists,
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
			r.reconcile()
		}
	}
}

// reconcile performs a single pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	for _, win := range r.manager.Tracked() {
		if r.exists(uint32(win)) {
			continue
		}
		r.logger.Warn("window vanished, releasing engine", "window", uint32(win))
		r.manager.Drop(win)
	}
}

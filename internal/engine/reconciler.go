package engine

import (
	"context"
	"log/slog"
	"time"
)

const defaultReconcileInterval = 30 * time.Second

// Reconciler periodically retries maintenance for items whose last update
// failed. It is the eventual-consistency backstop: a request that ran into
// an open circuit or exhausted retries leaves its item dirty, and the
// reconciler brings it back in step once the store recovers.
type Reconciler struct {
	maintainer *Maintainer
	interval   time.Duration
}

// NewReconciler creates a reconciler over the maintainer's dirty set.
// interval <= 0 uses the default.
func NewReconciler(maintainer *Maintainer, interval time.Duration) *Reconciler {
	if maintainer == nil {
		panic("engine: maintainer must not be nil")
	}
	if interval <= 0 {
		interval = defaultReconcileInterval
	}
	return &Reconciler{
		maintainer: maintainer,
		interval:   interval,
	}
}

// Start runs the reconcile loop until ctx is cancelled, with one final
// sweep on shutdown so a recovered store is not left with known-dirty
// aggregates.
func (r *Reconciler) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("[Reconciler] Starting dirty-aggregate reconciler", "interval", r.interval)

	for {
		select {
		case <-ticker.C:
			r.sweep(ctx)
		case <-ctx.Done():
			slog.Info("[Reconciler] Stopping (context cancelled)")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			r.sweep(shutdownCtx)
			return nil
		}
	}
}

// sweep retries every currently-dirty item once. Items that fail again stay
// dirty and are retried on the next tick; there is no point hammering a
// store the circuit breaker already declared down.
func (r *Reconciler) sweep(ctx context.Context) {
	dirty := r.maintainer.DirtyItems()
	if len(dirty) == 0 {
		return
	}

	slog.Info("[Reconciler] Reconciling dirty aggregates", "count", len(dirty))

	repaired := 0
	for itemID, op := range dirty {
		select {
		case <-ctx.Done():
			slog.Info("[Reconciler] Sweep interrupted by context cancellation",
				"repaired", repaired,
				"remaining", len(dirty)-repaired,
			)
			return
		default:
		}

		if err := r.maintainer.OnChildMutation(ctx, itemID, op); err != nil {
			slog.Warn("[Reconciler] Item still dirty after retry",
				"item_id", itemID,
				"error", err,
			)
			continue
		}
		repaired++
	}

	slog.Info("[Reconciler] Sweep complete",
		"repaired", repaired,
		"still_dirty", len(dirty)-repaired,
	)
}

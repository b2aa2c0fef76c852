// Package sweeper drives the periodic yield and expiry sweeps. One run is
// in flight at a time; failed runs retry after a short backoff. Crediting
// is idempotent per UTC day, so a restart or duplicate tick cannot pay an
// account twice.
package sweeper

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

const (
	defaultInterval = time.Hour
	defaultBackoff  = 30 * time.Second
	maxAttempts     = 3
)

// Sweeper periodically runs the yield, expiry, and audit-retention sweeps.
type Sweeper struct {
	service       *economy.Service
	logger        *zap.Logger
	interval      time.Duration
	backoff       time.Duration
	retentionDays int
	inFlight      atomic.Bool
}

// New wires a Sweeper. A non-positive retentionDays disables audit pruning.
func New(service *economy.Service, logger *zap.Logger, interval time.Duration, backoff time.Duration, retentionDays int) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		service:       service,
		logger:        logger,
		interval:      interval,
		backoff:       backoff,
		retentionDays: retentionDays,
	}
}

// Run blocks until the context is cancelled, sweeping on a fixed interval.
func (sweeper *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sweeper.interval)
	defer ticker.Stop()

	sweeper.sweepOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweeper.sweepOnce(ctx)
		}
	}
}

// sweepOnce runs yield then expiry, skipping when a run is already in
// flight and retrying the whole sweep on failure.
func (sweeper *Sweeper) sweepOnce(ctx context.Context) {
	if !sweeper.inFlight.CompareAndSwap(false, true) {
		sweeper.logger.Warn("sweep skipped, previous run still in flight")
		return
	}
	defer sweeper.inFlight.Store(false)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := sweeper.sweep(ctx); err == nil {
			return
		} else {
			sweeper.logger.Warn("sweep failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(sweeper.backoff):
		}
	}
	sweeper.logger.Error("sweep abandoned until next interval")
}

func (sweeper *Sweeper) sweep(ctx context.Context) error {
	now := sweeper.service.Now()
	day := economy.DayBucket(now)

	yieldReport, err := sweeper.service.RunYieldSweep(ctx, day)
	if err != nil {
		return err
	}
	sweeper.logger.Info("yield sweep done",
		zap.String("day", day),
		zap.Int("accounts_paid", yieldReport.AccountsPaid),
		zap.String("total_ton", yieldReport.TotalCredited.TON()))

	expiryReport, err := sweeper.service.RunExpirySweep(ctx, now.Unix())
	if err != nil {
		return err
	}
	if expiryReport.ItemsExpired > 0 {
		sweeper.logger.Info("expiry sweep done",
			zap.Int("items_expired", expiryReport.ItemsExpired))
	}

	removed, err := sweeper.service.PruneAudit(ctx, sweeper.retentionDays)
	if err != nil {
		return err
	}
	if removed > 0 {
		sweeper.logger.Info("audit retention applied",
			zap.Int("retention_days", sweeper.retentionDays),
			zap.Int64("removed", removed))
	}
	return nil
}

// Package scheduler periodically recomputes and persists the rollup views.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"adpace/internal/core/port"
	"adpace/internal/observability"
)

const refreshTimeout = 5 * time.Minute

// Scheduler drives rollup refreshes on a cron schedule. Each refresh is a
// full recomputation from an immutable snapshot of the record set; the
// repository swaps views transactionally, so readers never observe a
// partially updated view.
type Scheduler struct {
	svc    port.ReportUseCase
	logger *slog.Logger
	cron   *cron.Cron
}

// New creates a scheduler bound to the report usecase.
func New(svc port.ReportUseCase, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		svc:    svc,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start registers the refresh job with the given cron spec (for example
// "@every 15m") and starts the schedule. An immediate refresh runs before
// the first tick so the serve command comes up with populated views.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return err
	}
	go s.refresh()
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	started := time.Now()
	if err := s.svc.RefreshRollups(ctx); err != nil {
		s.logger.Error("rollup refresh failed", slog.Any("error", err))
		return
	}
	elapsed := time.Since(started)
	observability.RollupRefreshDuration.Observe(elapsed.Seconds())
	observability.RollupLastRefresh.SetToCurrentTime()
	s.logger.Info("rollups refreshed", slog.Duration("elapsed", elapsed))
}

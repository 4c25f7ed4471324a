// Package scheduler drives the watch-list evaluation loop on a fixed
// wall-clock cadence.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cinewatch/pathe-monitor/internal/metrics"
	"github.com/cinewatch/pathe-monitor/internal/monitor"
	"github.com/cinewatch/pathe-monitor/internal/processor"
	"github.com/cinewatch/pathe-monitor/internal/watchlist"
)

// Config controls scheduling cadence.
type Config struct {
	// Interval is the cadence between ticks.
	Interval time.Duration
	// Poll bounds shutdown latency: the loop checks for cancellation at
	// this granularity, independent of Interval.
	Poll time.Duration
	// Location is the zone the cadence is anchored in.
	Location *time.Location
}

// Scheduler owns the loop: every Interval it reloads the watch-list and
// runs the processor over every request, strictly sequentially. One
// request's failure never aborts the rest of the tick.
type Scheduler struct {
	cfg   Config
	store *watchlist.Store
	proc  *processor.Processor
	clock monitor.Clock
	log   *zap.Logger
}

// New constructs a Scheduler.
func New(cfg Config, store *watchlist.Store, proc *processor.Processor, clock monitor.Clock, logger *zap.Logger) *Scheduler {
	if cfg.Poll <= 0 {
		cfg.Poll = 500 * time.Millisecond
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Scheduler{
		cfg:   cfg,
		store: store,
		proc:  proc,
		clock: clock,
		log:   logger,
	}
}

// Run blocks until ctx is canceled. The first tick fires one full interval
// after start; the watch-list document is created up front so the operator
// can edit it right away. In-flight HTTP work is not interrupted mid-tick,
// it finishes or times out before the next cancellation check.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.store.Load(); err != nil {
		return fmt.Errorf("prime watch-list: %w", err)
	}

	now := s.clock.Now().In(s.cfg.Location)
	s.log.Info("scheduler started",
		zap.Duration("interval", s.cfg.Interval),
		zap.String("timezone", s.cfg.Location.String()),
		zap.Time("local_time", now),
	)

	next := now.Add(s.cfg.Interval)
	ticker := time.NewTicker(s.cfg.Poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler shutting down")
			return nil
		case <-ticker.C:
			if s.clock.Now().In(s.cfg.Location).Before(next) {
				continue
			}
			s.Tick(ctx)
			next = s.clock.Now().In(s.cfg.Location).Add(s.cfg.Interval)
		}
	}
}

// Tick evaluates the whole watch-list once. Exported so the one-shot
// check command can reuse it.
func (s *Scheduler) Tick(ctx context.Context) {
	metrics.ObserveTick()
	log := s.log.With(zap.String("tick_id", uuid.NewString()))

	list, err := s.store.Load()
	if err != nil {
		log.Error("loading watch-list failed", zap.Error(err))
		return
	}

	log.Info("processing watch requests", zap.Int("count", len(list.Requests)))
	var matched, failed int
	for _, req := range list.Requests {
		if ctx.Err() != nil {
			log.Warn("tick interrupted", zap.Error(ctx.Err()))
			return
		}
		switch s.proc.Process(ctx, req) {
		case processor.OutcomeMatched:
			matched++
		case processor.OutcomeFetchFailed, processor.OutcomeParseFailed:
			failed++
		}
	}

	log.Info("tick finished",
		zap.Int("requests", len(list.Requests)),
		zap.Int("matched", matched),
		zap.Int("failed", failed),
	)
}

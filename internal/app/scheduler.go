package app

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/wolfpack-fantasy/leaguehub/external/jobqueue"
	"github.com/wolfpack-fantasy/leaguehub/internal/platform/logging"
	"github.com/wolfpack-fantasy/leaguehub/internal/usecase"
)

type SchedulerConfig struct {
	Enabled  bool
	Interval time.Duration
	Timeout  time.Duration
}

// Scheduler triggers the league sync on a fixed interval. When a QStash
// publisher is configured the trigger is published as a delayed callback to
// the internal job endpoint, so the run survives instance restarts; without
// one the sync runs in-process.
type Scheduler struct {
	cfg       SchedulerConfig
	sync      *usecase.SyncService
	publisher *jobqueue.QStashPublisher
	logger    *logging.Logger
	wg        conc.WaitGroup
	now       func() time.Time
}

func NewScheduler(
	cfg SchedulerConfig,
	sync *usecase.SyncService,
	publisher *jobqueue.QStashPublisher,
	logger *logging.Logger,
) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	return &Scheduler{
		cfg:       cfg,
		sync:      sync,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Start launches the scheduling loop. It returns immediately; use Wait to
// block until the loop has drained after ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.Info("sync scheduler disabled")
		return
	}

	s.logger.Info("sync scheduler starting",
		"interval", s.cfg.Interval.String(),
		"timeout", s.cfg.Timeout.String(),
		"mode", s.mode(),
	)

	s.wg.Go(func() {
		s.loop(ctx)
	})
}

func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) mode() string {
	if s.publisher != nil {
		return "qstash"
	}
	return "in-process"
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.trigger(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sync scheduler stopped")
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	if s.publisher != nil {
		dedupID := "league-sync-" + s.now().UTC().Format("20060102T150405Z")
		if err := s.publisher.Enqueue(ctx, "/v1/internal/jobs/sync", nil, 0, dedupID); err != nil {
			s.logger.ErrorContext(ctx, "enqueue sync job failed", "error", err)
		}
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	report, err := s.sync.Run(runCtx)
	if err != nil {
		s.logger.ErrorContext(ctx, "league sync not runnable", "error", err)
		return
	}
	if !report.Success {
		s.logger.WarnContext(ctx, "league sync failed",
			"message", report.Message,
			"duration_ms", report.DurationMs,
		)
		return
	}
	s.logger.InfoContext(ctx, "league sync completed",
		"team_count", report.TeamCount,
		"result_count", report.ResultCount,
		"weeks_touched", report.WeeksTouched,
		"duration_ms", report.DurationMs,
	)
}

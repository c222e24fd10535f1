package app

import (
	"context"
	"time"

	"github.com/riskibarqy/pickem-league/external/jobqueue"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

type SchedulerConfig struct {
	ScheduleInterval  time.Duration
	ScoresInterval    time.Duration
	OddsInterval      time.Duration
	StandingsInterval time.Duration
}

// Scheduler periodically enqueues the internal jobs through QStash so the
// sync and grading work runs through the same endpoints as ad hoc runs.
type Scheduler struct {
	publisher *jobqueue.QStashPublisher
	cfg       SchedulerConfig
	logger    *logging.Logger
	cancel    context.CancelFunc
	wg        conc.WaitGroup
}

func NewScheduler(publisher *jobqueue.QStashPublisher, cfg SchedulerConfig, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.launch(ctx, "sync-schedule", s.cfg.ScheduleInterval, func(ctx context.Context) error {
		return s.publisher.EnqueueScheduleSync(ctx, "", 0)
	})
	s.launch(ctx, "sync-scores", s.cfg.ScoresInterval, func(ctx context.Context) error {
		return s.publisher.EnqueueScoreSync(ctx, "", 0)
	})
	s.launch(ctx, "sync-odds", s.cfg.OddsInterval, func(ctx context.Context) error {
		return s.publisher.EnqueueOddsSync(ctx, "", 0)
	})
	s.launch(ctx, "calculate-standings", s.cfg.StandingsInterval, func(ctx context.Context) error {
		return s.publisher.EnqueueStandingsCalculation(ctx, nil, 0)
	})

	s.logger.Info("job scheduler started",
		"schedule_interval", s.cfg.ScheduleInterval,
		"scores_interval", s.cfg.ScoresInterval,
		"odds_interval", s.cfg.OddsInterval,
		"standings_interval", s.cfg.StandingsInterval,
	)
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("job scheduler stopped")
}

func (s *Scheduler) launch(ctx context.Context, job string, interval time.Duration, enqueue func(context.Context) error) {
	if interval <= 0 {
		s.logger.Warn("job loop disabled", "job", job, "reason", "non-positive interval")
		return
	}

	s.wg.Go(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := enqueue(ctx); err != nil {
					s.logger.WarnContext(ctx, "enqueue job failed", "job", job, "error", err)
				}
			}
		}
	})
}

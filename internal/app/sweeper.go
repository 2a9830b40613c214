package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/service"
)

// SessionSweeper runs the background cleanup of live sessions that were
// started but never explicitly completed.
type SessionSweeper struct {
	schedules *service.ScheduleService
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
}

func NewSessionSweeper(schedules *service.ScheduleService, interval time.Duration, logger *zap.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &SessionSweeper{
		schedules: schedules,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

func (s *SessionSweeper) Start(ctx context.Context) {
	s.logger.Info("Starting session sweeper", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *SessionSweeper) Stop() {
	s.logger.Info("Stopping session sweeper")
	close(s.stopChan)
}

func (s *SessionSweeper) run(ctx context.Context) {
	// First sweep right away so a restart does not leave stale sessions
	// open for a full interval.
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Session sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session sweeper cancelled")
			return
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	if _, err := s.schedules.CompleteElapsedSessions(ctx); err != nil {
		s.logger.Error("Session sweep failed", zap.Error(err))
	}
}

package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
)

// LogSink writes booking events to the structured log. It is the default
// sink when no external channel is configured.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) BookingChanged(_ context.Context, learnerID, courseID int64, detail string) {
	s.logger.Info("booking changed",
		zap.Int64("learner_id", learnerID),
		zap.Int64("course_id", courseID),
		zap.String("detail", detail),
	)
}

func (s *LogSink) ConflictDetected(_ context.Context, learnerID int64, report schedule.ConflictReport) {
	s.logger.Info("booking conflict detected",
		zap.Int64("learner_id", learnerID),
		zap.Bool("day_conflict", report.DayConflict),
		zap.Ints("slot_conflicts", report.SlotConflicts),
	)
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
)

// AccessService answers "may this learner open this lecture occurrence right
// now". Data errors while resolving the entry, the course type or the
// lecture's override flags downgrade the answer to a locked decision instead
// of propagating: access checks fail closed, never open.
type AccessService struct {
	courses CourseStore
	content CourseContentProvider
	entries ScheduleStore
	clock   Clock
	logger  *zap.Logger
}

func NewAccessService(
	courses CourseStore,
	content CourseContentProvider,
	entries ScheduleStore,
	clock Clock,
	logger *zap.Logger,
) *AccessService {
	return &AccessService{
		courses: courses,
		content: content,
		entries: entries,
		clock:   clock,
		logger:  logger,
	}
}

// CheckAccess evaluates the entry's accessibility at the given instant
// (zero `at` means "now"). Unknown entry ids surface as ErrNotFound; any
// other failure yields (false, api_error) with a nil error.
func (s *AccessService) CheckAccess(ctx context.Context, entryID int64, at time.Time) (model.AccessDecision, error) {
	entry, err := s.entries.GetEntry(ctx, entryID)
	if err != nil {
		return s.deny(entryID, "load entry", err), nil
	}
	if entry == nil {
		return model.AccessDecision{}, fmt.Errorf("entry %d: %w", entryID, ErrNotFound)
	}

	course, err := s.courses.GetCourse(ctx, entry.CourseID)
	if err != nil || course == nil {
		return s.deny(entryID, "load course", err), nil
	}

	// Placeholder entries carry no lecture row; they have no override flags.
	var flags schedule.LectureFlags
	if entry.LectureID != 0 {
		lecture, err := s.content.GetLecture(ctx, entry.LectureID)
		if err != nil {
			return s.deny(entryID, "load lecture flags", err), nil
		}
		if lecture != nil {
			flags = schedule.LectureFlags{IsDemo: lecture.IsDemo, IsAccessible: lecture.IsAccessible}
		}
	}

	if at.IsZero() {
		at = s.clock.Now()
	}
	return schedule.EvaluateAccess(*entry, course.Type, flags, at), nil
}

func (s *AccessService) deny(entryID int64, op string, err error) model.AccessDecision {
	s.logger.Warn("Access check degraded to locked",
		zap.Int64("entry_id", entryID),
		zap.String("op", op),
		zap.Error(err),
	)
	return model.AccessDecision{Accessible: false, Reason: model.AccessReasonAPIError}
}

package schedule

import (
	"time"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
)

// LectureFlags are the authoring overrides resolved for the entry's lecture.
type LectureFlags struct {
	IsDemo       bool
	IsAccessible bool
}

// EvaluateAccess decides whether a learner may open one scheduled lecture
// occurrence at the given instant. It is a pure function of its inputs and
// must be re-evaluated on every check: recorded entries unlock as time
// passes, and live entries can flip with the session status.
//
// Rules, in priority order:
//  1. demo lectures and authoring overrides are always open
//  2. recorded courses unlock once the scheduled date has passed, permanently
//  3. live courses are open on the scheduled calendar day, or whenever the
//     instructor has the session running regardless of date
func EvaluateAccess(entry model.ScheduleEntry, courseType model.CourseType, flags LectureFlags, now time.Time) model.AccessDecision {
	if flags.IsDemo {
		return model.AccessDecision{Accessible: true, Reason: model.AccessReasonDemoLecture}
	}
	if flags.IsAccessible {
		return model.AccessDecision{Accessible: true, Reason: model.AccessReasonAlreadyAccessible}
	}

	if courseType == model.CourseTypeRecorded {
		if !entry.ScheduledDate.After(now) {
			return model.AccessDecision{Accessible: true, Reason: model.AccessReasonTimeWindowOpen}
		}
		return model.AccessDecision{Accessible: false, Reason: model.AccessReasonLockedFuture}
	}

	if entry.SessionStatus == model.SessionStatusLive {
		return model.AccessDecision{Accessible: true, Reason: model.AccessReasonLiveNow}
	}
	if sameCalendarDay(entry.ScheduledDate, now) {
		return model.AccessDecision{Accessible: true, Reason: model.AccessReasonLiveNow}
	}
	return model.AccessDecision{Accessible: false, Reason: model.AccessReasonLockedNotToday}
}

func sameCalendarDay(scheduled, now time.Time) bool {
	now = now.In(scheduled.Location())
	return scheduled.Year() == now.Year() && scheduled.YearDay() == now.YearDay()
}

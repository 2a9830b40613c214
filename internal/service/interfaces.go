package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
)

// Clock supplies the current time. Injected so access windows and past-date
// guards are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// CourseStore reads and writes course records.
type CourseStore interface {
	GetCourse(ctx context.Context, id int64) (*model.Course, error)
	CreateCourse(ctx context.Context, course *model.Course, lectures []model.LectureRef) error
}

// CourseContentProvider yields a course's lectures in content order,
// already normalized from the stored module/lecture rows.
type CourseContentProvider interface {
	GetLectures(ctx context.Context, courseID int64) ([]model.LectureRef, error)
	GetLecture(ctx context.Context, lectureID int64) (*model.LectureRef, error)
}

// PreferenceStore reads the per-course SchedulingPreference. Writes go
// through ScheduleStore.Replace, which swaps the preference together with
// the generated schedule in one transaction.
type PreferenceStore interface {
	Load(ctx context.Context, courseID int64) (*model.SchedulingPreference, error)
}

// ScheduleStore persists generated schedule entries. Replace swaps a
// course's whole schedule atomically together with its preference row;
// a failed replace leaves the previous schedule untouched.
type ScheduleStore interface {
	LoadByCourse(ctx context.Context, courseID int64) ([]*model.ScheduleEntry, error)
	GetEntry(ctx context.Context, entryID int64) (*model.ScheduleEntry, error)
	Replace(ctx context.Context, prefs *model.SchedulingPreference, generationID uuid.UUID, entries []*model.ScheduleEntry) error
	UpdateSessionStatus(ctx context.Context, entryID int64, status model.SessionStatus) error
	CompleteElapsedLiveSessions(ctx context.Context, startedBefore time.Time) (int64, error)
}

// BookingStore persists learner bookings and computes the learner's
// conflict snapshots across all courses.
type BookingStore interface {
	LoadSnapshots(ctx context.Context, learnerID int64) ([]schedule.BookingSnapshot, error)
	GetForEntry(ctx context.Context, learnerID, entryID int64) (*model.LearnerBooking, error)
	Bind(ctx context.Context, bookings []*model.LearnerBooking) error
	UpdateSlot(ctx context.Context, bookingID int64, slotID int, scheduledDate time.Time) error

	// WithSlotLock runs fn under an exclusive lock on the learner's
	// (weekday, slot) target so concurrent reschedules into the same cell
	// cannot both succeed. The store passed to fn operates inside the
	// lock's transaction.
	WithSlotLock(ctx context.Context, learnerID int64, weekday time.Weekday, slotID int, fn func(BookingStore) error) error
}

// NotificationSink receives fire-and-forget booking events. Implementations
// must never fail the calling operation.
type NotificationSink interface {
	BookingChanged(ctx context.Context, learnerID, courseID int64, detail string)
	ConflictDetected(ctx context.Context, learnerID int64, report schedule.ConflictReport)
}

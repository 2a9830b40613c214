package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeCourseStore struct {
	courses map[int64]*model.Course
	err     error
}

func (f *fakeCourseStore) GetCourse(ctx context.Context, id int64) (*model.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.courses[id], nil
}

func (f *fakeCourseStore) CreateCourse(ctx context.Context, course *model.Course, lectures []model.LectureRef) error {
	if f.err != nil {
		return f.err
	}
	course.ID = int64(len(f.courses) + 1)
	if f.courses == nil {
		f.courses = map[int64]*model.Course{}
	}
	f.courses[course.ID] = course
	return nil
}

type fakeContentProvider struct {
	lectures map[int64][]model.LectureRef
	byID     map[int64]*model.LectureRef
	err      error
}

func (f *fakeContentProvider) GetLectures(ctx context.Context, courseID int64) ([]model.LectureRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lectures[courseID], nil
}

func (f *fakeContentProvider) GetLecture(ctx context.Context, lectureID int64) (*model.LectureRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[lectureID], nil
}

type fakePreferenceStore struct {
	prefs map[int64]*model.SchedulingPreference
	err   error
}

func (f *fakePreferenceStore) Load(ctx context.Context, courseID int64) (*model.SchedulingPreference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.prefs[courseID], nil
}

type fakeScheduleStore struct {
	byCourse   map[int64][]*model.ScheduleEntry
	byID       map[int64]*model.ScheduleEntry
	getErr     error
	replaceErr error
	replaced   int
	statuses   map[int64]model.SessionStatus
}

func (f *fakeScheduleStore) LoadByCourse(ctx context.Context, courseID int64) ([]*model.ScheduleEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byCourse[courseID], nil
}

func (f *fakeScheduleStore) GetEntry(ctx context.Context, entryID int64) (*model.ScheduleEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byID[entryID], nil
}

func (f *fakeScheduleStore) Replace(ctx context.Context, prefs *model.SchedulingPreference, generationID uuid.UUID, entries []*model.ScheduleEntry) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	if f.byCourse == nil {
		f.byCourse = map[int64][]*model.ScheduleEntry{}
	}
	for i, e := range entries {
		e.ID = int64(i + 1)
	}
	f.byCourse[prefs.CourseID] = entries
	f.replaced++
	return nil
}

func (f *fakeScheduleStore) UpdateSessionStatus(ctx context.Context, entryID int64, status model.SessionStatus) error {
	if f.statuses == nil {
		f.statuses = map[int64]model.SessionStatus{}
	}
	f.statuses[entryID] = status
	return nil
}

func (f *fakeScheduleStore) CompleteElapsedLiveSessions(ctx context.Context, startedBefore time.Time) (int64, error) {
	if f.getErr != nil {
		return 0, f.getErr
	}
	var closed int64
	for _, e := range f.byID {
		if e.SessionStatus == model.SessionStatusLive && e.ScheduledDate.Before(startedBefore) {
			e.SessionStatus = model.SessionStatusCompleted
			closed++
		}
	}
	return closed, nil
}

type slotUpdate struct {
	bookingID int64
	slotID    int
	date      time.Time
}

type fakeBookingStore struct {
	snapshots []schedule.BookingSnapshot
	snapErr   error
	byEntry   map[int64]*model.LearnerBooking
	bound     []*model.LearnerBooking
	bindErr   error
	updates   []slotUpdate
	lockCalls int
}

func (f *fakeBookingStore) LoadSnapshots(ctx context.Context, learnerID int64) ([]schedule.BookingSnapshot, error) {
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	return f.snapshots, nil
}

func (f *fakeBookingStore) GetForEntry(ctx context.Context, learnerID, entryID int64) (*model.LearnerBooking, error) {
	return f.byEntry[entryID], nil
}

func (f *fakeBookingStore) Bind(ctx context.Context, bookings []*model.LearnerBooking) error {
	if f.bindErr != nil {
		return f.bindErr
	}
	f.bound = append(f.bound, bookings...)
	return nil
}

func (f *fakeBookingStore) UpdateSlot(ctx context.Context, bookingID int64, slotID int, scheduledDate time.Time) error {
	f.updates = append(f.updates, slotUpdate{bookingID: bookingID, slotID: slotID, date: scheduledDate})
	return nil
}

func (f *fakeBookingStore) WithSlotLock(ctx context.Context, learnerID int64, weekday time.Weekday, slotID int, fn func(BookingStore) error) error {
	f.lockCalls++
	return fn(f)
}

type recordingSink struct {
	changed   int
	conflicts int
}

func (r *recordingSink) BookingChanged(ctx context.Context, learnerID, courseID int64, detail string) {
	r.changed++
}

func (r *recordingSink) ConflictDetected(ctx context.Context, learnerID int64, report schedule.ConflictReport) {
	r.conflicts++
}

func testLogger() *zap.Logger { return zap.NewNop() }

func asConfigError(err error, target **ConfigurationError) bool {
	return errors.As(err, target)
}

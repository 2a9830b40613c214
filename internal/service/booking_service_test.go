package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
)

func enrollFixture() (*fakeCourseStore, *fakePreferenceStore, *fakeScheduleStore, *fakeBookingStore) {
	courses := &fakeCourseStore{courses: map[int64]*model.Course{
		1: {ID: 1, Title: "Go Basics", Type: model.CourseTypeRecorded},
	}}
	prefs := &fakePreferenceStore{prefs: map[int64]*model.SchedulingPreference{
		1: {
			CourseID:        1,
			Weekday:         "wednesday",
			SlotsPerDay:     2,
			SelectedSlotIDs: []int{1, 2},
		},
	}}
	entries := &fakeScheduleStore{byCourse: map[int64][]*model.ScheduleEntry{
		1: {
			{ID: 100, CourseID: 1, SlotID: 1, ScheduledDate: time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)},
			{ID: 101, CourseID: 1, SlotID: 2, ScheduledDate: time.Date(2024, time.January, 10, 9, 45, 0, 0, time.UTC)},
		},
	}}
	bookings := &fakeBookingStore{}
	return courses, prefs, entries, bookings
}

func TestEnroll_BindsFullSchedule(t *testing.T) {
	courses, prefs, entries, bookings := enrollFixture()
	sink := &recordingSink{}
	svc := NewBookingService(courses, prefs, entries, bookings, sink, testLogger())

	result, err := svc.Enroll(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(result.Bookings))
	}
	if result.Warning {
		t.Fatal("no warning expected")
	}
	for i, b := range result.Bookings {
		if b.LearnerID != 42 || b.Status != model.BookingStatusActive {
			t.Fatalf("booking %d malformed: %+v", i, b)
		}
	}
	if sink.changed != 1 {
		t.Fatalf("expected one booking-changed event, got %d", sink.changed)
	}
}

func TestEnroll_RejectsOnDayConflict(t *testing.T) {
	courses, prefs, entries, bookings := enrollFixture()
	bookings.snapshots = []schedule.BookingSnapshot{
		{CourseID: 9, CourseType: model.CourseTypeRecorded, Weekday: time.Wednesday, SlotID: 7},
	}
	sink := &recordingSink{}
	svc := NewBookingService(courses, prefs, entries, bookings, sink, testLogger())

	_, err := svc.Enroll(context.Background(), 42, 1)
	ce, ok := AsConflictError(err)
	if !ok || ce.Reason != RejectDayConflict {
		t.Fatalf("expected day_conflict, got %v", err)
	}
	if len(bookings.bound) != 0 {
		t.Fatal("rejected enrollment must not bind bookings")
	}
	if sink.conflicts != 1 {
		t.Fatalf("expected conflict notification, got %d", sink.conflicts)
	}
}

// When the occupied day also blocks one of the selected slots, the slot is
// the more specific rejection and wins over day_conflict.
func TestEnroll_SlotConflictWinsOverDayConflict(t *testing.T) {
	courses, prefs, entries, bookings := enrollFixture()
	bookings.snapshots = []schedule.BookingSnapshot{
		{CourseID: 9, CourseType: model.CourseTypeLive, Weekday: time.Wednesday, SlotID: 1},
	}
	svc := NewBookingService(courses, prefs, entries, bookings, &recordingSink{}, testLogger())

	_, err := svc.Enroll(context.Background(), 42, 1)
	ce, ok := AsConflictError(err)
	if !ok || ce.Reason != RejectSlotConflict {
		t.Fatalf("expected slot_conflict, got %v", err)
	}
	if len(ce.SlotIDs) != 1 || ce.SlotIDs[0] != 1 {
		t.Fatalf("rejection must name the blocked slot, got %v", ce.SlotIDs)
	}
	if len(bookings.bound) != 0 {
		t.Fatal("rejected enrollment must not bind bookings")
	}
}

// An unreadable booking set degrades to a warning instead of blocking
// enrollment: infrastructure failure must not wrongly prevent it.
func TestEnroll_SoftWarnWhenBookingsUnavailable(t *testing.T) {
	courses, prefs, entries, bookings := enrollFixture()
	bookings.snapErr = errors.New("bookings table unreachable")
	svc := NewBookingService(courses, prefs, entries, bookings, &recordingSink{}, testLogger())

	result, err := svc.Enroll(context.Background(), 42, 1)
	if err != nil {
		t.Fatalf("enrollment must proceed: %v", err)
	}
	if !result.Warning {
		t.Fatal("expected a soft warning")
	}
	if len(result.Bookings) != 2 {
		t.Fatalf("expected bookings bound despite warning, got %d", len(result.Bookings))
	}
}

func TestEnroll_NoScheduleYet(t *testing.T) {
	courses, prefs, entries, bookings := enrollFixture()
	entries.byCourse = nil
	svc := NewBookingService(courses, prefs, entries, bookings, &recordingSink{}, testLogger())

	var cfg *ConfigurationError
	if _, err := svc.Enroll(context.Background(), 42, 1); !asConfigError(err, &cfg) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCheckConflicts_ReportsAndSoftWarns(t *testing.T) {
	courses, prefs, entries, bookings := enrollFixture()
	bookings.snapshots = []schedule.BookingSnapshot{
		{CourseID: 9, CourseType: model.CourseTypeLive, Weekday: time.Monday, SlotID: 4},
	}
	svc := NewBookingService(courses, prefs, entries, bookings, &recordingSink{}, testLogger())

	result, err := svc.CheckConflicts(context.Background(), 42, "monday", []int{4, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Report.DayConflict || !result.Report.SlotConflicted(4) {
		t.Fatalf("unexpected report: %+v", result.Report)
	}
	if result.Warning {
		t.Fatal("no warning expected")
	}

	bookings.snapErr = errors.New("bookings table unreachable")
	result, err = svc.CheckConflicts(context.Background(), 42, "monday", []int{4})
	if err != nil {
		t.Fatalf("degraded query must not error: %v", err)
	}
	if !result.Warning || result.Report.HasConflict() {
		t.Fatalf("expected empty report with warning, got %+v", result)
	}
}

func TestCheckConflicts_InvalidInput(t *testing.T) {
	courses, prefs, entries, bookings := enrollFixture()
	svc := NewBookingService(courses, prefs, entries, bookings, &recordingSink{}, testLogger())

	var cfg *ConfigurationError
	if _, err := svc.CheckConflicts(context.Background(), 42, "noday", []int{1}); !asConfigError(err, &cfg) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := svc.CheckConflicts(context.Background(), 42, "monday", []int{77}); !asConfigError(err, &cfg) {
		t.Fatalf("expected configuration error for unknown slot, got %v", err)
	}
}

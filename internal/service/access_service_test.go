package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
)

func accessFixture() (*fakeCourseStore, *fakeContentProvider, *fakeScheduleStore) {
	courses := &fakeCourseStore{courses: map[int64]*model.Course{
		1: {ID: 1, Title: "Go Basics", Type: model.CourseTypeRecorded},
	}}
	content := &fakeContentProvider{byID: map[int64]*model.LectureRef{
		10: {LectureID: 10, ModuleOrder: 1, LectureOrder: 1},
	}}
	entries := &fakeScheduleStore{byID: map[int64]*model.ScheduleEntry{
		100: {
			ID:            100,
			CourseID:      1,
			LectureID:     10,
			SlotID:        1,
			ScheduledDate: time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC),
			SessionStatus: model.SessionStatusScheduled,
		},
	}}
	return courses, content, entries
}

func TestCheckAccess_RecordedGate(t *testing.T) {
	courses, content, entries := accessFixture()
	svc := NewAccessService(courses, content, entries, fixedClock{}, testLogger())

	before := time.Date(2024, time.January, 9, 12, 0, 0, 0, time.UTC)
	dec, err := svc.CheckAccess(context.Background(), 100, before)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Accessible || dec.Reason != model.AccessReasonLockedFuture {
		t.Fatalf("expected locked_future, got (%v, %q)", dec.Accessible, dec.Reason)
	}

	after := time.Date(2024, time.January, 10, 0, 0, 1, 0, time.UTC)
	dec, err = svc.CheckAccess(context.Background(), 100, after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dec.Accessible || dec.Reason != model.AccessReasonTimeWindowOpen {
		t.Fatalf("expected time_window_open, got (%v, %q)", dec.Accessible, dec.Reason)
	}
}

func TestCheckAccess_UsesClockWhenNoInstantGiven(t *testing.T) {
	courses, content, entries := accessFixture()
	clock := fixedClock{now: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)}
	svc := NewAccessService(courses, content, entries, clock, testLogger())

	dec, err := svc.CheckAccess(context.Background(), 100, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dec.Accessible {
		t.Fatal("entry is in the past relative to the injected clock")
	}
}

func TestCheckAccess_UnknownEntry(t *testing.T) {
	courses, content, entries := accessFixture()
	svc := NewAccessService(courses, content, entries, fixedClock{}, testLogger())

	_, err := svc.CheckAccess(context.Background(), 999, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Store failures must lock the lecture, not fail the request and not open it.
func TestCheckAccess_FailsClosed(t *testing.T) {
	boom := errors.New("connection refused")

	t.Run("entry store down", func(t *testing.T) {
		courses, content, entries := accessFixture()
		entries.getErr = boom
		svc := NewAccessService(courses, content, entries, fixedClock{}, testLogger())

		dec, err := svc.CheckAccess(context.Background(), 100, time.Now())
		if err != nil {
			t.Fatalf("data errors must not propagate: %v", err)
		}
		if dec.Accessible || dec.Reason != model.AccessReasonAPIError {
			t.Fatalf("expected api_error lock, got (%v, %q)", dec.Accessible, dec.Reason)
		}
	})

	t.Run("course store down", func(t *testing.T) {
		courses, content, entries := accessFixture()
		courses.err = boom
		svc := NewAccessService(courses, content, entries, fixedClock{}, testLogger())

		dec, _ := svc.CheckAccess(context.Background(), 100, time.Now())
		if dec.Accessible || dec.Reason != model.AccessReasonAPIError {
			t.Fatalf("expected api_error lock, got (%v, %q)", dec.Accessible, dec.Reason)
		}
	})

	t.Run("flag lookup down", func(t *testing.T) {
		courses, content, entries := accessFixture()
		content.err = boom
		svc := NewAccessService(courses, content, entries, fixedClock{}, testLogger())

		dec, _ := svc.CheckAccess(context.Background(), 100, time.Now())
		if dec.Accessible || dec.Reason != model.AccessReasonAPIError {
			t.Fatalf("expected api_error lock, got (%v, %q)", dec.Accessible, dec.Reason)
		}
	})
}

func TestCheckAccess_DemoFlagFromContent(t *testing.T) {
	courses, content, entries := accessFixture()
	content.byID[10].IsDemo = true
	svc := NewAccessService(courses, content, entries, fixedClock{}, testLogger())

	// Far before the scheduled date: only the demo flag can open it.
	dec, err := svc.CheckAccess(context.Background(), 100, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dec.Accessible || dec.Reason != model.AccessReasonDemoLecture {
		t.Fatalf("expected demo_lecture, got (%v, %q)", dec.Accessible, dec.Reason)
	}
}

func TestCheckAccess_PlaceholderEntryHasNoFlags(t *testing.T) {
	courses, content, entries := accessFixture()
	entries.byID[100].LectureID = 0
	content.err = errors.New("must not be called")
	svc := NewAccessService(courses, content, entries, fixedClock{}, testLogger())

	dec, err := svc.CheckAccess(context.Background(), 100, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dec.Accessible || dec.Reason != model.AccessReasonTimeWindowOpen {
		t.Fatalf("placeholder entries follow the date gate, got (%v, %q)", dec.Accessible, dec.Reason)
	}
}

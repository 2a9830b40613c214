package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
)

// BookingService binds learners to course schedules and answers conflict
// queries across a learner's whole week.
type BookingService struct {
	courses  CourseStore
	prefs    PreferenceStore
	entries  ScheduleStore
	bookings BookingStore
	notify   NotificationSink
	logger   *zap.Logger
}

func NewBookingService(
	courses CourseStore,
	prefs PreferenceStore,
	entries ScheduleStore,
	bookings BookingStore,
	notify NotificationSink,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		courses:  courses,
		prefs:    prefs,
		entries:  entries,
		bookings: bookings,
		notify:   notify,
		logger:   logger,
	}
}

// EnrollResult reports what the enrollment produced. Warning is set when the
// learner's existing bookings could not be loaded and the conflict check was
// skipped rather than blocking the enrollment.
type EnrollResult struct {
	Bookings []*model.LearnerBooking `json:"bookings"`
	Report   schedule.ConflictReport `json:"report"`
	Warning  bool                    `json:"warning,omitempty"`
}

// Enroll binds the learner to every entry of the course's generated
// schedule. Conflicts with the learner's other courses reject the
// enrollment; an unreadable booking set only degrades to a warning.
func (s *BookingService) Enroll(ctx context.Context, learnerID, courseID int64) (*EnrollResult, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
	}

	entries, err := s.entries.LoadByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	if len(entries) == 0 {
		return nil, &ConfigurationError{Field: "course_id", Detail: "course has no generated schedule"}
	}

	result := &EnrollResult{}

	prefs, err := s.prefs.Load(ctx, courseID)
	if err != nil {
		// A missing preference row is not a reason to block enrollment.
		s.logger.Warn("Enrollment conflict check skipped",
			zap.Int64("learner_id", learnerID),
			zap.Int64("course_id", courseID),
			zap.Error(err))
		result.Warning = true
		prefs = nil
	}

	if prefs != nil && prefs.Weekday != "" {
		weekday, wdErr := schedule.ParseWeekday(prefs.Weekday)
		if wdErr == nil {
			snapshots, err := s.bookings.LoadSnapshots(ctx, learnerID)
			if err != nil {
				s.logger.Warn("Learner bookings unavailable, enrolling without conflict check",
					zap.Int64("learner_id", learnerID),
					zap.Error(err))
				result.Warning = true
			} else {
				report := schedule.DetectConflicts(snapshots, schedule.BookingCandidate{
					CourseID:   courseID,
					CourseType: course.Type,
					Weekday:    weekday,
					SlotIDs:    prefs.SelectedSlotIDs,
				})
				result.Report = report
				if len(report.SlotConflicts) > 0 {
					s.notify.ConflictDetected(ctx, learnerID, report)
					return nil, &ConflictError{Reason: RejectSlotConflict, Weekday: prefs.Weekday, SlotIDs: report.SlotConflicts}
				}
				if report.DayConflict {
					s.notify.ConflictDetected(ctx, learnerID, report)
					return nil, &ConflictError{Reason: RejectDayConflict, Weekday: prefs.Weekday}
				}
			}
		}
	}

	bookings := make([]*model.LearnerBooking, 0, len(entries))
	for _, entry := range entries {
		bookings = append(bookings, &model.LearnerBooking{
			LearnerID:     learnerID,
			CourseID:      courseID,
			EntryID:       entry.ID,
			SlotID:        entry.SlotID,
			ScheduledDate: entry.ScheduledDate,
			Status:        model.BookingStatusActive,
		})
	}
	if err := s.bookings.Bind(ctx, bookings); err != nil {
		return nil, fmt.Errorf("bind bookings: %w", err)
	}
	result.Bookings = bookings

	s.logger.Info("Learner enrolled",
		zap.Int64("learner_id", learnerID),
		zap.Int64("course_id", courseID),
		zap.Int("bookings", len(bookings)),
	)
	s.notify.BookingChanged(ctx, learnerID, courseID, fmt.Sprintf("enrolled with %d sessions", len(bookings)))

	return result, nil
}

// ConflictQueryResult carries a conflict report plus a soft warning when the
// booking set could not be loaded. A degraded answer never blocks the caller.
type ConflictQueryResult struct {
	Report  schedule.ConflictReport `json:"report"`
	Warning bool                    `json:"warning,omitempty"`
}

// CheckConflicts reports what a prospective (weekday, slots) booking would
// collide with in the learner's current week.
func (s *BookingService) CheckConflicts(ctx context.Context, learnerID int64, weekdayToken string, slotIDs []int) (*ConflictQueryResult, error) {
	weekday, err := schedule.ParseWeekday(weekdayToken)
	if err != nil {
		return nil, &ConfigurationError{Field: "weekday", Detail: err.Error()}
	}
	for _, id := range slotIDs {
		if _, err := schedule.SlotByID(id); err != nil {
			return nil, &ConfigurationError{Field: "slot_ids", Detail: err.Error()}
		}
	}

	snapshots, err := s.bookings.LoadSnapshots(ctx, learnerID)
	if err != nil {
		s.logger.Warn("Learner bookings unavailable for conflict query",
			zap.Int64("learner_id", learnerID),
			zap.Error(err))
		return &ConflictQueryResult{Warning: true}, nil
	}

	report := schedule.DetectConflicts(snapshots, schedule.BookingCandidate{
		CourseType: model.CourseTypeRecorded,
		Weekday:    weekday,
		SlotIDs:    slotIDs,
	})
	return &ConflictQueryResult{Report: report}, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
)

// RescheduleService moves one learner's one recorded-course occurrence to a
// new day/slot/date. Live-course entries are never individually movable.
type RescheduleService struct {
	courses  CourseStore
	bookings BookingStore
	clock    Clock
	notify   NotificationSink
	logger   *zap.Logger
}

func NewRescheduleService(
	courses CourseStore,
	bookings BookingStore,
	clock Clock,
	notify NotificationSink,
	logger *zap.Logger,
) *RescheduleService {
	return &RescheduleService{
		courses:  courses,
		bookings: bookings,
		clock:    clock,
		notify:   notify,
		logger:   logger,
	}
}

type RescheduleRequest struct {
	LearnerID  int64     `json:"learner_id"`
	EntryID    int64     `json:"entry_id"`
	NewWeekday string    `json:"new_weekday"`
	NewSlotIDs []int     `json:"new_slot_ids"`
	NewDate    time.Time `json:"new_date"`
}

// Reschedule validates the move and, under an exclusive lock on the target
// (learner, weekday, slot), re-checks conflicts and writes the booking.
// Rejections come back as *ConflictError with a specific reason; nothing
// else of the learner's schedule is touched.
func (s *RescheduleService) Reschedule(ctx context.Context, req RescheduleRequest) (*model.LearnerBooking, error) {
	weekday, err := schedule.ParseWeekday(req.NewWeekday)
	if err != nil {
		return nil, &ConfigurationError{Field: "new_weekday", Detail: err.Error()}
	}
	if len(req.NewSlotIDs) == 0 {
		return nil, &ConfigurationError{Field: "new_slot_ids", Detail: "select at least one slot"}
	}
	slot, err := schedule.SlotByID(req.NewSlotIDs[0])
	if err != nil {
		return nil, &ConfigurationError{Field: "new_slot_ids", Detail: err.Error()}
	}
	if req.NewDate.IsZero() {
		return nil, &ConfigurationError{Field: "new_date", Detail: "new date is required"}
	}
	if req.NewDate.Weekday() != weekday {
		return nil, &ConfigurationError{Field: "new_date", Detail: "new date does not fall on the requested weekday"}
	}

	booking, err := s.bookings.GetForEntry(ctx, req.LearnerID, req.EntryID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking for entry %d: %w", req.EntryID, ErrNotFound)
	}

	course, err := s.courses.GetCourse(ctx, booking.CourseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("course %d: %w", booking.CourseID, ErrNotFound)
	}
	if course.Type != model.CourseTypeRecorded {
		return nil, &ConflictError{Reason: RejectLiveCourseImmutable}
	}

	newStart := time.Date(req.NewDate.Year(), req.NewDate.Month(), req.NewDate.Day(),
		slot.StartHour, slot.StartMinute, 0, 0, req.NewDate.Location())
	if newStart.Before(s.clock.Now()) {
		return nil, &ConflictError{Reason: RejectPastDate}
	}

	err = s.bookings.WithSlotLock(ctx, req.LearnerID, weekday, slot.ID, func(store BookingStore) error {
		snapshots, err := store.LoadSnapshots(ctx, req.LearnerID)
		if err != nil {
			return fmt.Errorf("load bookings: %w", err)
		}

		report := schedule.DetectConflicts(snapshots, schedule.BookingCandidate{
			CourseID:   booking.CourseID,
			CourseType: course.Type,
			Weekday:    weekday,
			SlotIDs:    req.NewSlotIDs,
		})
		// A blocked slot is the more specific rejection, so it wins over
		// the day-level conflict when both apply.
		if len(report.SlotConflicts) > 0 {
			s.notify.ConflictDetected(ctx, req.LearnerID, report)
			return &ConflictError{Reason: RejectSlotConflict, Weekday: req.NewWeekday, SlotIDs: report.SlotConflicts}
		}
		if report.DayConflict {
			s.notify.ConflictDetected(ctx, req.LearnerID, report)
			return &ConflictError{Reason: RejectDayConflict, Weekday: req.NewWeekday}
		}

		return store.UpdateSlot(ctx, booking.ID, slot.ID, newStart)
	})
	if err != nil {
		return nil, err
	}

	booking.SlotID = slot.ID
	booking.ScheduledDate = newStart
	booking.IsRescheduled = true

	s.logger.Info("Booking rescheduled",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("learner_id", req.LearnerID),
		zap.Int64("entry_id", req.EntryID),
		zap.String("weekday", req.NewWeekday),
		zap.Int("slot_id", slot.ID),
	)
	s.notify.BookingChanged(ctx, req.LearnerID, booking.CourseID,
		fmt.Sprintf("lecture moved to %s %s", req.NewWeekday, slot.Label))

	return booking, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
)

// ScheduleService owns a course's recurrence preference and generated
// calendar: it validates the instructor's choices, plans the recurrence,
// generates the dated entries and persists the result all-or-nothing.
type ScheduleService struct {
	courses CourseStore
	content CourseContentProvider
	entries ScheduleStore
	clock   Clock
	logger  *zap.Logger
}

func NewScheduleService(
	courses CourseStore,
	content CourseContentProvider,
	entries ScheduleStore,
	clock Clock,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		courses: courses,
		content: content,
		entries: entries,
		clock:   clock,
		logger:  logger,
	}
}

type PlanRequest struct {
	CourseID  int64     `json:"course_id"`
	Weekday   string    `json:"weekday"`
	SlotIDs   []int     `json:"slot_ids"`
	StartDate time.Time `json:"start_date"`
}

type PlanResult struct {
	WeeksNeeded int                    `json:"weeks_needed"`
	EndDate     time.Time              `json:"end_date"`
	Entries     []*model.ScheduleEntry `json:"entries"`
}

// PlanSchedule plans and regenerates the full schedule for one course.
// Invalid input is rejected as a ConfigurationError before anything is
// touched; a failed generation persists nothing.
func (s *ScheduleService) PlanSchedule(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	if len(req.SlotIDs) < 1 || len(req.SlotIDs) > 5 {
		return nil, &ConfigurationError{Field: "slot_ids", Detail: "select between 1 and 5 slots"}
	}
	for _, id := range req.SlotIDs {
		if _, err := schedule.SlotByID(id); err != nil {
			return nil, &ConfigurationError{Field: "slot_ids", Detail: fmt.Sprintf("slot %d is not in the catalog", id)}
		}
	}

	var (
		weekday    time.Weekday
		hasWeekday bool
	)
	if req.Weekday != "" {
		day, err := schedule.ParseWeekday(req.Weekday)
		if err != nil {
			return nil, &ConfigurationError{Field: "weekday", Detail: err.Error()}
		}
		weekday, hasWeekday = day, true
	}

	if req.StartDate.IsZero() {
		return nil, &ConfigurationError{Field: "start_date", Detail: "start date is required"}
	}
	today := truncateToDay(s.clock.Now())
	if truncateToDay(req.StartDate).Before(today) {
		return nil, &ConfigurationError{Field: "start_date", Detail: "start date must not be in the past"}
	}

	course, err := s.courses.GetCourse(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("course %d: %w", req.CourseID, ErrNotFound)
	}

	lectures, err := s.content.GetLectures(ctx, req.CourseID)
	if err != nil {
		return nil, &DataUnavailableError{Op: "load lectures", Err: err}
	}

	totalLectures := len(lectures)
	var plan schedule.RecurrencePlan
	if hasWeekday {
		plan = schedule.PlanRecurrence(req.StartDate, weekday, len(req.SlotIDs), totalLectures)
	} else {
		plan = schedule.PlanRecurrenceWithoutWeekday(req.StartDate, len(req.SlotIDs), totalLectures)
	}

	prefs := model.SchedulingPreference{
		CourseID:        req.CourseID,
		Weekday:         req.Weekday,
		SlotsPerDay:     len(req.SlotIDs),
		SelectedSlotIDs: req.SlotIDs,
		StartDate:       truncateToDay(req.StartDate),
		TotalLectures:   totalLectures,
		TotalWeeks:      plan.WeeksNeeded,
		EndDate:         plan.EndDate,
	}

	generated, err := schedule.GenerateEntries(lectures, prefs, plan)
	if err != nil {
		return nil, fmt.Errorf("generate schedule: %w", err)
	}

	generationID := uuid.New()
	entries := make([]*model.ScheduleEntry, 0, len(generated))
	for i := range generated {
		e := generated[i]
		e.GenerationID = generationID
		entries = append(entries, &e)
	}

	if err := s.entries.Replace(ctx, &prefs, generationID, entries); err != nil {
		return nil, fmt.Errorf("persist schedule: %w", err)
	}

	s.logger.Info("Course schedule generated",
		zap.Int64("course_id", req.CourseID),
		zap.String("generation_id", generationID.String()),
		zap.Int("lectures", totalLectures),
		zap.Int("weeks", plan.WeeksNeeded),
		zap.Int("entries", len(entries)),
	)

	return &PlanResult{
		WeeksNeeded: plan.WeeksNeeded,
		EndDate:     plan.EndDate,
		Entries:     entries,
	}, nil
}

// GetCourseSchedule returns the course's current generated calendar.
func (s *ScheduleService) GetCourseSchedule(ctx context.Context, courseID int64) ([]*model.ScheduleEntry, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
	}
	return s.entries.LoadByCourse(ctx, courseID)
}

// SetSessionStatus moves a live-course entry through its session lifecycle
// (scheduled -> live -> completed/cancelled).
func (s *ScheduleService) SetSessionStatus(ctx context.Context, entryID int64, status model.SessionStatus) (*model.ScheduleEntry, error) {
	switch status {
	case model.SessionStatusScheduled, model.SessionStatusLive,
		model.SessionStatusCompleted, model.SessionStatusCancelled:
	default:
		return nil, &ConfigurationError{Field: "session_status", Detail: fmt.Sprintf("unknown status %q", status)}
	}

	entry, err := s.entries.GetEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %d: %w", entryID, ErrNotFound)
	}

	course, err := s.courses.GetCourse(ctx, entry.CourseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("course %d: %w", entry.CourseID, ErrNotFound)
	}
	if course.Type != model.CourseTypeLive {
		return nil, &ConfigurationError{Field: "session_status", Detail: "session status applies to live courses only"}
	}

	if err := s.entries.UpdateSessionStatus(ctx, entryID, status); err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}
	entry.SessionStatus = status

	s.logger.Info("Session status changed",
		zap.Int64("entry_id", entryID),
		zap.Int64("course_id", entry.CourseID),
		zap.String("status", string(status)),
	)

	return entry, nil
}

// CompleteElapsedSessions closes live sessions whose slot window has passed
// without an explicit completion. Returns how many entries were closed.
func (s *ScheduleService) CompleteElapsedSessions(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-time.Duration(schedule.SlotDurationMinutes) * time.Minute)
	closed, err := s.entries.CompleteElapsedLiveSessions(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("complete elapsed sessions: %w", err)
	}
	if closed > 0 {
		s.logger.Info("Elapsed live sessions completed", zap.Int64("count", closed))
	}
	return closed, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

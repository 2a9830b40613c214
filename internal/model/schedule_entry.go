package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusLive      SessionStatus = "live"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// ScheduleEntry is one concrete dated occurrence of one lecture within a
// course's generated calendar. Entries of one generation share a GenerationID.
type ScheduleEntry struct {
	ID            int64         `json:"id"`
	CourseID      int64         `json:"course_id"`
	GenerationID  uuid.UUID     `json:"generation_id"`
	LectureID     int64         `json:"lecture_id"`
	ModuleOrder   int           `json:"module_order"`
	LectureOrder  int           `json:"lecture_order"`
	LectureTitle  string        `json:"lecture_title"`
	SlotID        int           `json:"slot_id"`
	ScheduledDate time.Time     `json:"scheduled_date"`
	IsRescheduled bool          `json:"is_rescheduled"`
	SessionStatus SessionStatus `json:"session_status"` // meaningful for live courses only
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

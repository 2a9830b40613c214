package model

import "time"

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// LearnerBooking binds one learner to one schedule entry. The booking carries
// its own slot and date so a recorded-course occurrence can be moved for one
// learner without touching the course schedule or other learners.
type LearnerBooking struct {
	ID            int64         `json:"id"`
	LearnerID     int64         `json:"learner_id"`
	CourseID      int64         `json:"course_id"`
	EntryID       int64         `json:"entry_id"`
	SlotID        int           `json:"slot_id"`
	ScheduledDate time.Time     `json:"scheduled_date"`
	IsRescheduled bool          `json:"is_rescheduled"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Joined fields, not stored on the booking row.
	CourseType CourseType `json:"course_type,omitempty"`
}

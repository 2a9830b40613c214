package model

import "time"

// SchedulingPreference is the instructor's weekly recurrence choice for one
// course. TotalLectures, TotalWeeks and EndDate are recomputed whenever the
// weekday, the slot selection, the start date or the lecture count changes.
type SchedulingPreference struct {
	CourseID        int64     `json:"course_id"`
	Weekday         string    `json:"weekday"` // "monday".."sunday", may be empty (documented fallback)
	SlotsPerDay     int       `json:"slots_per_day"`
	SelectedSlotIDs []int     `json:"selected_slot_ids"`
	StartDate       time.Time `json:"start_date"`
	TotalLectures   int       `json:"total_lectures"`
	TotalWeeks      int       `json:"total_weeks"`
	EndDate         time.Time `json:"end_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

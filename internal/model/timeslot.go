package model

// TimeSlot is one of the fixed 45-minute daily teaching windows.
type TimeSlot struct {
	ID          int    `json:"id"`
	StartHour   int    `json:"start_hour"`
	StartMinute int    `json:"start_minute"`
	EndHour     int    `json:"end_hour"`
	EndMinute   int    `json:"end_minute"`
	Label       string `json:"label"`
}

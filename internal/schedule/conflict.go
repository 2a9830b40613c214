package schedule

import (
	"sort"
	"time"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
)

// RecordedStackLimit caps how many recorded-course bookings may share one
// (weekday, slot) cell of a learner's week. Live sessions never share.
const RecordedStackLimit = 3

// BookingSnapshot is the conflict-relevant projection of one booked entry.
type BookingSnapshot struct {
	CourseID   int64
	CourseType model.CourseType
	Weekday    time.Weekday
	SlotID     int
	Cancelled  bool
}

// BookingCandidate is a prospective occupancy to validate against the
// learner's existing bookings.
type BookingCandidate struct {
	CourseID   int64
	CourseType model.CourseType
	Weekday    time.Weekday
	SlotIDs    []int
}

// ConflictReport lists what the candidate collides with. DayConflict means
// some other course already teaches on the candidate weekday; SlotConflicts
// are the candidate slots that cannot take another booking.
type ConflictReport struct {
	DayConflict   bool  `json:"day_conflict"`
	SlotConflicts []int `json:"slot_conflicts"`
}

func (r ConflictReport) HasConflict() bool {
	return r.DayConflict || len(r.SlotConflicts) > 0
}

func (r ConflictReport) SlotConflicted(slotID int) bool {
	for _, id := range r.SlotConflicts {
		if id == slotID {
			return true
		}
	}
	return false
}

// DetectConflicts checks the candidate against every active booking of the
// learner. Bookings of the candidate's own course never conflict with it;
// cancelled bookings are ignored entirely.
func DetectConflicts(bookings []BookingSnapshot, candidate BookingCandidate) ConflictReport {
	var report ConflictReport

	liveOccupied := make(map[int]bool)
	recordedCount := make(map[int]int)
	anyOccupied := make(map[int]bool)

	for _, b := range bookings {
		if b.Cancelled || b.CourseID == candidate.CourseID {
			continue
		}
		if b.Weekday != candidate.Weekday {
			continue
		}

		report.DayConflict = true

		anyOccupied[b.SlotID] = true
		if b.CourseType == model.CourseTypeLive {
			liveOccupied[b.SlotID] = true
		} else {
			recordedCount[b.SlotID]++
		}
	}

	conflicts := make(map[int]bool)
	for _, slotID := range candidate.SlotIDs {
		switch {
		case liveOccupied[slotID]:
			// Live sessions are exclusive in both directions.
			conflicts[slotID] = true
		case candidate.CourseType == model.CourseTypeLive && anyOccupied[slotID]:
			conflicts[slotID] = true
		case recordedCount[slotID] >= RecordedStackLimit:
			conflicts[slotID] = true
		}
	}

	for slotID := range conflicts {
		report.SlotConflicts = append(report.SlotConflicts, slotID)
	}
	sort.Ints(report.SlotConflicts)

	return report
}

package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
)

// Courses with no authored content still get a visible calendar: the
// generator synthesizes this many placeholder lectures in one module.
const placeholderLectureCount = 4

// GenerateEntries lays the lectures out over the recurrence plan: lectures
// are taken in content order, assigned to the selected slots in catalog
// order, and the date advances one week each time the slot rotation wraps.
//
// The output is fully determined by its inputs, so regenerating with the
// same lectures and preferences yields an identical schedule.
func GenerateEntries(lectures []model.LectureRef, prefs model.SchedulingPreference, plan RecurrencePlan) ([]model.ScheduleEntry, error) {
	slotIDs := orderedSlotIDs(prefs.SelectedSlotIDs)
	if len(slotIDs) == 0 {
		return nil, fmt.Errorf("no slots selected")
	}

	ordered := make([]model.LectureRef, len(lectures))
	copy(ordered, lectures)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ModuleOrder != ordered[j].ModuleOrder {
			return ordered[i].ModuleOrder < ordered[j].ModuleOrder
		}
		return ordered[i].LectureOrder < ordered[j].LectureOrder
	})

	if len(ordered) == 0 {
		ordered = placeholderLectures()
	}

	entries := make([]model.ScheduleEntry, 0, len(ordered))
	currentDate := plan.FirstSessionDate
	slotIdx := 0

	for _, lecture := range ordered {
		slot, err := SlotByID(slotIDs[slotIdx])
		if err != nil {
			return nil, fmt.Errorf("selected slot: %w", err)
		}

		entries = append(entries, model.ScheduleEntry{
			CourseID:      prefs.CourseID,
			LectureID:     lecture.LectureID,
			ModuleOrder:   lecture.ModuleOrder,
			LectureOrder:  lecture.LectureOrder,
			LectureTitle:  lecture.Title,
			SlotID:        slot.ID,
			ScheduledDate: atSlotStart(currentDate, slot),
			SessionStatus: model.SessionStatusScheduled,
		})

		slotIdx++
		if slotIdx == len(slotIDs) {
			slotIdx = 0
			currentDate = currentDate.AddDate(0, 0, 7)
		}
	}

	return entries, nil
}

// orderedSlotIDs deduplicates the selection and sorts it by catalog order so
// earlier slots of the day are filled first.
func orderedSlotIDs(selected []int) []int {
	seen := make(map[int]bool, len(selected))
	out := make([]int, 0, len(selected))
	for _, id := range selected {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func placeholderLectures() []model.LectureRef {
	lectures := make([]model.LectureRef, 0, placeholderLectureCount)
	for i := 1; i <= placeholderLectureCount; i++ {
		lectures = append(lectures, model.LectureRef{
			ModuleOrder:  1,
			ModuleTitle:  "Module 1",
			LectureOrder: i,
			Title:        fmt.Sprintf("Lecture %d", i),
			Placeholder:  true,
		})
	}
	return lectures
}

func atSlotStart(day time.Time, slot model.TimeSlot) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), slot.StartHour, slot.StartMinute, 0, 0, day.Location())
}

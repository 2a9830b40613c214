package schedule

import (
	"errors"
	"fmt"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
)

// The day is divided into 11 fixed back-to-back 45-minute teaching slots,
// 09:00 through 17:15. The catalog never changes at runtime.
const (
	SlotCount           = 11
	SlotDurationMinutes = 45

	firstSlotHour   = 9
	firstSlotMinute = 0
)

var ErrSlotNotFound = errors.New("time slot not found")

var catalog = buildCatalog()

func buildCatalog() []model.TimeSlot {
	slots := make([]model.TimeSlot, 0, SlotCount)

	hour, minute := firstSlotHour, firstSlotMinute
	for i := 1; i <= SlotCount; i++ {
		endHour, endMinute := hour, minute+SlotDurationMinutes
		endHour += endMinute / 60
		endMinute %= 60

		slots = append(slots, model.TimeSlot{
			ID:          i,
			StartHour:   hour,
			StartMinute: minute,
			EndHour:     endHour,
			EndMinute:   endMinute,
			Label:       fmt.Sprintf("%s - %s", formatClock(hour, minute), formatClock(endHour, endMinute)),
		})

		hour, minute = endHour, endMinute
	}

	return slots
}

func formatClock(hour, minute int) string {
	suffix := "AM"
	h := hour
	if hour >= 12 {
		suffix = "PM"
		if hour > 12 {
			h = hour - 12
		}
	}
	return fmt.Sprintf("%02d:%02d %s", h, minute, suffix)
}

// Catalog returns the full slot list ordered by start time.
func Catalog() []model.TimeSlot {
	out := make([]model.TimeSlot, len(catalog))
	copy(out, catalog)
	return out
}

// SlotByID resolves a slot id to its catalog entry.
func SlotByID(id int) (model.TimeSlot, error) {
	if id < 1 || id > SlotCount {
		return model.TimeSlot{}, fmt.Errorf("slot %d: %w", id, ErrSlotNotFound)
	}
	return catalog[id-1], nil
}

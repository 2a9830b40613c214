package schedule

import (
	"fmt"
	"strings"
	"time"
)

// RecurrencePlan is the derived weekly recurrence for a course: how many
// weeks its lectures span and the concrete date range of the sessions.
type RecurrencePlan struct {
	WeeksNeeded      int
	FirstSessionDate time.Time
	EndDate          time.Time
}

var weekdayTokens = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a lowercase weekday token ("monday".."sunday").
// An unknown token is a configuration error and must be rejected before
// any schedule is generated.
func ParseWeekday(token string) (time.Weekday, error) {
	day, ok := weekdayTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", token)
	}
	return day, nil
}

// PlanRecurrence computes the session calendar bounds for a course taught on
// one weekday with slotCount lectures per week.
//
// The first session is never the start date itself: when the start date
// already falls on the target weekday the plan advances a full week. This
// mirrors the enrollment behavior the platform has always had.
func PlanRecurrence(startDate time.Time, weekday time.Weekday, slotCount, totalLectures int) RecurrencePlan {
	weeks := weeksNeeded(slotCount, totalLectures)

	start := truncateToDay(startDate)
	offset := (int(weekday) - int(start.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}

	first := start.AddDate(0, 0, offset)
	return RecurrencePlan{
		WeeksNeeded:      weeks,
		FirstSessionDate: first,
		EndDate:          first.AddDate(0, 0, (weeks-1)*7),
	}
}

// PlanRecurrenceWithoutWeekday is the fallback for preferences that carry no
// weekday: the range is anchored on the start date itself. Less precise, but
// a defined mode rather than an error.
func PlanRecurrenceWithoutWeekday(startDate time.Time, slotCount, totalLectures int) RecurrencePlan {
	weeks := weeksNeeded(slotCount, totalLectures)

	start := truncateToDay(startDate)
	return RecurrencePlan{
		WeeksNeeded:      weeks,
		FirstSessionDate: start,
		EndDate:          start.AddDate(0, 0, weeks*7),
	}
}

// weeksNeeded is ceil(totalLectures / slotCount), floored at one week:
// a course always reserves at least one week even with no lectures yet.
func weeksNeeded(slotCount, totalLectures int) int {
	if slotCount < 1 {
		slotCount = 1
	}
	if totalLectures < 1 {
		totalLectures = 1
	}
	return (totalLectures + slotCount - 1) / slotCount
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

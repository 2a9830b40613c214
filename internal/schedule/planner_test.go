package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("wednesday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day != time.Wednesday {
		t.Fatalf("expected Wednesday, got %v", day)
	}

	if _, err := ParseWeekday("WedNesday "); err != nil {
		t.Fatalf("token normalization failed: %v", err)
	}

	if _, err := ParseWeekday("noday"); err == nil {
		t.Fatal("expected error for unknown token")
	}
	if _, err := ParseWeekday(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

// Start date falling on the target weekday pushes the first session a full
// week out: 2024-01-03 is a Wednesday, 5 lectures over 2 slots need 3 weeks.
func TestPlanRecurrence_StartOnTargetWeekday(t *testing.T) {
	plan := PlanRecurrence(date(2024, time.January, 3), time.Wednesday, 2, 5)

	if plan.WeeksNeeded != 3 {
		t.Fatalf("expected 3 weeks, got %d", plan.WeeksNeeded)
	}
	if !plan.FirstSessionDate.Equal(date(2024, time.January, 10)) {
		t.Fatalf("expected first session 2024-01-10, got %v", plan.FirstSessionDate)
	}
	if !plan.EndDate.Equal(date(2024, time.January, 24)) {
		t.Fatalf("expected end date 2024-01-24, got %v", plan.EndDate)
	}
}

func TestPlanRecurrence_AdvancesToNextWeekday(t *testing.T) {
	// 2024-01-01 is a Monday.
	plan := PlanRecurrence(date(2024, time.January, 1), time.Thursday, 1, 2)

	if !plan.FirstSessionDate.Equal(date(2024, time.January, 4)) {
		t.Fatalf("expected first session 2024-01-04, got %v", plan.FirstSessionDate)
	}
	if plan.WeeksNeeded != 2 {
		t.Fatalf("expected 2 weeks, got %d", plan.WeeksNeeded)
	}
	if !plan.EndDate.Equal(date(2024, time.January, 11)) {
		t.Fatalf("expected end date 2024-01-11, got %v", plan.EndDate)
	}
}

func TestPlanRecurrence_WeekdayBeforeStartRollsOver(t *testing.T) {
	// 2024-01-05 is a Friday; the next Tuesday is 2024-01-09.
	plan := PlanRecurrence(date(2024, time.January, 5), time.Tuesday, 1, 1)

	if !plan.FirstSessionDate.Equal(date(2024, time.January, 9)) {
		t.Fatalf("expected first session 2024-01-09, got %v", plan.FirstSessionDate)
	}
}

func TestPlanRecurrence_ZeroLecturesReservesOneWeek(t *testing.T) {
	plan := PlanRecurrence(date(2024, time.January, 3), time.Friday, 3, 0)

	if plan.WeeksNeeded != 1 {
		t.Fatalf("expected 1 week for empty course, got %d", plan.WeeksNeeded)
	}
	if !plan.EndDate.Equal(plan.FirstSessionDate) {
		t.Fatalf("one-week plan must end on its first session date")
	}
}

func TestPlanRecurrence_ZeroSlotCountTreatedAsOne(t *testing.T) {
	plan := PlanRecurrence(date(2024, time.January, 3), time.Friday, 0, 4)

	if plan.WeeksNeeded != 4 {
		t.Fatalf("expected 4 weeks, got %d", plan.WeeksNeeded)
	}
}

// Increasing the lecture count with a fixed slot selection never shortens
// the plan.
func TestPlanRecurrence_WeeksNeededMonotonic(t *testing.T) {
	for _, slots := range []int{1, 2, 3, 5} {
		prev := 0
		for lectures := 0; lectures <= 40; lectures++ {
			plan := PlanRecurrence(date(2024, time.March, 1), time.Monday, slots, lectures)
			if plan.WeeksNeeded < prev {
				t.Fatalf("weeks needed decreased from %d to %d at %d lectures / %d slots",
					prev, plan.WeeksNeeded, lectures, slots)
			}
			prev = plan.WeeksNeeded
		}
	}
}

func TestPlanRecurrenceWithoutWeekday(t *testing.T) {
	plan := PlanRecurrenceWithoutWeekday(date(2024, time.January, 3), 2, 5)

	if plan.WeeksNeeded != 3 {
		t.Fatalf("expected 3 weeks, got %d", plan.WeeksNeeded)
	}
	if !plan.FirstSessionDate.Equal(date(2024, time.January, 3)) {
		t.Fatalf("fallback plan must anchor on the start date, got %v", plan.FirstSessionDate)
	}
	if !plan.EndDate.Equal(date(2024, time.January, 24)) {
		t.Fatalf("expected end date 2024-01-24, got %v", plan.EndDate)
	}
}

func TestPlanRecurrence_DropsTimeOfDayFromStart(t *testing.T) {
	noon := time.Date(2024, time.January, 3, 12, 30, 0, 0, time.UTC)
	plan := PlanRecurrence(noon, time.Wednesday, 2, 5)

	if !plan.FirstSessionDate.Equal(date(2024, time.January, 10)) {
		t.Fatalf("start time of day leaked into the plan: %v", plan.FirstSessionDate)
	}
}

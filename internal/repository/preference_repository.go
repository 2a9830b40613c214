package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/repository/base"
)

// PreferenceRepository reads the per-course scheduling preference row.
// The row is written by ScheduleRepository.Replace together with the
// generated schedule.
type PreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

// Load returns the course's preference or nil when none was saved yet.
func (r *PreferenceRepository) Load(ctx context.Context, courseID int64) (*model.SchedulingPreference, error) {
	var prefs model.SchedulingPreference
	err := r.pool.QueryRow(ctx, `
		SELECT course_id, weekday, slots_per_day, selected_slot_ids, start_date,
		       total_lectures, total_weeks, end_date, created_at, updated_at
		FROM scheduling_preferences
		WHERE course_id = $1
	`, courseID).Scan(
		&prefs.CourseID,
		&prefs.Weekday,
		&prefs.SlotsPerDay,
		&prefs.SelectedSlotIDs,
		&prefs.StartDate,
		&prefs.TotalLectures,
		&prefs.TotalWeeks,
		&prefs.EndDate,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load preference: %w", err)
	}

	return &prefs, nil
}


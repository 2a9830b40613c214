package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/repository/base"
)

// ScheduleRepository stores generated schedule entries per course.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

const entryColumns = `
	id, course_id, generation_id, lecture_id, module_order, lecture_order,
	lecture_title, slot_id, scheduled_date, is_rescheduled, session_status,
	created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (*model.ScheduleEntry, error) {
	var e model.ScheduleEntry
	err := row.Scan(
		&e.ID,
		&e.CourseID,
		&e.GenerationID,
		&e.LectureID,
		&e.ModuleOrder,
		&e.LectureOrder,
		&e.LectureTitle,
		&e.SlotID,
		&e.ScheduledDate,
		&e.IsRescheduled,
		&e.SessionStatus,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// LoadByCourse returns the course's schedule in calendar order.
func (r *ScheduleRepository) LoadByCourse(ctx context.Context, courseID int64) ([]*model.ScheduleEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM schedule_entries
		WHERE course_id = $1
		ORDER BY scheduled_date, slot_id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	defer rows.Close()

	var entries []*model.ScheduleEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// GetEntry returns one entry by id, or nil when unknown.
func (r *ScheduleRepository) GetEntry(ctx context.Context, entryID int64) (*model.ScheduleEntry, error) {
	entry, err := scanEntry(r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM schedule_entries
		WHERE id = $1
	`, entryID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	return entry, nil
}

// Replace swaps the course's preference and whole schedule in one
// transaction: either the new generation lands completely or the previous
// one stays.
func (r *ScheduleRepository) Replace(ctx context.Context, prefs *model.SchedulingPreference, generationID uuid.UUID, entries []*model.ScheduleEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO scheduling_preferences
			(course_id, weekday, slots_per_day, selected_slot_ids, start_date, total_lectures, total_weeks, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (course_id) DO UPDATE SET
			weekday = EXCLUDED.weekday,
			slots_per_day = EXCLUDED.slots_per_day,
			selected_slot_ids = EXCLUDED.selected_slot_ids,
			start_date = EXCLUDED.start_date,
			total_lectures = EXCLUDED.total_lectures,
			total_weeks = EXCLUDED.total_weeks,
			end_date = EXCLUDED.end_date,
			updated_at = now()
		RETURNING created_at, updated_at
	`,
		prefs.CourseID,
		prefs.Weekday,
		prefs.SlotsPerDay,
		prefs.SelectedSlotIDs,
		prefs.StartDate,
		prefs.TotalLectures,
		prefs.TotalWeeks,
		prefs.EndDate,
	).Scan(&prefs.CreatedAt, &prefs.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM schedule_entries WHERE course_id = $1`, prefs.CourseID)
	if err != nil {
		return fmt.Errorf("clear previous schedule: %w", err)
	}

	for _, e := range entries {
		err = tx.QueryRow(ctx, `
			INSERT INTO schedule_entries
				(course_id, generation_id, lecture_id, module_order, lecture_order, lecture_title, slot_id, scheduled_date, session_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at
		`,
			e.CourseID,
			generationID,
			e.LectureID,
			e.ModuleOrder,
			e.LectureOrder,
			e.LectureTitle,
			e.SlotID,
			e.ScheduledDate,
			e.SessionStatus,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// CompleteElapsedLiveSessions closes every live session that started before
// the cutoff and was never explicitly completed.
func (r *ScheduleRepository) CompleteElapsedLiveSessions(ctx context.Context, startedBefore time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE schedule_entries
		SET session_status = $1, updated_at = now()
		WHERE session_status = $2 AND scheduled_date < $3
	`, model.SessionStatusCompleted, model.SessionStatusLive, startedBefore)
	if err != nil {
		return 0, fmt.Errorf("complete elapsed sessions: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpdateSessionStatus sets the live-session state of one entry.
func (r *ScheduleRepository) UpdateSessionStatus(ctx context.Context, entryID int64, status model.SessionStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE schedule_entries
		SET session_status = $1, updated_at = now()
		WHERE id = $2
	`, status, entryID)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry not found")
	}

	return nil
}

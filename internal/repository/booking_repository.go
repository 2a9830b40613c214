package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/repository/base"
	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
	"github.com/nomanmujahid1144/tudva-sub002/internal/service"
)

// BookingRepository stores learner bookings. Reads and writes go through db,
// which is the pool outside a lock and the transaction inside WithSlotLock.
type BookingRepository struct {
	pool *pgxpool.Pool
	db   base.Querier
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool, db: pool}
}

const bookingColumns = `
	b.id, b.learner_id, b.course_id, b.entry_id, b.slot_id, b.scheduled_date,
	b.is_rescheduled, b.status, b.created_at, b.updated_at, c.course_type`

func scanBooking(row interface{ Scan(...any) error }) (*model.LearnerBooking, error) {
	var b model.LearnerBooking
	err := row.Scan(
		&b.ID,
		&b.LearnerID,
		&b.CourseID,
		&b.EntryID,
		&b.SlotID,
		&b.ScheduledDate,
		&b.IsRescheduled,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.CourseType,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// LoadSnapshots returns the learner's bookings across all courses collapsed
// to the fields the conflict detector needs. Weekday is derived from the
// booking's own date so rescheduled occurrences are judged by where they
// actually sit.
func (r *BookingRepository) LoadSnapshots(ctx context.Context, learnerID int64) ([]schedule.BookingSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.course_id, c.course_type, b.slot_id, b.scheduled_date, b.status
		FROM learner_bookings b
		JOIN courses c ON c.id = b.course_id
		WHERE b.learner_id = $1
	`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("load booking snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []schedule.BookingSnapshot
	for rows.Next() {
		var (
			snap   schedule.BookingSnapshot
			date   time.Time
			status model.BookingStatus
		)
		if err := rows.Scan(&snap.CourseID, &snap.CourseType, &snap.SlotID, &date, &status); err != nil {
			return nil, fmt.Errorf("scan booking snapshot: %w", err)
		}
		snap.Weekday = date.Weekday()
		snap.Cancelled = status == model.BookingStatusCancelled
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// GetForEntry returns the learner's booking for one schedule entry, or nil
// when the learner never booked it.
func (r *BookingRepository) GetForEntry(ctx context.Context, learnerID, entryID int64) (*model.LearnerBooking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM learner_bookings b
		JOIN courses c ON c.id = b.course_id
		WHERE b.learner_id = $1 AND b.entry_id = $2
	`, learnerID, entryID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	return booking, nil
}

// Bind inserts the learner's bookings for a whole course schedule. Entries
// the learner already holds are left as they are, so re-enrolling does not
// reset a rescheduled occurrence.
func (r *BookingRepository) Bind(ctx context.Context, bookings []*model.LearnerBooking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, b := range bookings {
		err = tx.QueryRow(ctx, `
			INSERT INTO learner_bookings
				(learner_id, course_id, entry_id, slot_id, scheduled_date, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (learner_id, entry_id) DO UPDATE SET updated_at = learner_bookings.updated_at
			RETURNING id, created_at, updated_at
		`,
			b.LearnerID,
			b.CourseID,
			b.EntryID,
			b.SlotID,
			b.ScheduledDate,
			b.Status,
		).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// UpdateSlot moves one booking to a new slot and date and marks it
// rescheduled.
func (r *BookingRepository) UpdateSlot(ctx context.Context, bookingID int64, slotID int, scheduledDate time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE learner_bookings
		SET slot_id = $1, scheduled_date = $2, is_rescheduled = true, updated_at = now()
		WHERE id = $3
	`, slotID, scheduledDate, bookingID)
	if err != nil {
		return fmt.Errorf("update booking slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

// WithSlotLock serializes reschedules targeting the same learner, weekday
// and slot. The advisory lock is transaction-scoped, so it releases on
// commit or rollback; a second caller blocks until the first finishes and
// then sees its writes.
func (r *BookingRepository) WithSlotLock(ctx context.Context, learnerID int64, weekday time.Weekday, slotID int, fn func(service.BookingStore) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	key := slotLockKey(learnerID, weekday, slotID)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, key); err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}

	if err := fn(&BookingRepository{pool: r.pool, db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// slotLockKey packs the lock target into one advisory-lock key. Weekday and
// slot fit in ten bits together, leaving the rest for the learner id.
func slotLockKey(learnerID int64, weekday time.Weekday, slotID int) int64 {
	return learnerID<<10 | int64(weekday)<<4 | int64(slotID)
}

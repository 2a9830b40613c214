package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/repository/base"
)

// CourseRepository stores course records and their lecture content. It also
// serves as the content provider: lectures come back normalized into one
// flat sequence ordered by (module_order, lecture_order), whatever shape
// they were authored in.
type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// CreateCourse inserts the course and its lectures in one transaction.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *model.Course, lectures []model.LectureRef) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO courses (title, course_type)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, course.Title, course.Type).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}

	for _, lecture := range lectures {
		_, err = tx.Exec(ctx, `
			INSERT INTO course_lectures (course_id, module_order, module_title, lecture_order, title, is_demo, is_accessible)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, course.ID, lecture.ModuleOrder, lecture.ModuleTitle, lecture.LectureOrder, lecture.Title, lecture.IsDemo, lecture.IsAccessible)
		if err != nil {
			return fmt.Errorf("insert lecture: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetCourse returns the course or nil when the id is unknown.
func (r *CourseRepository) GetCourse(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, course_type, created_at, updated_at
		FROM courses
		WHERE id = $1
	`, id).Scan(&course.ID, &course.Title, &course.Type, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &course, nil
}

// GetLectures returns the course's lectures in content order.
func (r *CourseRepository) GetLectures(ctx context.Context, courseID int64) ([]model.LectureRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, module_order, module_title, lecture_order, title, is_demo, is_accessible
		FROM course_lectures
		WHERE course_id = $1
		ORDER BY module_order, lecture_order
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("get lectures: %w", err)
	}
	defer rows.Close()

	var lectures []model.LectureRef
	for rows.Next() {
		var l model.LectureRef
		err := rows.Scan(&l.LectureID, &l.ModuleOrder, &l.ModuleTitle, &l.LectureOrder, &l.Title, &l.IsDemo, &l.IsAccessible)
		if err != nil {
			return nil, fmt.Errorf("scan lecture: %w", err)
		}
		lectures = append(lectures, l)
	}

	return lectures, rows.Err()
}

// GetLecture returns one lecture by id, or nil when unknown.
func (r *CourseRepository) GetLecture(ctx context.Context, lectureID int64) (*model.LectureRef, error) {
	var l model.LectureRef
	err := r.pool.QueryRow(ctx, `
		SELECT id, module_order, module_title, lecture_order, title, is_demo, is_accessible
		FROM course_lectures
		WHERE id = $1
	`, lectureID).Scan(&l.LectureID, &l.ModuleOrder, &l.ModuleTitle, &l.LectureOrder, &l.Title, &l.IsDemo, &l.IsAccessible)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lecture: %w", err)
	}

	return &l, nil
}

package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
)

// CourseService covers the small slice of course authoring the scheduling
// engine needs: creating a course with its lecture content and reading it
// back.
type CourseService struct {
	courses CourseStore
	content CourseContentProvider
	logger  *zap.Logger
}

func NewCourseService(courses CourseStore, content CourseContentProvider, logger *zap.Logger) *CourseService {
	return &CourseService{courses: courses, content: content, logger: logger}
}

type CreateCourseRequest struct {
	Title    string             `json:"title"`
	Type     model.CourseType   `json:"type"`
	Lectures []model.LectureRef `json:"lectures"`
}

func (s *CourseService) CreateCourse(ctx context.Context, req CreateCourseRequest) (*model.Course, error) {
	if req.Title == "" {
		return nil, &ConfigurationError{Field: "title", Detail: "title is required"}
	}
	if req.Type != model.CourseTypeLive && req.Type != model.CourseTypeRecorded {
		return nil, &ConfigurationError{Field: "type", Detail: fmt.Sprintf("unknown course type %q", req.Type)}
	}

	course := &model.Course{Title: req.Title, Type: req.Type}
	if err := s.courses.CreateCourse(ctx, course, req.Lectures); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.logger.Info("Course created",
		zap.Int64("course_id", course.ID),
		zap.String("type", string(course.Type)),
		zap.Int("lectures", len(req.Lectures)),
	)

	return course, nil
}

func (s *CourseService) GetCourse(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.courses.GetCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}
	return course, nil
}

func (s *CourseService) GetLectures(ctx context.Context, courseID int64) ([]model.LectureRef, error) {
	return s.content.GetLectures(ctx, courseID)
}

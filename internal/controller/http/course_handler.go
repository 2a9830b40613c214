package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/service"
)

type CourseHandler struct {
	courses   *service.CourseService
	schedules *service.ScheduleService
	bookings  *service.BookingService
	logger    *zap.Logger
}

func NewCourseHandler(
	courses *service.CourseService,
	schedules *service.ScheduleService,
	bookings *service.BookingService,
	logger *zap.Logger,
) *CourseHandler {
	return &CourseHandler{
		courses:   courses,
		schedules: schedules,
		bookings:  bookings,
		logger:    logger,
	}
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	course, err := h.courses.CreateCourse(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	RespondOK(c, course)
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}

	course, err := h.courses.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	RespondOK(c, course)
}

func (h *CourseHandler) GetSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}

	entries, err := h.schedules.GetCourseSchedule(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	RespondOK(c, gin.H{"entries": entries})
}

type enrollRequest struct {
	LearnerID int64 `json:"learner_id"`
}

// Enroll binds a learner to the course's generated schedule. A conflicting
// enrollment is rejected with 409 and the conflict report.
func (h *CourseHandler) Enroll(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}

	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	result, err := h.bookings.Enroll(c.Request.Context(), req.LearnerID, courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	RespondOK(c, result)
}

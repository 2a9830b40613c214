package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nomanmujahid1144/tudva-sub002/internal/model"
	"github.com/nomanmujahid1144/tudva-sub002/internal/schedule"
	"github.com/nomanmujahid1144/tudva-sub002/internal/service"
)

type ScheduleHandler struct {
	schedules   *service.ScheduleService
	access      *service.AccessService
	reschedules *service.RescheduleService
	bookings    *service.BookingService
	logger      *zap.Logger
}

func NewScheduleHandler(
	schedules *service.ScheduleService,
	access *service.AccessService,
	reschedules *service.RescheduleService,
	bookings *service.BookingService,
	logger *zap.Logger,
) *ScheduleHandler {
	return &ScheduleHandler{
		schedules:   schedules,
		access:      access,
		reschedules: reschedules,
		bookings:    bookings,
		logger:      logger,
	}
}

// Plan generates (or regenerates) the full schedule for a course.
func (h *ScheduleHandler) Plan(c *gin.Context) {
	var req service.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	result, err := h.schedules.PlanSchedule(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	RespondOK(c, result)
}

// Access answers whether one scheduled lecture is watchable right now.
// An optional now parameter (RFC 3339) lets callers evaluate a different
// instant, mainly for previewing upcoming unlocks.
func (h *ScheduleHandler) Access(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Query("entryId"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_entry_id", err)
		return
	}

	var at time.Time
	if raw := c.Query("now"); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_now", err)
			return
		}
	}

	decision, err := h.access.CheckAccess(c.Request.Context(), entryID, at)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	RespondOK(c, decision)
}

// Reschedule moves one learner's recorded-course occurrence. Conflicting
// targets come back as 409 with the rejection reason as the error code.
func (h *ScheduleHandler) Reschedule(c *gin.Context) {
	var req service.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	booking, err := h.reschedules.Reschedule(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	RespondOK(c, booking)
}

// Conflicts reports what a prospective weekly booking would collide with.
func (h *ScheduleHandler) Conflicts(c *gin.Context) {
	learnerID, err := strconv.ParseInt(c.Query("learnerId"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_learner_id", err)
		return
	}

	slotIDs, err := parseSlotIDs(c.Query("slotIds"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_slot_ids", err)
		return
	}

	result, err := h.bookings.CheckConflicts(c.Request.Context(), learnerID, c.Query("weekday"), slotIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	RespondOK(c, result)
}

type sessionStatusRequest struct {
	EntryID int64               `json:"entry_id"`
	Status  model.SessionStatus `json:"status"`
}

// SessionStatus transitions a live-course entry between session states.
func (h *ScheduleHandler) SessionStatus(c *gin.Context) {
	var req sessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	entry, err := h.schedules.SetSessionStatus(c.Request.Context(), req.EntryID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	RespondOK(c, entry)
}

// Slots lists the fixed daily time grid.
func (h *ScheduleHandler) Slots(c *gin.Context) {
	RespondOK(c, gin.H{"slots": schedule.Catalog()})
}

func parseSlotIDs(raw string) ([]int, error) {
	if raw == "" {
		return nil, fmt.Errorf("slotIds is required")
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("slot id %q: %w", p, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomanmujahid1144/tudva-sub002/internal/service"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`

	// Conflict rejections carry the contested day and slots so the client
	// can show the learner what blocked the request.
	Weekday string `json:"weekday,omitempty"`
	SlotIDs []int  `json:"slot_ids,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondServiceError maps service errors onto HTTP statuses. Conflict
// rejections carry their reason as the error code so clients can branch
// without parsing messages.
func respondServiceError(c *gin.Context, err error) {
	var confErr *service.ConfigurationError
	if errors.As(err, &confErr) {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if conflict, ok := service.AsConflictError(err); ok {
		c.JSON(http.StatusConflict, ErrorEnvelope{
			Error: APIError{
				Message: err.Error(),
				Code:    string(conflict.Reason),
				Weekday: conflict.Weekday,
				SlotIDs: conflict.SlotIDs,
			},
		})
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	var unavailable *service.DataUnavailableError
	if errors.As(err, &unavailable) {
		RespondError(c, http.StatusServiceUnavailable, "data_unavailable", err)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}

package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: TraceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: TraceID(c),
	})
}

// TraceID returns the id set by the trace middleware, or "" outside a traced request.
func TraceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

type errorMapping struct {
	err     error
	code    int
	message string
}

// Checked in order; the first match wins.
var serviceErrors = []errorMapping{
	{ErrVenueNotFound, http.StatusNotFound, "Venue not found"},
	{ErrItineraryNotFound, http.StatusNotFound, "Itinerary not found"},
	{ErrSessionNotFound, http.StatusNotFound, "Planning session not found or expired"},
	{ErrStartVenueRequired, http.StatusBadRequest, "A start venue is required"},
	{ErrInvalidTime, http.StatusBadRequest, "Invalid start/end time"},
	{ErrInvalidAction, http.StatusBadRequest, "Action must be like or dislike"},
	{ErrInvalidInput, http.StatusBadRequest, "Invalid input"},
	{ErrInvalidPage, http.StatusBadRequest, "Page must be greater than 0"},
	{ErrInvalidPageSize, http.StatusBadRequest, "Page size must be between 1 and 100"},
	{ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{ErrForbidden, http.StatusForbidden, "Forbidden"},
	{ErrWeatherUnavailable, http.StatusServiceUnavailable, "Weather service unavailable"},
}

// HandleServiceError maps a service error onto the response envelope. The error is
// also attached to the gin context so the request logger records it.
func HandleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			RespondError(c, m.code, m.message)
			return
		}
	}
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}

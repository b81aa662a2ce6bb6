// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crewmatch/internal/modules/booking"
	"crewmatch/internal/modules/location"
	"crewmatch/internal/modules/matching"
	"crewmatch/internal/modules/schedule"
	"crewmatch/internal/modules/worker"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeMatchError maps engine failures onto status codes: structural request
// problems are the caller's fault, everything else is ours.
func writeMatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrInvalidWindow),
		errors.Is(err, matching.ErrInvalidRequest),
		errors.Is(err, matching.ErrUnknownSortKey),
		errors.Is(err, worker.ErrUnknownStaffType):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, matching.ErrGeocodingFailure):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, location.ErrInvalidCoordinate):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrBadRequest),
		errors.Is(err, booking.ErrUnknownEventType),
		errors.Is(err, worker.ErrUnknownStaffType),
		errors.Is(err, schedule.ErrInvalidWindow):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrInvalidState),
		errors.Is(err, booking.ErrConflict),
		errors.Is(err, booking.ErrWorkerBooked):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// README: Booking handlers for create/get and lifecycle transitions.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"crewmatch/internal/modules/booking"
	"crewmatch/internal/modules/schedule"
	"crewmatch/internal/modules/worker"
	"crewmatch/internal/types"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

type createBookingReq struct {
	ClientID   string `json:"client_id"`
	WorkerID   string `json:"worker_id"`
	StaffType  string `json:"staff_type"`
	EventType  string `json:"event_type"`
	EventDate  string `json:"event_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	HourlyRate string `json:"hourly_rate"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	st, err := worker.ParseStaffType(req.StaffType)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	et, err := booking.ParseEventType(req.EventType)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	window, err := schedule.ParseWindow(req.EventDate, req.StartTime, req.EndTime)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid hourly_rate")
		return
	}

	id, err := h.booking.Create(c.Request.Context(), booking.CreateCommand{
		ClientID:   types.ID(req.ClientID),
		WorkerID:   types.ID(req.WorkerID),
		StaffType:  st,
		EventType:  et,
		Window:     window,
		HourlyRate: rate,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"id": id})
}

func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	b, err := h.booking.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"id":              b.ID,
		"client_id":       b.ClientID,
		"worker_id":       b.WorkerID,
		"staff_type":      b.StaffType,
		"event_type":      b.EventType,
		"event_date":      b.Window.Date().Format("2006-01-02"),
		"start_time":      b.Window.Start().Format("15:04"),
		"end_time":        b.Window.End().Format("15:04"),
		"hourly_rate":     b.HourlyRate,
		"estimated_total": b.EstimatedTotal.Amount,
		"currency":        b.EstimatedTotal.Currency,
		"status":          b.Status,
	})
}

func (h *BookingHandler) Accept(c *gin.Context) {
	id, workerID := c.Param("id"), c.Query("worker_id")
	if id == "" || workerID == "" {
		writeError(c, http.StatusBadRequest, "missing booking or worker id")
		return
	}
	err := h.booking.Accept(c.Request.Context(), booking.AcceptCommand{
		BookingID: types.ID(id),
		WorkerID:  types.ID(workerID),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": schedule.StatusAccepted})
}

func (h *BookingHandler) Decline(c *gin.Context) {
	id, workerID := c.Param("id"), c.Query("worker_id")
	if id == "" || workerID == "" {
		writeError(c, http.StatusBadRequest, "missing booking or worker id")
		return
	}
	err := h.booking.Decline(c.Request.Context(), booking.DeclineCommand{
		BookingID: types.ID(id),
		WorkerID:  types.ID(workerID),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": schedule.StatusDeclined})
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.simpleTransition(c, func(id types.ID) error {
		return h.booking.Confirm(c.Request.Context(), booking.ConfirmCommand{BookingID: id})
	}, schedule.StatusConfirmed)
}

func (h *BookingHandler) Start(c *gin.Context) {
	h.simpleTransition(c, func(id types.ID) error {
		return h.booking.Start(c.Request.Context(), booking.StartCommand{BookingID: id})
	}, schedule.StatusInProgress)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.simpleTransition(c, func(id types.ID) error {
		return h.booking.Complete(c.Request.Context(), booking.CompleteCommand{BookingID: id})
	}, schedule.StatusCompleted)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	var req struct {
		ActorType string `json:"actor_type"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.ActorType != "client" && req.ActorType != "worker") {
		writeError(c, http.StatusBadRequest, "actor_type must be client or worker")
		return
	}
	err := h.booking.Cancel(c.Request.Context(), booking.CancelCommand{
		BookingID: types.ID(id),
		ActorType: req.ActorType,
		Reason:    req.Reason,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": schedule.StatusCancelled})
}

func (h *BookingHandler) simpleTransition(c *gin.Context, call func(types.ID) error, result schedule.Status) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	if err := call(types.ID(id)); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": result})
}

// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"crewmatch/internal/ai"
	"crewmatch/internal/http/handlers"
	"crewmatch/internal/http/middleware"
	"crewmatch/internal/modules/booking"
	"crewmatch/internal/modules/location"
	"crewmatch/internal/modules/matching"
	"crewmatch/internal/modules/worker"
)

type RouterDeps struct {
	Engine   *matching.Engine
	Booking  *booking.Service
	Workers  *worker.Service
	Presence *location.Service
	Planner  ai.BriefPlanner
	Log      logrus.FieldLogger
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(deps.Log))
	r.Use(middleware.Recovery(deps.Log))

	staffHandler := handlers.NewStaffHandler(deps.Engine, deps.Planner)
	r.POST("/api/staff/search", staffHandler.Search)
	r.POST("/api/staff/plan", staffHandler.Plan)

	bookingHandler := handlers.NewBookingHandler(deps.Booking)
	r.POST("/api/bookings", bookingHandler.Create)
	r.GET("/api/bookings/:id", bookingHandler.Get)
	r.POST("/api/bookings/:id/accept", bookingHandler.Accept)
	r.POST("/api/bookings/:id/decline", bookingHandler.Decline)
	r.POST("/api/bookings/:id/confirm", bookingHandler.Confirm)
	r.POST("/api/bookings/:id/start", bookingHandler.Start)
	r.POST("/api/bookings/:id/complete", bookingHandler.Complete)
	r.POST("/api/bookings/:id/cancel", bookingHandler.Cancel)

	workerHandler := handlers.NewWorkerHandler(deps.Workers, deps.Presence)
	r.GET("/api/workers/:id", workerHandler.Get)
	r.PUT("/api/workers/:id/availability", workerHandler.SetAvailability)
	r.PUT("/api/workers/:id/location", workerHandler.UpdateLocation)
	r.DELETE("/api/workers/:id/location", workerHandler.GoOffline)
	r.GET("/api/workers/nearby", workerHandler.Nearby)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}

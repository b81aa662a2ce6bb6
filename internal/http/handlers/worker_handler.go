// README: Worker handlers for profile reads, availability, and live position.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crewmatch/internal/modules/location"
	"crewmatch/internal/modules/worker"
	"crewmatch/internal/types"
)

type WorkerHandler struct {
	workers  *worker.Service
	presence *location.Service
}

func NewWorkerHandler(workers *worker.Service, presence *location.Service) *WorkerHandler {
	return &WorkerHandler{workers: workers, presence: presence}
}

func (h *WorkerHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing worker id")
		return
	}
	w, err := h.workers.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeError(c, http.StatusNotFound, "worker not found")
		return
	}
	writeJSON(c, http.StatusOK, toCandidateProfile(w))
}

func (h *WorkerHandler) SetAvailability(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing worker id")
		return
	}
	var req struct {
		Available *bool `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Available == nil {
		writeError(c, http.StatusBadRequest, "available is required")
		return
	}
	if err := h.workers.SetAvailability(c.Request.Context(), types.ID(id), *req.Available); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"id": id, "available": *req.Available})
}

func (h *WorkerHandler) UpdateLocation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing worker id")
		return
	}
	var req struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.presence.Update(c.Request.Context(), location.Update{
		WorkerID: types.ID(id),
		Position: types.Point{Lat: req.Lat, Lng: req.Lng},
	})
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"id": id})
}

func (h *WorkerHandler) GoOffline(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing worker id")
		return
	}
	if err := h.presence.GoOffline(c.Request.Context(), types.ID(id)); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"id": id})
}

func (h *WorkerHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radius := 25.0
	if s := c.Query("radius_miles"); s != "" {
		r, err := strconv.ParseFloat(s, 64)
		if err != nil || r <= 0 {
			writeError(c, http.StatusBadRequest, "invalid radius_miles")
			return
		}
		radius = r
	}
	ids, err := h.presence.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radius)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"worker_ids": ids})
}

func toCandidateProfile(w worker.Candidate) map[string]any {
	out := map[string]any{
		"id":               w.ID,
		"name":             w.Name,
		"staff_type":       w.StaffType,
		"hourly_rate":      w.HourlyRate,
		"rating":           w.Rating,
		"verified":         w.Verified,
		"available":        w.Available,
		"completed_jobs":   w.CompletedJobs,
		"experience_years": w.ExperienceYears,
		"skills":           w.Skills,
		"bio":              w.Bio,
	}
	if w.Position != nil {
		out["lat"], out["lng"] = w.Position.Lat, w.Position.Lng
	}
	return out
}

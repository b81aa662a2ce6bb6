// README: Staff search and brief-planning handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"crewmatch/internal/ai"
	"crewmatch/internal/modules/matching"
	"crewmatch/internal/modules/schedule"
	"crewmatch/internal/modules/worker"
)

type StaffHandler struct {
	engine  *matching.Engine
	planner ai.BriefPlanner
}

// NewStaffHandler wires the matching engine and an optional brief planner;
// planner may be nil when no AI key is configured.
func NewStaffHandler(engine *matching.Engine, planner ai.BriefPlanner) *StaffHandler {
	return &StaffHandler{engine: engine, planner: planner}
}

type searchRequirement struct {
	StaffType         string  `json:"staff_type"`
	Quantity          int     `json:"quantity"`
	MaxRate           *string `json:"max_rate,omitempty"`
	HourlyRateOffered string  `json:"hourly_rate_offered"`
}

type searchRequest struct {
	EventDate     string `json:"event_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	OriginAddress string `json:"origin_address"`
	SortBy        string `json:"sort_by,omitempty"`
	Filters       struct {
		MinRating        float64 `json:"min_rating,omitempty"`
		VerifiedOnly     bool    `json:"verified_only,omitempty"`
		MaxDistanceMiles float64 `json:"max_distance_miles,omitempty"`
		Search           string  `json:"search,omitempty"`
	} `json:"filters"`
	Requirements []searchRequirement `json:"requirements"`
}

type candidateResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	StaffType     string          `json:"staff_type"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	Rating        float64         `json:"rating"`
	Verified      bool            `json:"verified"`
	DistanceMiles float64         `json:"distance_miles"`
	CompletedJobs int             `json:"completed_jobs"`
}

type roleResponse struct {
	StaffType  string              `json:"staff_type"`
	Requested  int                 `json:"requested"`
	Candidates []candidateResponse `json:"candidates"`
	Fulfilled  bool                `json:"fulfilled"`
}

type quoteResponse struct {
	BillableHours decimal.Decimal `json:"billable_hours"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	Total         decimal.Decimal `json:"total"`
}

type searchResponse struct {
	Roles []roleResponse `json:"roles"`
	Quote quoteResponse  `json:"quote"`
}

func (h *StaffHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	window, err := schedule.ParseWindow(req.EventDate, req.StartTime, req.EndTime)
	if err != nil {
		writeMatchError(c, err)
		return
	}
	sortBy, err := matching.ParseSortKey(req.SortBy)
	if err != nil {
		writeMatchError(c, err)
		return
	}

	requirements := make([]matching.Requirement, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		st, err := worker.ParseStaffType(r.StaffType)
		if err != nil {
			writeMatchError(c, err)
			return
		}
		offered, err := decimal.NewFromString(r.HourlyRateOffered)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid hourly_rate_offered")
			return
		}
		mr := matching.Requirement{StaffType: st, Quantity: r.Quantity, HourlyRateOffered: offered}
		if r.MaxRate != nil {
			max, err := decimal.NewFromString(*r.MaxRate)
			if err != nil {
				writeError(c, http.StatusBadRequest, "invalid max_rate")
				return
			}
			mr.MaxRate = &max
		}
		requirements = append(requirements, mr)
	}

	result, err := h.engine.MatchStaff(c.Request.Context(), matching.Request{
		Window:        window,
		OriginAddress: req.OriginAddress,
		Requirements:  requirements,
		SortBy:        sortBy,
		Filters: matching.Filters{
			MinRating:        req.Filters.MinRating,
			VerifiedOnly:     req.Filters.VerifiedOnly,
			MaxDistanceMiles: req.Filters.MaxDistanceMiles,
			SearchText:       req.Filters.Search,
		},
	})
	if err != nil {
		writeMatchError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, toSearchResponse(result))
}

func (h *StaffHandler) Plan(c *gin.Context) {
	if h.planner == nil {
		writeError(c, http.StatusServiceUnavailable, "brief planner is not configured")
		return
	}
	var req struct {
		Brief string `json:"brief"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Brief == "" {
		writeError(c, http.StatusBadRequest, "missing brief")
		return
	}
	plan, err := h.planner.PlanBrief(c.Request.Context(), req.Brief)
	if err != nil {
		writeError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, plan)
}

func toSearchResponse(result *matching.Result) searchResponse {
	resp := searchResponse{
		Roles: make([]roleResponse, len(result.Roles)),
		Quote: quoteResponse{
			BillableHours: result.Quote.BillableHours,
			Subtotal:      result.Quote.Subtotal,
			PlatformFee:   result.Quote.PlatformFee,
			Total:         result.Quote.Total,
		},
	}
	for i, role := range result.Roles {
		rr := roleResponse{
			StaffType:  string(role.StaffType),
			Requested:  role.Requested,
			Candidates: make([]candidateResponse, len(role.Candidates)),
			Fulfilled:  role.Fulfilled,
		}
		for j, cand := range role.Candidates {
			rr.Candidates[j] = candidateResponse{
				ID:            string(cand.ID),
				Name:          cand.Name,
				StaffType:     string(cand.StaffType),
				HourlyRate:    cand.HourlyRate,
				Rating:        cand.Rating,
				Verified:      cand.Verified,
				DistanceMiles: cand.DistanceMiles,
				CompletedJobs: cand.CompletedJobs,
			}
		}
		resp.Roles[i] = rr
	}
	return resp
}

package ai

import "context"

// PlanRequirement is one staffing line suggested by the planner, already
// validated against the closed staff-type enum.
type PlanRequirement struct {
	StaffType         string `json:"staff_type"`
	Quantity          int    `json:"quantity"`
	HourlyRateOffered string `json:"hourly_rate_offered"`
}

// StaffPlan is a draft staffing request extracted from a free-text event
// brief. It is a suggestion for the client to review, never submitted as a
// search on its own.
type StaffPlan struct {
	EventType     string            `json:"event_type"`
	Date          string            `json:"date"`
	StartTime     string            `json:"start_time"`
	EndTime       string            `json:"end_time"`
	OriginAddress string            `json:"origin_address"`
	Requirements  []PlanRequirement `json:"requirements"`
	Notes         string            `json:"notes"`
}

// BriefPlanner defines the contract for brief-parsing AI backends. The
// interface allows swapping providers (Gemini, OpenAI, etc.) later.
type BriefPlanner interface {
	// PlanBrief analyzes a natural-language event description and extracts a
	// structured staffing draft.
	PlanBrief(ctx context.Context, brief string) (*StaffPlan, error)
}

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"crewmatch/internal/modules/booking"
	"crewmatch/internal/modules/schedule"
	"crewmatch/internal/modules/worker"
)

// GeminiPlanner implements BriefPlanner using Google's Gemini models.
type GeminiPlanner struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiPlanner initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiPlanner(ctx context.Context, apiKey string) (*GeminiPlanner, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash: low latency and cost for short extraction prompts.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	return &GeminiPlanner{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiPlanner) Close() {
	p.client.Close()
}

// PlanBrief extracts a draft staffing plan from a free-text event brief. The
// model output is validated against the closed staff-type and event-type
// enums before it is returned; anything unrecognized fails the call.
func (p *GeminiPlanner) PlanBrief(ctx context.Context, brief string) (*StaffPlan, error) {
	fullPrompt := fmt.Sprintf("%s\n\nEvent Brief: %s", systemPrompt, brief)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// JSON mode should already return bare JSON; strip fences just in case.
	cleanJSON := cleanJSONString(responseText.String())

	var plan StaffPlan
	if err := json.Unmarshal([]byte(cleanJSON), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	if err := validatePlan(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// validatePlan normalizes the model's enum fields and rejects hallucinated
// values instead of silently defaulting.
func validatePlan(plan *StaffPlan) error {
	if len(plan.Requirements) == 0 {
		return fmt.Errorf("planner produced no staff requirements")
	}
	if plan.EventType != "" {
		et, err := booking.ParseEventType(plan.EventType)
		if err != nil {
			return err
		}
		plan.EventType = string(et)
	}
	if plan.Date != "" {
		if _, err := schedule.ParseWindow(plan.Date, plan.StartTime, plan.EndTime); err != nil {
			return err
		}
	}
	for i, r := range plan.Requirements {
		st, err := worker.ParseStaffType(r.StaffType)
		if err != nil {
			return err
		}
		plan.Requirements[i].StaffType = string(st)
		if r.Quantity < 1 {
			return fmt.Errorf("planner produced non-positive quantity for %s", st)
		}
	}
	return nil
}

const systemPrompt = `You extract structured staffing plans for an event-staffing marketplace.
Given an event brief, respond with a single JSON object:
{
  "event_type": one of WEDDING | CORPORATE | PRIVATE_PARTY | FESTIVAL, or "" if unclear,
  "date": "YYYY-MM-DD" or "" if not stated,
  "start_time": "HH:MM" 24-hour, "" if not stated,
  "end_time": "HH:MM" 24-hour, "" if not stated,
  "origin_address": the venue address verbatim, "" if not stated,
  "requirements": [{"staff_type": one of BARTENDER | SERVER | BARBACK | EVENT_CREW,
                    "quantity": positive integer,
                    "hourly_rate_offered": decimal string, "" if not stated}],
  "notes": anything important you could not fit into the fields above
}
Never invent staff types outside the list. If the brief implies roles loosely
("someone to pour drinks"), map them to the closest listed type.`

// cleanJSONString removes markdown code fences the model occasionally adds.
func cleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

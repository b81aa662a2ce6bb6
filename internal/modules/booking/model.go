// README: Booking aggregate, event-type enum and status flow.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"crewmatch/internal/modules/schedule"
	"crewmatch/internal/modules/worker"
	"crewmatch/internal/types"
)

type EventType string

const (
	EventWedding      EventType = "WEDDING"
	EventCorporate    EventType = "CORPORATE"
	EventPrivateParty EventType = "PRIVATE_PARTY"
	EventFestival     EventType = "FESTIVAL"
)

var ErrUnknownEventType = errors.New("unknown event type")

var eventTypes = map[EventType]bool{
	EventWedding:      true,
	EventCorporate:    true,
	EventPrivateParty: true,
	EventFestival:     true,
}

// ParseEventType rejects unrecognized input instead of defaulting.
func ParseEventType(s string) (EventType, error) {
	et := EventType(strings.ToUpper(strings.TrimSpace(s)))
	if !eventTypes[et] {
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, s)
	}
	return et, nil
}

// Booking is one worker engagement for one event window. Its status doubles
// as the worker's assignment status for conflict detection.
type Booking struct {
	ID             types.ID
	ClientID       types.ID
	WorkerID       types.ID
	StaffType      worker.StaffType
	EventType      EventType
	Window         schedule.TimeWindow
	HourlyRate     decimal.Decimal
	EstimatedTotal types.Money
	Status         schedule.Status
	StatusVersion  int
	CreatedAt      time.Time
	ConfirmedAt    *time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   *string
}

// Event is one audit record of a status transition.
type Event struct {
	ID         int64
	BookingID  types.ID
	FromStatus schedule.Status
	ToStatus   schedule.Status
	ActorType  string
	ActorID    *types.ID
	CreatedAt  time.Time
}

// AllowedTransitions represents the booking state flow as code.
var AllowedTransitions = map[schedule.Status][]schedule.Status{
	schedule.StatusPending:    {schedule.StatusAccepted, schedule.StatusDeclined, schedule.StatusCancelled},
	schedule.StatusAccepted:   {schedule.StatusConfirmed, schedule.StatusCancelled},
	schedule.StatusConfirmed:  {schedule.StatusInProgress, schedule.StatusCancelled},
	schedule.StatusInProgress: {schedule.StatusCompleted},
}

func CanTransition(from, to schedule.Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

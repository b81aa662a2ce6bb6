// README: Worker candidate model and closed staff-type enumeration.
package worker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"crewmatch/internal/types"
)

type StaffType string

const (
	TypeBartender StaffType = "BARTENDER"
	TypeServer    StaffType = "SERVER"
	TypeBarback   StaffType = "BARBACK"
	TypeEventCrew StaffType = "EVENT_CREW"
)

var ErrUnknownStaffType = errors.New("unknown staff type")

var staffTypes = map[StaffType]bool{
	TypeBartender: true,
	TypeServer:    true,
	TypeBarback:   true,
	TypeEventCrew: true,
}

// ParseStaffType maps external input onto the closed enum. Unrecognized
// values are an error, never a silent default.
func ParseStaffType(s string) (StaffType, error) {
	st := StaffType(strings.ToUpper(strings.TrimSpace(s)))
	if !staffTypes[st] {
		return "", fmt.Errorf("%w: %q", ErrUnknownStaffType, s)
	}
	return st, nil
}

// Candidate is a read-only snapshot of a worker profile as evaluated for one
// staffing requirement. The matching engine never mutates or persists it.
type Candidate struct {
	ID              types.ID
	Name            string
	StaffType       StaffType
	HourlyRate      decimal.Decimal
	Rating          float64
	Verified        bool
	Available       bool
	Position        *types.Point // nil when the profile has no stored coordinates
	CompletedJobs   int
	ExperienceYears float64
	Skills          []string
	Bio             string
}

// ParseExperienceYears extracts a year count from a free-text experience
// field such as "5 years behind the bar" or "10+ yrs". Returns 0 when no
// leading number is present.
func ParseExperienceYears(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return n
}

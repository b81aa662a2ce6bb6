// README: Staffing request, constraint and match-result models.
package matching

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"crewmatch/internal/modules/pricing"
	"crewmatch/internal/modules/schedule"
	"crewmatch/internal/modules/worker"
	"crewmatch/internal/types"
)

var (
	ErrInvalidRequest   = errors.New("invalid staffing request")
	ErrGeocodingFailure = errors.New("could not geocode origin address")
	ErrUnknownSortKey   = errors.New("unknown sort key")
)

// SortKey selects the primary ordering of ranked candidates.
type SortKey string

const (
	SortByDistance   SortKey = "DISTANCE"
	SortByRating     SortKey = "RATING"
	SortByRate       SortKey = "RATE"
	SortByExperience SortKey = "EXPERIENCE"
)

// ParseSortKey maps external input onto the closed sort-key set. Empty input
// selects the distance default; anything else unrecognized is an error.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByDistance, nil
	}
	k := SortKey(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case SortByDistance, SortByRating, SortByRate, SortByExperience:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// DefaultMaxDistanceMiles bounds candidate search when neither the request
// nor the deployment config sets a radius.
const DefaultMaxDistanceMiles = 25.0

// Requirement is one line of a staffing request: a role, how many workers it
// needs, and its rate constraints.
type Requirement struct {
	StaffType worker.StaffType
	Quantity  int
	// MaxRate is an optional ceiling on a candidate's own hourly rate.
	MaxRate *decimal.Decimal
	// HourlyRateOffered is what the client pays per worker-hour for this role.
	HourlyRateOffered decimal.Decimal
}

// Filters are request-wide soft constraints applied to every requirement.
type Filters struct {
	MinRating        float64
	VerifiedOnly     bool
	MaxDistanceMiles float64 // 0 selects the configured default
	SearchText       string
}

// Request is one complete staffing query.
type Request struct {
	Window        schedule.TimeWindow
	OriginAddress string
	Requirements  []Requirement
	SortBy        SortKey // empty selects SortByDistance
	Filters       Filters
}

// RankedCandidate is a worker annotated with its distance from the event.
type RankedCandidate struct {
	worker.Candidate
	DistanceMiles float64
}

// RoleMatch is the outcome for one requirement. An unfulfilled role is data,
// not an error: the rest of the result stands.
type RoleMatch struct {
	StaffType  worker.StaffType
	Requested  int
	Candidates []RankedCandidate
	Fulfilled  bool
}

// Result is the full outcome of one MatchStaff call. It is built fresh per
// query and never persisted here.
type Result struct {
	Origin types.Point
	Roles  []RoleMatch
	Quote  pricing.Quote
}

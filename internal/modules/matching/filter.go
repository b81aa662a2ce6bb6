// README: Hard-constraint candidate filtering with distance annotation.
package matching

import (
	"hash/fnv"
	"strings"

	"github.com/shopspring/decimal"

	"crewmatch/internal/modules/location"
	"crewmatch/internal/modules/worker"
	"crewmatch/internal/types"
)

// Constraints are the hard limits applied to one requirement's pool.
type Constraints struct {
	MinRating        float64
	MaxDistanceMiles float64
	MaxHourlyRate    *decimal.Decimal
	VerifiedOnly     bool
	AvailableOnly    bool
	SearchText       string
}

// CoordinateFallback decides what to do with a candidate whose profile has no
// stored coordinates. Resolve returns the position to use, or ok=false to
// exclude the candidate from distance filtering.
type CoordinateFallback interface {
	Resolve(c worker.Candidate, origin types.Point) (types.Point, bool)
}

// ExcludeMissingCoordinates is the production policy: a worker without a
// stored position is skipped rather than given a fabricated one.
type ExcludeMissingCoordinates struct{}

func (ExcludeMissingCoordinates) Resolve(worker.Candidate, types.Point) (types.Point, bool) {
	return types.Point{}, false
}

// DemoJitterFallback places coordinate-less workers at a deterministic offset
// around the origin. Demo and seed environments only; never wired into the
// production entry point.
type DemoJitterFallback struct {
	RadiusMiles float64
}

func (f DemoJitterFallback) Resolve(c worker.Candidate, origin types.Point) (types.Point, bool) {
	// One degree of latitude is roughly 69 miles; close enough for demo data.
	radiusDeg := f.RadiusMiles / 69.0
	h := fnv.New64a()
	_, _ = h.Write([]byte(c.ID))
	sum := h.Sum64()
	latFrac := float64(sum&0xffffffff)/float64(0xffffffff) - 0.5
	lngFrac := float64(sum>>32)/float64(0xffffffff) - 0.5
	return types.Point{
		Lat: origin.Lat + latFrac*2*radiusDeg,
		Lng: origin.Lng + lngFrac*2*radiusDeg,
	}, true
}

// Filter applies cons to the pool and annotates survivors with their distance
// from origin. Result order is whatever the pool order was; ranking is a
// separate pass. skipped lists workers dropped for missing or malformed
// coordinates so the caller can log them — one bad record must not fail the
// whole search.
func Filter(pool []worker.Candidate, origin types.Point, cons Constraints, fallback CoordinateFallback) (matched []RankedCandidate, skipped []types.ID) {
	if fallback == nil {
		fallback = ExcludeMissingCoordinates{}
	}
	search := strings.ToLower(strings.TrimSpace(cons.SearchText))

	for _, c := range pool {
		if cons.AvailableOnly && !c.Available {
			continue
		}
		if cons.VerifiedOnly && !c.Verified {
			continue
		}
		if c.Rating < cons.MinRating {
			continue
		}
		if cons.MaxHourlyRate != nil && c.HourlyRate.GreaterThan(*cons.MaxHourlyRate) {
			continue
		}
		if search != "" && !matchesSearch(c, search) {
			continue
		}

		pos := c.Position
		if pos == nil {
			p, ok := fallback.Resolve(c, origin)
			if !ok {
				skipped = append(skipped, c.ID)
				continue
			}
			pos = &p
		}
		dist, err := location.HaversineMiles(origin.Lat, origin.Lng, pos.Lat, pos.Lng)
		if err != nil {
			skipped = append(skipped, c.ID)
			continue
		}
		if cons.MaxDistanceMiles > 0 && dist > cons.MaxDistanceMiles {
			continue
		}

		matched = append(matched, RankedCandidate{Candidate: c, DistanceMiles: dist})
	}
	return matched, skipped
}

// matchesSearch reports whether the lowercased needle appears in the
// candidate's name, bio or skills.
func matchesSearch(c worker.Candidate, needle string) bool {
	if strings.Contains(strings.ToLower(c.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Bio), needle) {
		return true
	}
	for _, s := range c.Skills {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

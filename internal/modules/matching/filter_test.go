package matching

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"crewmatch/internal/modules/worker"
	"crewmatch/internal/types"
)

// Midtown Manhattan; candidate fixtures are placed relative to it.
var origin = types.Point{Lat: 40.7549, Lng: -73.9840}

func bartender(id string, mutate ...func(*worker.Candidate)) worker.Candidate {
	c := worker.Candidate{
		ID:            types.ID(id),
		Name:          "Worker " + id,
		StaffType:     worker.TypeBartender,
		HourlyRate:    decimal.RequireFromString("25"),
		Rating:        4.5,
		Verified:      true,
		Available:     true,
		Position:      &types.Point{Lat: 40.7580, Lng: -73.9855},
		CompletedJobs: 12,
	}
	for _, m := range mutate {
		m(&c)
	}
	return c
}

func filterAll(t *testing.T, pool []worker.Candidate, cons Constraints) []RankedCandidate {
	t.Helper()
	matched, skipped := Filter(pool, origin, cons, nil)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped workers: %v", skipped)
	}
	return matched
}

func defaultConstraints() Constraints {
	return Constraints{MaxDistanceMiles: 25, AvailableOnly: true}
}

func TestFilter_MaxHourlyRate(t *testing.T) {
	cheap := bartender("w1", func(c *worker.Candidate) { c.HourlyRate = decimal.RequireFromString("28") })
	pricey := bartender("w2", func(c *worker.Candidate) { c.HourlyRate = decimal.RequireFromString("35") })

	cons := defaultConstraints()
	ceiling := decimal.RequireFromString("30")
	cons.MaxHourlyRate = &ceiling

	matched := filterAll(t, []worker.Candidate{cheap, pricey}, cons)
	if len(matched) != 1 || matched[0].ID != "w1" {
		t.Fatalf("want only the $28 candidate, got %v", matched)
	}
}

func TestFilter_HardConstraints(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*worker.Candidate)
		cons    func(Constraints) Constraints
		wantOut bool
	}{
		{
			name:    "unavailable dropped",
			mutate:  func(c *worker.Candidate) { c.Available = false },
			cons:    func(c Constraints) Constraints { return c },
			wantOut: true,
		},
		{
			name:   "unavailable kept when availability not required",
			mutate: func(c *worker.Candidate) { c.Available = false },
			cons: func(c Constraints) Constraints {
				c.AvailableOnly = false
				return c
			},
			wantOut: false,
		},
		{
			name:   "unverified dropped under verifiedOnly",
			mutate: func(c *worker.Candidate) { c.Verified = false },
			cons: func(c Constraints) Constraints {
				c.VerifiedOnly = true
				return c
			},
			wantOut: true,
		},
		{
			name:   "below rating floor dropped",
			mutate: func(c *worker.Candidate) { c.Rating = 3.9 },
			cons: func(c Constraints) Constraints {
				c.MinRating = 4.0
				return c
			},
			wantOut: true,
		},
		{
			name:   "rating exactly at floor kept",
			mutate: func(c *worker.Candidate) { c.Rating = 4.0 },
			cons: func(c Constraints) Constraints {
				c.MinRating = 4.0
				return c
			},
			wantOut: false,
		},
		{
			name: "beyond max distance dropped",
			mutate: func(c *worker.Candidate) {
				c.Position = &types.Point{Lat: 42.3601, Lng: -71.0589} // Boston
			},
			cons:    func(c Constraints) Constraints { return c },
			wantOut: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := []worker.Candidate{bartender("w1", tt.mutate)}
			matched := filterAll(t, pool, tt.cons(defaultConstraints()))
			if gotOut := len(matched) == 0; gotOut != tt.wantOut {
				t.Errorf("filtered out = %v, want %v", gotOut, tt.wantOut)
			}
		})
	}
}

func TestFilter_SearchText(t *testing.T) {
	flair := bartender("w1", func(c *worker.Candidate) {
		c.Bio = "Flair bartending and craft cocktails"
	})
	skills := bartender("w2", func(c *worker.Candidate) {
		c.Skills = []string{"Mixology", "POS systems"}
	})
	name := bartender("w3", func(c *worker.Candidate) { c.Name = "Casey Mixwell" })
	plain := bartender("w4")

	cons := defaultConstraints()
	cons.SearchText = "MIX"
	matched := filterAll(t, []worker.Candidate{flair, skills, name, plain}, cons)
	if len(matched) != 2 {
		t.Fatalf("want 2 matches for case-insensitive %q, got %d", cons.SearchText, len(matched))
	}
	for _, m := range matched {
		if m.ID == plain.ID {
			t.Errorf("candidate without the term must not match")
		}
	}
}

func TestFilter_AnnotatesDistance(t *testing.T) {
	matched := filterAll(t, []worker.Candidate{bartender("w1")}, defaultConstraints())
	if len(matched) != 1 {
		t.Fatal("candidate unexpectedly filtered")
	}
	// ~0.2mi between fixture position and origin.
	if d := matched[0].DistanceMiles; d <= 0 || d > 1 {
		t.Errorf("DistanceMiles = %v, want small positive value", d)
	}
}

func TestFilter_MissingCoordinatesExcluded(t *testing.T) {
	noCoords := bartender("w1", func(c *worker.Candidate) { c.Position = nil })
	matched, skipped := Filter([]worker.Candidate{noCoords}, origin, defaultConstraints(), ExcludeMissingCoordinates{})
	if len(matched) != 0 {
		t.Fatalf("want no matches, got %v", matched)
	}
	if len(skipped) != 1 || skipped[0] != "w1" {
		t.Fatalf("want w1 reported as skipped, got %v", skipped)
	}
}

func TestFilter_InvalidStoredCoordinatesSkipped(t *testing.T) {
	bad := bartender("w1", func(c *worker.Candidate) {
		c.Position = &types.Point{Lat: math.NaN(), Lng: -73.98}
	})
	good := bartender("w2")
	matched, skipped := Filter([]worker.Candidate{bad, good}, origin, defaultConstraints(), nil)
	if len(matched) != 1 || matched[0].ID != "w2" {
		t.Fatalf("one bad record must not drop the rest, got %v", matched)
	}
	if len(skipped) != 1 || skipped[0] != "w1" {
		t.Fatalf("want w1 skipped, got %v", skipped)
	}
}

func TestDemoJitterFallback_Deterministic(t *testing.T) {
	noCoords := bartender("w1", func(c *worker.Candidate) { c.Position = nil })
	fb := DemoJitterFallback{RadiusMiles: 5}

	first, ok := fb.Resolve(noCoords, origin)
	if !ok {
		t.Fatal("jitter fallback must produce a position")
	}
	for i := 0; i < 10; i++ {
		again, _ := fb.Resolve(noCoords, origin)
		if again != first {
			t.Fatalf("jitter must be deterministic per worker: %v != %v", again, first)
		}
	}

	other, _ := fb.Resolve(bartender("w2", func(c *worker.Candidate) { c.Position = nil }), origin)
	if other == first {
		t.Error("distinct workers should land on distinct jittered positions")
	}

	matched, skipped := Filter([]worker.Candidate{noCoords}, origin, defaultConstraints(), fb)
	if len(skipped) != 0 || len(matched) != 1 {
		t.Fatalf("jittered candidate must pass distance filtering, got matched=%v skipped=%v", matched, skipped)
	}
}

// README: Matching engine orchestrates conflict checks, filtering, ranking and quoting.
package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"crewmatch/internal/config"
	"crewmatch/internal/modules/pricing"
	"crewmatch/internal/modules/schedule"
	"crewmatch/internal/modules/worker"
	"crewmatch/internal/types"
)

// Geocoder resolves a street address to coordinates. ok=false means the
// address produced no result at all.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (p types.Point, ok bool, err error)
}

// WorkerDirectory supplies the candidate pool for one staff type.
type WorkerDirectory interface {
	FindByType(ctx context.Context, st worker.StaffType) ([]worker.Candidate, error)
}

// AssignmentSource supplies workers' existing commitments around a date. It
// must include assignments anchored to the prior day and the next day, so
// overnight carry-over is visible to conflict detection in both directions:
// a prior-day booking can spill into the requested date, and an overnight
// request can spill into the next day's bookings.
type AssignmentSource interface {
	FindOverlapping(ctx context.Context, workerIDs []types.ID, date time.Time) ([]schedule.Assignment, error)
}

// EngineDeps are the collaborators injected into the engine. Lifecycle and
// pooling of the underlying connections belong to the caller.
type EngineDeps struct {
	Geocoder    Geocoder
	Workers     WorkerDirectory
	Assignments AssignmentSource
	Pricing     *pricing.Service
	// Fallback handles coordinate-less workers; nil selects
	// ExcludeMissingCoordinates.
	Fallback CoordinateFallback
	Log      logrus.FieldLogger
}

// Engine is a stateless per-request computation: it only reads the snapshots
// its collaborators hand it, so no locking is needed anywhere.
type Engine struct {
	geocoder    Geocoder
	workers     WorkerDirectory
	assignments AssignmentSource
	pricing     *pricing.Service
	fallback    CoordinateFallback
	cfg         config.MatchingConfig
	log         logrus.FieldLogger
}

func NewEngine(deps EngineDeps, cfg config.MatchingConfig) *Engine {
	fallback := deps.Fallback
	if fallback == nil {
		fallback = ExcludeMissingCoordinates{}
	}
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		geocoder:    deps.Geocoder,
		workers:     deps.Workers,
		assignments: deps.Assignments,
		pricing:     deps.Pricing,
		fallback:    fallback,
		cfg:         cfg,
		log:         log,
	}
}

// MatchStaff resolves one staffing request into per-role ranked candidate
// lists and an aggregate quote. A role with too few candidates is reported
// as unfulfilled, not failed; only structural problems (bad window, empty
// requirements, geocoding) abort the call. On context cancellation the call
// fails outright rather than returning a partial result.
func (e *Engine) MatchStaff(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	origin, ok, err := e.geocoder.Geocode(ctx, req.OriginAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeocodingFailure, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGeocodingFailure, req.OriginAddress)
	}

	sortKey := req.SortBy
	if sortKey == "" {
		sortKey = SortByDistance
	}

	roles := make([]RoleMatch, 0, len(req.Requirements))
	lines := make([]pricing.Line, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("match cancelled: %w", err)
		}

		pool, err := e.workers.FindByType(ctx, r.StaffType)
		if err != nil {
			return nil, err
		}

		free, err := e.dropConflicted(ctx, pool, req.Window)
		if err != nil {
			return nil, err
		}

		matched, skipped := Filter(free, origin, e.constraintsFor(r, req.Filters), e.fallback)
		for _, id := range skipped {
			e.log.WithFields(logrus.Fields{
				"worker_id":  id,
				"staff_type": r.StaffType,
			}).Warn("skipping candidate with missing or invalid coordinates")
		}

		Rank(matched, sortKey)

		roles = append(roles, RoleMatch{
			StaffType:  r.StaffType,
			Requested:  r.Quantity,
			Candidates: matched,
			Fulfilled:  len(matched) >= r.Quantity,
		})
		lines = append(lines, pricing.Line{HourlyRate: r.HourlyRateOffered, Quantity: r.Quantity})
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("match cancelled: %w", err)
	}

	return &Result{
		Origin: origin,
		Roles:  roles,
		Quote:  e.pricing.Quote(req.Window, lines),
	}, nil
}

// dropConflicted removes workers whose existing blocking commitments overlap
// the requested window.
func (e *Engine) dropConflicted(ctx context.Context, pool []worker.Candidate, window schedule.TimeWindow) ([]worker.Candidate, error) {
	if len(pool) == 0 {
		return pool, nil
	}
	ids := make([]types.ID, len(pool))
	for i, c := range pool {
		ids[i] = c.ID
	}
	existing, err := e.assignments.FindOverlapping(ctx, ids, window.Date())
	if err != nil {
		return nil, err
	}
	byWorker := make(map[types.ID][]schedule.Assignment, len(pool))
	for _, a := range existing {
		byWorker[a.WorkerID] = append(byWorker[a.WorkerID], a)
	}

	free := pool[:0:0]
	for _, c := range pool {
		if schedule.HasConflict(window, byWorker[c.ID]) {
			continue
		}
		free = append(free, c)
	}
	return free, nil
}

func (e *Engine) constraintsFor(r Requirement, f Filters) Constraints {
	maxDist := f.MaxDistanceMiles
	if maxDist <= 0 {
		maxDist = e.cfg.MaxDistanceMiles
	}
	if maxDist <= 0 {
		maxDist = DefaultMaxDistanceMiles
	}
	minRating := f.MinRating
	if minRating < e.cfg.MinRating {
		minRating = e.cfg.MinRating
	}
	return Constraints{
		MinRating:        minRating,
		MaxDistanceMiles: maxDist,
		MaxHourlyRate:    r.MaxRate,
		VerifiedOnly:     f.VerifiedOnly,
		AvailableOnly:    true,
		SearchText:       f.SearchText,
	}
}

func validateRequest(req Request) error {
	if req.Window.IsZero() {
		return fmt.Errorf("%w: missing time window", schedule.ErrInvalidWindow)
	}
	if req.OriginAddress == "" {
		return fmt.Errorf("%w: missing origin address", ErrInvalidRequest)
	}
	if len(req.Requirements) == 0 {
		return fmt.Errorf("%w: no staff requirements", ErrInvalidRequest)
	}
	for _, r := range req.Requirements {
		if r.Quantity < 1 {
			return fmt.Errorf("%w: quantity %d for %s", ErrInvalidRequest, r.Quantity, r.StaffType)
		}
		if r.HourlyRateOffered.IsNegative() {
			return fmt.Errorf("%w: negative offered rate for %s", ErrInvalidRequest, r.StaffType)
		}
	}
	return nil
}

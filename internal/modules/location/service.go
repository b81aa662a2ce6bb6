// README: Worker presence service; validates coordinates before caching them.
package location

import (
	"context"

	"crewmatch/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type Update struct {
	WorkerID types.ID
	Position types.Point
}

// Update records a worker's live position in the presence cache.
func (s *Service) Update(ctx context.Context, u Update) error {
	if u.WorkerID == "" {
		return ErrInvalidCoordinate
	}
	if err := ValidateCoordinate(u.Position.Lat, u.Position.Lng); err != nil {
		return err
	}
	return s.store.SetWorkerPosition(ctx, u.WorkerID, u.Position)
}

// GoOffline removes a worker from the presence cache.
func (s *Service) GoOffline(ctx context.Context, id types.ID) error {
	return s.store.RemoveWorker(ctx, id)
}

// Nearby lists workers currently within radiusMiles of p, closest first.
func (s *Service) Nearby(ctx context.Context, p types.Point, radiusMiles float64) ([]types.ID, error) {
	if err := ValidateCoordinate(p.Lat, p.Lng); err != nil {
		return nil, err
	}
	return s.store.NearbyWorkers(ctx, p, radiusMiles)
}

// README: Worker service; profile reads and availability updates.
package worker

import (
	"context"

	"crewmatch/internal/types"
)

// Storage is the persistence surface the service needs; satisfied by Store
// and by in-memory fakes in tests.
type Storage interface {
	FindByType(ctx context.Context, st StaffType) ([]Candidate, error)
	Get(ctx context.Context, id types.ID) (Candidate, error)
	SetAvailability(ctx context.Context, id types.ID, available bool) error
}

type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

func (s *Service) FindByType(ctx context.Context, st StaffType) ([]Candidate, error) {
	return s.store.FindByType(ctx, st)
}

func (s *Service) Get(ctx context.Context, id types.ID) (Candidate, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) SetAvailability(ctx context.Context, id types.ID, available bool) error {
	return s.store.SetAvailability(ctx, id, available)
}

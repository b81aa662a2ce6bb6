// README: Booking service implements state transitions and double-booking guards.
package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"crewmatch/internal/modules/pricing"
	"crewmatch/internal/modules/schedule"
	"crewmatch/internal/modules/worker"
	"crewmatch/internal/types"
)

var (
	ErrInvalidState = errors.New("invalid state transition")
	ErrNotFound     = errors.New("booking not found")
	ErrConflict     = errors.New("booking state conflict")
	ErrWorkerBooked = errors.New("worker already booked for this window")
	ErrBadRequest   = errors.New("bad request")
)

// Pricing estimates the cost of one engagement; satisfied by pricing.Service.
type Pricing interface {
	Quote(w schedule.TimeWindow, lines []pricing.Line) pricing.Quote
}

// Storage is the persistence surface; satisfied by Store and by in-memory
// fakes in tests.
type Storage interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (*Booking, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to schedule.Status, version int) (bool, error)
	AppendEvent(ctx context.Context, e *Event) error
	FindOverlapping(ctx context.Context, workerIDs []types.ID, date time.Time) ([]schedule.Assignment, error)
}

type Service struct {
	store   Storage
	pricing Pricing
}

func NewService(store Storage, pricing Pricing) *Service {
	return &Service{store: store, pricing: pricing}
}

type CreateCommand struct {
	ClientID   types.ID
	WorkerID   types.ID
	StaffType  worker.StaffType
	EventType  EventType
	Window     schedule.TimeWindow
	HourlyRate decimal.Decimal
}

type AcceptCommand struct {
	BookingID types.ID
	WorkerID  types.ID
}

type ConfirmCommand struct {
	BookingID types.ID
}

type StartCommand struct {
	BookingID types.ID
}

type CompleteCommand struct {
	BookingID types.ID
}

type DeclineCommand struct {
	BookingID types.ID
	WorkerID  types.ID
}

type CancelCommand struct {
	BookingID types.ID
	ActorType string
	Reason    string
}

// Create opens a pending booking after checking the worker is not already
// committed to an overlapping window.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if cmd.ClientID == "" || cmd.WorkerID == "" || cmd.Window.IsZero() {
		return "", ErrBadRequest
	}
	if cmd.HourlyRate.IsNegative() {
		return "", ErrBadRequest
	}

	existing, err := s.store.FindOverlapping(ctx, []types.ID{cmd.WorkerID}, cmd.Window.Date())
	if err != nil {
		return "", err
	}
	if schedule.HasConflict(cmd.Window, existing) {
		return "", ErrWorkerBooked
	}

	id := newID()
	now := time.Now()
	quote := s.pricing.Quote(cmd.Window, []pricing.Line{{HourlyRate: cmd.HourlyRate, Quantity: 1}})

	b := &Booking{
		ID:             id,
		ClientID:       cmd.ClientID,
		WorkerID:       cmd.WorkerID,
		StaffType:      cmd.StaffType,
		EventType:      cmd.EventType,
		Window:         cmd.Window,
		HourlyRate:     cmd.HourlyRate,
		EstimatedTotal: types.USD(quote.Total),
		Status:         schedule.StatusPending,
		StatusVersion:  0,
		CreatedAt:      now,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return "", err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		BookingID:  id,
		FromStatus: "",
		ToStatus:   schedule.StatusPending,
		ActorType:  "client",
		ActorID:    &cmd.ClientID,
		CreatedAt:  now,
	})
	return id, nil
}

// Accept is the worker taking the job.
func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) error {
	return s.transition(ctx, cmd.BookingID, schedule.StatusAccepted, "worker", &cmd.WorkerID)
}

// Confirm is the client locking the engagement in.
func (s *Service) Confirm(ctx context.Context, cmd ConfirmCommand) error {
	return s.transition(ctx, cmd.BookingID, schedule.StatusConfirmed, "client", nil)
}

func (s *Service) Start(ctx context.Context, cmd StartCommand) error {
	return s.transition(ctx, cmd.BookingID, schedule.StatusInProgress, "worker", nil)
}

func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) error {
	return s.transition(ctx, cmd.BookingID, schedule.StatusCompleted, "worker", nil)
}

func (s *Service) Decline(ctx context.Context, cmd DeclineCommand) error {
	return s.transition(ctx, cmd.BookingID, schedule.StatusDeclined, "worker", &cmd.WorkerID)
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	var actorID *types.ID
	b, err := s.store.Get(ctx, cmd.BookingID)
	if err != nil {
		return err
	}
	if cmd.ActorType == "client" {
		actorID = &b.ClientID
	} else {
		actorID = &b.WorkerID
	}
	return s.transitionFrom(ctx, b, schedule.StatusCancelled, cmd.ActorType, actorID)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) transition(ctx context.Context, id types.ID, to schedule.Status, actorType string, actorID *types.ID) error {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.transitionFrom(ctx, b, to, actorType, actorID)
}

func (s *Service) transitionFrom(ctx context.Context, b *Booking, to schedule.Status, actorType string, actorID *types.ID) error {
	if !CanTransition(b.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, b.ID, b.Status, to, b.StatusVersion)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	_ = s.store.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   to,
		ActorType:  actorType,
		ActorID:    actorID,
		CreatedAt:  time.Now(),
	})
	return nil
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}

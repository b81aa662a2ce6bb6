// README: Booking service tests with an in-memory store.
package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"crewmatch/internal/config"
	"crewmatch/internal/modules/pricing"
	"crewmatch/internal/modules/schedule"
	"crewmatch/internal/modules/worker"
	"crewmatch/internal/types"
)

// mockStore is an in-memory Storage for testing.
type mockStore struct {
	mu       sync.Mutex
	bookings map[types.ID]*Booking
	events   []Event
	// failUpdate simulates a concurrent writer winning the version race.
	failUpdate bool
}

func newMockStore() *mockStore {
	return &mockStore{bookings: make(map[types.ID]*Booking)}
}

func (m *mockStore) Create(_ context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *mockStore) Get(_ context.Context, id types.ID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockStore) UpdateStatus(_ context.Context, id types.ID, from, to schedule.Status, version int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate {
		return false, nil
	}
	b, ok := m.bookings[id]
	if !ok || b.Status != from || b.StatusVersion != version {
		return false, nil
	}
	b.Status = to
	b.StatusVersion++
	return true, nil
}

func (m *mockStore) AppendEvent(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *e)
	return nil
}

// FindOverlapping mirrors the SQL store's anchor-date range: rows within one
// day of the queried date, in either direction.
func (m *mockStore) FindOverlapping(_ context.Context, workerIDs []types.ID, date time.Time) ([]schedule.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[types.ID]bool, len(workerIDs))
	for _, id := range workerIDs {
		wanted[id] = true
	}
	var out []schedule.Assignment
	for _, b := range m.bookings {
		if !wanted[b.WorkerID] {
			continue
		}
		d := b.Window.Date()
		if d.Equal(date) || d.Equal(date.AddDate(0, 0, -1)) || d.Equal(date.AddDate(0, 0, 1)) {
			out = append(out, schedule.Assignment{WorkerID: b.WorkerID, Window: b.Window, Status: b.Status})
		}
	}
	return out, nil
}

var eventDay = time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

func testWindow(t *testing.T, start, end string) schedule.TimeWindow {
	t.Helper()
	w, err := schedule.NewWindow(eventDay, start, end)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w
}

func newTestService(store Storage) *Service {
	pricingSvc := pricing.NewService(nil, config.PricingConfig{PlatformFeeRate: 0.15, MinBillableHours: 2})
	return NewService(store, pricingSvc)
}

func createCmd(t *testing.T) CreateCommand {
	return CreateCommand{
		ClientID:   "client1",
		WorkerID:   "worker1",
		StaffType:  worker.TypeBartender,
		EventType:  EventWedding,
		Window:     testWindow(t, "14:00", "22:00"),
		HourlyRate: decimal.RequireFromString("25"),
	}
}

func TestCreate_EstimatesTotal(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)

	id, err := svc.Create(context.Background(), createCmd(t))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if b.Status != schedule.StatusPending {
		t.Errorf("Status = %s, want pending", b.Status)
	}
	// 8h * $25 = 200, plus 15% fee.
	if !b.EstimatedTotal.Amount.Equal(decimal.RequireFromString("230")) {
		t.Errorf("EstimatedTotal = %s, want 230", b.EstimatedTotal.Amount)
	}
	if b.EstimatedTotal.Currency != "USD" {
		t.Errorf("Currency = %s, want USD", b.EstimatedTotal.Currency)
	}
	if len(store.events) != 1 || store.events[0].ToStatus != schedule.StatusPending {
		t.Errorf("expected one creation event, got %v", store.events)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(newMockStore())
	tests := []struct {
		name   string
		mutate func(*CreateCommand)
	}{
		{"missing client", func(c *CreateCommand) { c.ClientID = "" }},
		{"missing worker", func(c *CreateCommand) { c.WorkerID = "" }},
		{"zero window", func(c *CreateCommand) { c.Window = schedule.TimeWindow{} }},
		{"negative rate", func(c *CreateCommand) { c.HourlyRate = decimal.RequireFromString("-1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := createCmd(t)
			tt.mutate(&cmd)
			if _, err := svc.Create(context.Background(), cmd); !errors.Is(err, ErrBadRequest) {
				t.Errorf("got %v, want ErrBadRequest", err)
			}
		})
	}
}

func TestCreate_RejectsDoubleBooking(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, createCmd(t))
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	// Pending bookings do not block; move it to accepted first.
	if err := svc.Accept(ctx, AcceptCommand{BookingID: id, WorkerID: "worker1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	// Overlapping window for the same worker must now be rejected.
	overlap := createCmd(t)
	overlap.ClientID = "client2"
	overlap.Window = testWindow(t, "20:00", "23:00")
	if _, err := svc.Create(ctx, overlap); !errors.Is(err, ErrWorkerBooked) {
		t.Fatalf("got %v, want ErrWorkerBooked", err)
	}

	// A back-to-back window is fine.
	adjacent := createCmd(t)
	adjacent.ClientID = "client2"
	adjacent.Window = testWindow(t, "22:00", "23:30")
	if _, err := svc.Create(ctx, adjacent); err != nil {
		t.Fatalf("back-to-back booking should succeed: %v", err)
	}
}

func TestCreate_OvernightTailConflictsWithNextDayBooking(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	ctx := context.Background()

	// Worker holds an accepted early-morning shift anchored on the next day.
	morning := createCmd(t)
	nextDay, err := schedule.NewWindow(eventDay.AddDate(0, 0, 1), "01:00", "05:00")
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	morning.Window = nextDay
	id, err := svc.Create(ctx, morning)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Accept(ctx, AcceptCommand{BookingID: id, WorkerID: "worker1"}); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	// An overnight request anchored today runs 22:00 to 02:00 and collides
	// with the 01:00 start, even though the two rows carry different dates.
	overnight := createCmd(t)
	overnight.ClientID = "client2"
	overnight.Window = testWindow(t, "22:00", "02:00")
	if _, err := svc.Create(ctx, overnight); !errors.Is(err, ErrWorkerBooked) {
		t.Fatalf("got %v, want ErrWorkerBooked", err)
	}
}

func TestCreate_PendingDoesNotBlock(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, createCmd(t)); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	// A second request for the same window can still be placed while the
	// first is merely pending.
	second := createCmd(t)
	second.ClientID = "client2"
	if _, err := svc.Create(ctx, second); err != nil {
		t.Fatalf("pending booking must not block: %v", err)
	}
}

func TestLifecycle_HappyPath(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, createCmd(t))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	steps := []struct {
		name string
		call func() error
		want schedule.Status
	}{
		{"accept", func() error { return svc.Accept(ctx, AcceptCommand{BookingID: id, WorkerID: "worker1"}) }, schedule.StatusAccepted},
		{"confirm", func() error { return svc.Confirm(ctx, ConfirmCommand{BookingID: id}) }, schedule.StatusConfirmed},
		{"start", func() error { return svc.Start(ctx, StartCommand{BookingID: id}) }, schedule.StatusInProgress},
		{"complete", func() error { return svc.Complete(ctx, CompleteCommand{BookingID: id}) }, schedule.StatusCompleted},
	}
	for _, step := range steps {
		if err := step.call(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		b, _ := svc.Get(ctx, id)
		if b.Status != step.want {
			t.Fatalf("%s: status = %s, want %s", step.name, b.Status, step.want)
		}
	}
	// Creation event plus four transitions.
	if len(store.events) != 5 {
		t.Errorf("events = %d, want 5", len(store.events))
	}
}

func TestLifecycle_InvalidTransitions(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, createCmd(t))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Cannot start a booking that was never accepted and confirmed.
	if err := svc.Start(ctx, StartCommand{BookingID: id}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("start from pending: got %v, want ErrInvalidState", err)
	}
	// Completed is terminal.
	for _, step := range []func() error{
		func() error { return svc.Accept(ctx, AcceptCommand{BookingID: id, WorkerID: "worker1"}) },
		func() error { return svc.Confirm(ctx, ConfirmCommand{BookingID: id}) },
		func() error { return svc.Start(ctx, StartCommand{BookingID: id}) },
		func() error { return svc.Complete(ctx, CompleteCommand{BookingID: id}) },
	} {
		if err := step(); err != nil {
			t.Fatalf("lifecycle step: %v", err)
		}
	}
	if err := svc.Cancel(ctx, CancelCommand{BookingID: id, ActorType: "client"}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("cancel after completion: got %v, want ErrInvalidState", err)
	}
}

func TestTransition_VersionConflict(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, createCmd(t))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	store.failUpdate = true
	if err := svc.Accept(ctx, AcceptCommand{BookingID: id, WorkerID: "worker1"}); !errors.Is(err, ErrConflict) {
		t.Errorf("got %v, want ErrConflict", err)
	}
}

func TestCancel_RecordsActor(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	ctx := context.Background()

	id, err := svc.Create(ctx, createCmd(t))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Cancel(ctx, CancelCommand{BookingID: id, ActorType: "client", Reason: "venue fell through"}); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	last := store.events[len(store.events)-1]
	if last.ToStatus != schedule.StatusCancelled || last.ActorType != "client" {
		t.Errorf("cancel event = %+v", last)
	}
	if last.ActorID == nil || *last.ActorID != "client1" {
		t.Errorf("cancel actor = %v, want client1", last.ActorID)
	}
}

func TestParseEventType(t *testing.T) {
	if _, err := ParseEventType("rave"); !errors.Is(err, ErrUnknownEventType) {
		t.Errorf("unknown input must error, got %v", err)
	}
	et, err := ParseEventType("wedding")
	if err != nil || et != EventWedding {
		t.Errorf("ParseEventType(wedding) = %v, %v", et, err)
	}
}

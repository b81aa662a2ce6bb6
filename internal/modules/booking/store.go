// README: Booking store backed by PostgreSQL.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"crewmatch/internal/modules/schedule"
	"crewmatch/internal/modules/worker"
	"crewmatch/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, b *Booking) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO bookings (
			id, client_id, worker_id, staff_type, event_type,
			event_date, start_time, end_time,
			hourly_rate, estimated_total, currency,
			status, status_version, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11,
			$12, $13, $14
		)`,
		string(b.ID),
		string(b.ClientID),
		string(b.WorkerID),
		string(b.StaffType),
		string(b.EventType),
		b.Window.Date(),
		b.Window.Start().Format("15:04"),
		b.Window.End().Format("15:04"),
		b.HourlyRate.String(),
		b.EstimatedTotal.Amount.String(),
		b.EstimatedTotal.Currency,
		string(b.Status),
		b.StatusVersion,
		b.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, client_id, worker_id, staff_type, event_type,
		       event_date, start_time, end_time,
		       hourly_rate::text, estimated_total::text, currency,
		       status, status_version,
		       created_at, confirmed_at, completed_at, cancelled_at, cancel_reason
		FROM bookings
		WHERE id = $1`, string(id),
	)

	var b Booking
	var staffType, eventType string
	var eventDate time.Time
	var startTime, endTime string
	var rate, total string
	var confirmedAt, completedAt, cancelledAt sql.NullTime
	var cancelReason sql.NullString

	err := row.Scan(
		&b.ID, &b.ClientID, &b.WorkerID, &staffType, &eventType,
		&eventDate, &startTime, &endTime,
		&rate, &total, &b.EstimatedTotal.Currency,
		&b.Status, &b.StatusVersion,
		&b.CreatedAt, &confirmedAt, &completedAt, &cancelledAt, &cancelReason,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if b.StaffType, err = worker.ParseStaffType(staffType); err != nil {
		return nil, err
	}
	if b.EventType, err = ParseEventType(eventType); err != nil {
		return nil, err
	}
	if b.Window, err = schedule.NewWindow(eventDate, startTime, endTime); err != nil {
		return nil, err
	}
	if b.HourlyRate, err = decimal.NewFromString(rate); err != nil {
		return nil, err
	}
	if b.EstimatedTotal.Amount, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	if confirmedAt.Valid {
		b.ConfirmedAt = &confirmedAt.Time
	}
	if completedAt.Valid {
		b.CompletedAt = &completedAt.Time
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	if cancelReason.Valid {
		b.CancelReason = &cancelReason.String
	}
	return &b, nil
}

// UpdateStatus transitions a booking with an optimistic version check; ok is
// false when another writer got there first.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to schedule.Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings
		SET status = $3,
		    status_version = status_version + 1,
		    confirmed_at = CASE WHEN $3 = 'confirmed' THEN now() ELSE confirmed_at END,
		    completed_at = CASE WHEN $3 = 'completed' THEN now() ELSE completed_at END,
		    cancelled_at = CASE WHEN $3 = 'cancelled' THEN now() ELSE cancelled_at END
		WHERE id = $1 AND status = $2 AND status_version = $4`,
		string(id), string(from), string(to), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO booking_events (booking_id, from_status, to_status, actor_type, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.BookingID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		toStringPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

// FindOverlapping returns the workers' bookings anchored to the given date,
// the prior day or the next day, all statuses included. Conflict detection
// filters statuses and does the precise instant comparison; the widened range
// keeps overnight carry-over visible in both directions, since a request
// crossing midnight can collide with a booking anchored on the following day.
func (s *Store) FindOverlapping(ctx context.Context, workerIDs []types.ID, date time.Time) ([]schedule.Assignment, error) {
	if len(workerIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(workerIDs))
	for i, id := range workerIDs {
		ids[i] = string(id)
	}

	rows, err := s.db.Query(ctx, `
		SELECT worker_id, event_date, start_time, end_time, status
		FROM bookings
		WHERE worker_id = ANY($1)
		  AND event_date BETWEEN $2::date - 1 AND $2::date + 1`,
		ids, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Assignment
	for rows.Next() {
		var workerID string
		var eventDate time.Time
		var startTime, endTime, status string
		if err := rows.Scan(&workerID, &eventDate, &startTime, &endTime, &status); err != nil {
			return nil, err
		}
		w, err := schedule.NewWindow(eventDate, startTime, endTime)
		if err != nil {
			return nil, err
		}
		out = append(out, schedule.Assignment{
			WorkerID: types.ID(workerID),
			Window:   w,
			Status:   schedule.Status(status),
		})
	}
	return out, rows.Err()
}

func toStringPtr(id *types.ID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

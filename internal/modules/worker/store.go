// README: Worker store backed by PostgreSQL.
package worker

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"crewmatch/internal/types"
)

var ErrNotFound = errors.New("worker not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const candidateColumns = `
	id, name, staff_type, hourly_rate::text, rating, verified, available,
	latitude, longitude, completed_jobs, experience, skills, bio`

// FindByType returns the full candidate pool for one staff type.
func (s *Store) FindByType(ctx context.Context, st StaffType) ([]Candidate, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+candidateColumns+`
		FROM workers
		WHERE staff_type = $1
		ORDER BY id`, string(st),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns a single worker profile.
func (s *Store) Get(ctx context.Context, id types.ID) (Candidate, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+candidateColumns+`
		FROM workers
		WHERE id = $1`, string(id),
	)
	c, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Candidate{}, ErrNotFound
	}
	return c, err
}

// SetAvailability flips the worker's bookable flag.
func (s *Store) SetAvailability(ctx context.Context, id types.ID, available bool) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE workers SET available = $2 WHERE id = $1`,
		string(id), available,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanCandidate(row scannable) (Candidate, error) {
	var c Candidate
	var staffType string
	var rate string // numeric scans as text; parsed into a decimal below
	var lat, lng sql.NullFloat64
	var experience sql.NullString
	var bio sql.NullString

	err := row.Scan(
		&c.ID, &c.Name, &staffType, &rate, &c.Rating, &c.Verified, &c.Available,
		&lat, &lng, &c.CompletedJobs, &experience, &c.Skills, &bio,
	)
	if err != nil {
		return Candidate{}, err
	}

	st, err := ParseStaffType(staffType)
	if err != nil {
		return Candidate{}, err
	}
	c.StaffType = st
	c.HourlyRate, err = decimal.NewFromString(rate)
	if err != nil {
		return Candidate{}, err
	}
	if lat.Valid && lng.Valid {
		c.Position = &types.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	if experience.Valid {
		c.ExperienceYears = ParseExperienceYears(experience.String)
	}
	if bio.Valid {
		c.Bio = bio.String
	}
	return c, nil
}

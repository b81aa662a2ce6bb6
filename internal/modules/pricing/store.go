// README: Pricing store backed by PostgreSQL (platform fee setting).
package pricing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// GetFeeRate returns the persisted platform fee rate, if one has been set.
func (s *Store) GetFeeRate(ctx context.Context) (decimal.Decimal, bool, error) {
	var raw string
	err := s.db.QueryRow(ctx, `
		SELECT value::text FROM platform_settings WHERE key = 'fee_rate'`,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, err
	}
	return rate, true, nil
}

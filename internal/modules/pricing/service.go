// README: Pricing service computes billable hours and staffing quotes.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"crewmatch/internal/config"
	"crewmatch/internal/modules/schedule"
)

var sixty = decimal.NewFromInt(60)

type Service struct {
	store            *Store
	feeRate          decimal.Decimal
	minBillableHours decimal.Decimal
}

// NewService builds a pricing service from configured defaults. store may be
// nil; it only supplies a persisted fee-rate override via RefreshFeeRate.
func NewService(store *Store, cfg config.PricingConfig) *Service {
	return &Service{
		store:            store,
		feeRate:          decimal.NewFromFloat(cfg.PlatformFeeRate),
		minBillableHours: decimal.NewFromFloat(cfg.MinBillableHours),
	}
}

// RefreshFeeRate replaces the configured fee rate with the persisted platform
// setting, when one exists. Called once at startup.
func (s *Service) RefreshFeeRate(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	rate, ok, err := s.store.GetFeeRate(ctx)
	if err != nil {
		return err
	}
	if ok {
		s.feeRate = rate
	}
	return nil
}

// BillableHours converts a window's duration to hours and applies the
// minimum-duration floor. A one-hour booking still bills the floor.
func (s *Service) BillableHours(w schedule.TimeWindow) decimal.Decimal {
	hours := decimal.NewFromInt(w.DurationMinutes()).Div(sixty)
	if hours.LessThan(s.minBillableHours) {
		return s.minBillableHours
	}
	return hours
}

// LineCost is the price of one worker for the given billable hours.
func (s *Service) LineCost(hourlyRate, billableHours decimal.Decimal) decimal.Decimal {
	return hourlyRate.Mul(billableHours)
}

// Quote prices a set of staffing lines over one event window.
func (s *Service) Quote(w schedule.TimeWindow, lines []Line) Quote {
	hours := s.BillableHours(w)

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(s.LineCost(l.HourlyRate, hours).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	fee := subtotal.Mul(s.feeRate)

	return Quote{
		BillableHours: hours,
		Subtotal:      subtotal,
		PlatformFee:   fee,
		Total:         subtotal.Add(fee),
	}
}

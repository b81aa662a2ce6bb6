// README: Common money value object used across modules.
package types

import "github.com/shopspring/decimal"

// Money pairs a fixed-point amount with its currency code. Decimal arithmetic
// keeps repeated fee calculations free of binary-float drift.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

func USD(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: "USD"}
}

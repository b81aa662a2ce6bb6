// README: Quote model for staffing price calculation.
package pricing

import "github.com/shopspring/decimal"

// Line is one staffing requirement priced into a quote: an offered hourly
// rate and how many workers it covers.
type Line struct {
	HourlyRate decimal.Decimal
	Quantity   int
}

// Quote is the aggregate price for one staffing request. Total is always
// derived from Subtotal and PlatformFee, never stored independently.
type Quote struct {
	BillableHours decimal.Decimal
	Subtotal      decimal.Decimal
	PlatformFee   decimal.Decimal
	Total         decimal.Decimal
}

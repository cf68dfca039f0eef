package domain

import "time"

// EquityPoint is one point on the cumulative cash-flow curve of a trade
// collection. The curve is ordered by close time ascending; trades closing
// at the same instant keep their original statement order.
type EquityPoint struct {
	Time     time.Time // Close time of the trade that produced this point
	Equity   float64   // Cumulative cash flow up to and including this trade
	Drawdown float64   // Decline from the running peak at this point (always >= 0)
}

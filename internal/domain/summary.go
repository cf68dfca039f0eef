package domain

import "time"

// Summary aggregates the performance of one trade collection. Every field is
// derived by the metrics engine; none are mutated after construction.
//
// ProfitFactor is positive infinity for loss-free non-empty collections and
// exactly 0.0 for empty ones; the two cases are deliberately distinct.
type Summary struct {
	TotalTrades  int        `json:"total_trades"`
	GrossProfit  float64    `json:"gross_profit"`
	GrossLoss    float64    `json:"gross_loss"` // Positive magnitude of the summed losses
	NetProfit    float64    `json:"net_profit"`
	WinRate      float64    `json:"win_rate"` // Fraction in [0,1], not a percentage
	ProfitFactor float64    `json:"profit_factor"`
	AverageTrade float64    `json:"average_trade"`
	MaxDrawdown  float64    `json:"max_drawdown"` // Positive magnitude of the deepest peak-to-trough decline
	StartDate    *time.Time `json:"start_date"`   // Earliest open time; nil when no trades
	EndDate      *time.Time `json:"end_date"`     // Latest close time; nil when no trades
}

package domain

import "time"

// Common position type tags found in broker statements. Exports may carry
// other tags (deposits, balance corrections); the parser preserves whatever
// the statement says.
const (
	TypeBuy  = "buy"
	TypeSell = "sell"
)

// Trade represents one closed position from a broker statement export.
// Values are constructed once per input row and never mutated afterwards.
type Trade struct {
	Ticket     string    // Broker-assigned ticket identifier (opaque)
	OpenTime   time.Time // Timestamp when the position was opened
	Type       string    // Position direction tag (e.g. "buy", "sell"); not validated
	Volume     float64   // Traded volume in lots
	Symbol     string    // Instrument symbol (e.g. "EURUSD")
	OpenPrice  float64   // Price at which the position was opened
	StopLoss   *float64  // Stop-loss price; nil when the export left the field blank
	TakeProfit *float64  // Take-profit price; nil when the export left the field blank
	CloseTime  time.Time // Timestamp when the position was closed
	ClosePrice float64   // Price at which the position was closed
	Commission float64   // Broker commission (any sign)
	Swap       float64   // Overnight swap (any sign)
	Profit     float64   // Raw price profit (any sign)
}

// CashFlow returns the realized result of the trade including swap and
// commission. All aggregate metrics operate on cash flow, never on Profit
// alone.
func (t *Trade) CashFlow() float64 {
	return t.Profit + t.Swap + t.Commission
}

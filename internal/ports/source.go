package ports

import (
	"context"

	"tradeLogAnalyzer/internal/domain"
)

// TradeSource defines the interface for anything that can produce a list of
// closed trades, such as a statement file parser or the archive.
type TradeSource interface {
	// Trades returns all closed trades from the source in the order the
	// source provides them.
	Trades(ctx context.Context) ([]*domain.Trade, error)
}

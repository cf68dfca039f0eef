package ports

import (
	"context"

	"tradeLogAnalyzer/internal/domain"
)

// TradeArchive defines the interface for storing and retrieving imported
// trade history. The archive holds raw statement rows only; summaries are
// recomputed from the stored trades on every read and never persisted.
type TradeArchive interface {
	// ImportTrades stores a statement's trades as one batch and returns the
	// created batch record.
	ImportTrades(ctx context.Context, sourceFile string, trades []*domain.Trade) (*domain.Import, error)
	// ListImports retrieves all import batches, most recent first.
	ListImports(ctx context.Context) ([]*domain.Import, error)
	// FindByImport retrieves the trades of one batch in their original
	// statement order. Returns ErrImportNotFound when the batch is unknown.
	FindByImport(ctx context.Context, importID string) ([]*domain.Trade, error)
	// FindBySymbol retrieves archived trades for a symbol ordered by close
	// time ascending, up to limit (limit <= 0 means no limit).
	FindBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Trade, error)
	// FindAll retrieves every archived trade ordered by close time ascending.
	FindAll(ctx context.Context) ([]*domain.Trade, error)
	// DeleteImport removes a batch and its trades.
	DeleteImport(ctx context.Context, importID string) error
}

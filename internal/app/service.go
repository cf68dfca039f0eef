package app

import (
	"context"
	"fmt"

	"tradeLogAnalyzer/internal/analytics"
	"tradeLogAnalyzer/internal/domain"
	"tradeLogAnalyzer/internal/ports"
)

// AnalyzerService orchestrates analysis runs: it pulls trades from a source,
// derives the summary and, when an archive is configured, stores or re-reads
// raw statement rows. Summaries are always recomputed, never read back from
// storage.
type AnalyzerService struct {
	logger  ports.Logger
	archive ports.TradeArchive // optional; archive operations fail without it
}

// Analysis bundles everything one run derives from a trade collection.
type Analysis struct {
	Trades  []*domain.Trade
	Summary *domain.Summary
}

// NewAnalyzerService creates a new application service instance. The archive
// may be nil when only statement files are analyzed.
func NewAnalyzerService(logger ports.Logger, archive ports.TradeArchive) (*AnalyzerService, error) {
	if logger == nil {
		return nil, fmt.Errorf("missing required logger for AnalyzerService")
	}
	return &AnalyzerService{logger: logger, archive: archive}, nil
}

// Analyze loads every trade from the source and derives the summary.
func (s *AnalyzerService) Analyze(ctx context.Context, source ports.TradeSource) (*Analysis, error) {
	op := "Analyze"
	if source == nil {
		return nil, fmt.Errorf("%s: trade source is required", op)
	}

	// 1. Load all trades from the source
	trades, err := source.Trades(ctx)
	if err != nil {
		s.logger.Error(ctx, err, op+": loading trades failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// 2. Derive the summary over their cash flows
	summary := analytics.Summarize(trades)
	s.logger.Info(ctx, op+": analysis complete", map[string]interface{}{
		"trades":    summary.TotalTrades,
		"netProfit": summary.NetProfit,
	})
	return &Analysis{Trades: trades, Summary: summary}, nil
}

// Archive stores a statement's trades as one import batch.
func (s *AnalyzerService) Archive(ctx context.Context, sourceFile string, trades []*domain.Trade) (*domain.Import, error) {
	op := "Archive"
	if s.archive == nil {
		return nil, fmt.Errorf("%s: no trade archive configured", op)
	}

	imp, err := s.archive.ImportTrades(ctx, sourceFile, trades)
	if err != nil {
		s.logger.Error(ctx, err, op+": storing trades failed", map[string]interface{}{"source": sourceFile})
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.logger.Info(ctx, op+": trades archived", map[string]interface{}{
		"importID": imp.ID,
		"trades":   imp.TradeCount,
	})
	return imp, nil
}

// AnalyzeImport recomputes the summary over one archived batch.
func (s *AnalyzerService) AnalyzeImport(ctx context.Context, importID string) (*Analysis, error) {
	op := "AnalyzeImport"
	if s.archive == nil {
		return nil, fmt.Errorf("%s: no trade archive configured", op)
	}

	trades, err := s.archive.FindByImport(ctx, importID)
	if err != nil {
		s.logger.Error(ctx, err, op+": reading archived trades failed", map[string]interface{}{"importID": importID})
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Analysis{Trades: trades, Summary: analytics.Summarize(trades)}, nil
}

// AnalyzeSymbol recomputes the summary over the archived trades of one
// symbol. A limit <= 0 means no limit.
func (s *AnalyzerService) AnalyzeSymbol(ctx context.Context, symbol string, limit int) (*Analysis, error) {
	op := "AnalyzeSymbol"
	if s.archive == nil {
		return nil, fmt.Errorf("%s: no trade archive configured", op)
	}

	trades, err := s.archive.FindBySymbol(ctx, symbol, limit)
	if err != nil {
		s.logger.Error(ctx, err, op+": reading archived trades failed", map[string]interface{}{"symbol": symbol})
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Analysis{Trades: trades, Summary: analytics.Summarize(trades)}, nil
}

// AnalyzeArchive recomputes the summary over every archived trade.
func (s *AnalyzerService) AnalyzeArchive(ctx context.Context) (*Analysis, error) {
	op := "AnalyzeArchive"
	if s.archive == nil {
		return nil, fmt.Errorf("%s: no trade archive configured", op)
	}

	trades, err := s.archive.FindAll(ctx)
	if err != nil {
		s.logger.Error(ctx, err, op+": reading archived trades failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Analysis{Trades: trades, Summary: analytics.Summarize(trades)}, nil
}

// ListImports retrieves all archived batches, most recent first.
func (s *AnalyzerService) ListImports(ctx context.Context) ([]*domain.Import, error) {
	op := "ListImports"
	if s.archive == nil {
		return nil, fmt.Errorf("%s: no trade archive configured", op)
	}

	imports, err := s.archive.ListImports(ctx)
	if err != nil {
		s.logger.Error(ctx, err, op+": listing imports failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return imports, nil
}

// DeleteImport removes an archived batch and its trades.
func (s *AnalyzerService) DeleteImport(ctx context.Context, importID string) error {
	op := "DeleteImport"
	if s.archive == nil {
		return fmt.Errorf("%s: no trade archive configured", op)
	}

	if err := s.archive.DeleteImport(ctx, importID); err != nil {
		s.logger.Error(ctx, err, op+": deleting import failed", map[string]interface{}{"importID": importID})
		return fmt.Errorf("%s: %w", op, err)
	}
	s.logger.Info(ctx, op+": import deleted", map[string]interface{}{"importID": importID})
	return nil
}

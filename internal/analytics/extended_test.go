package analytics

import (
	"testing"
	"tradeLogAnalyzer/internal/domain"
)

func TestAnalyzeExtended(t *testing.T) {
	trades := []*domain.Trade{
		{Symbol: "EURUSD", Profit: 10},
		{Symbol: "EURUSD", Profit: 20},
		{Symbol: "GBPUSD", Profit: -5},
		{Symbol: "EURUSD", Profit: 30},
		{Symbol: "GBPUSD", Profit: -10},
		{Symbol: "GBPUSD", Profit: -21},
	}

	stats := AnalyzeExtended(trades)

	if stats.MaxConsecutiveWins != 2 {
		t.Errorf("Expected 2 max consecutive wins, got %d", stats.MaxConsecutiveWins)
	}
	if stats.MaxConsecutiveLosses != 2 {
		t.Errorf("Expected 2 max consecutive losses, got %d", stats.MaxConsecutiveLosses)
	}
	if stats.AverageWin != 20 {
		t.Errorf("Expected 20 average win, got %f", stats.AverageWin)
	}
	if stats.AverageLoss != -12 {
		t.Errorf("Expected -12 average loss, got %f", stats.AverageLoss)
	}
	if stats.LargestWin != 30 {
		t.Errorf("Expected 30 largest win, got %f", stats.LargestWin)
	}
	if stats.LargestLoss != -21 {
		t.Errorf("Expected -21 largest loss, got %f", stats.LargestLoss)
	}

	// Per-symbol breakdown is sorted by symbol.
	if len(stats.BySymbol) != 2 {
		t.Fatalf("Expected 2 symbols, got %d", len(stats.BySymbol))
	}
	if stats.BySymbol[0].Symbol != "EURUSD" || stats.BySymbol[0].Trades != 3 || stats.BySymbol[0].Net != 60 {
		t.Errorf("Expected EURUSD 3 trades net 60, got %+v", stats.BySymbol[0])
	}
	if stats.BySymbol[1].Symbol != "GBPUSD" || stats.BySymbol[1].Trades != 3 || stats.BySymbol[1].Net != -36 {
		t.Errorf("Expected GBPUSD 3 trades net -36, got %+v", stats.BySymbol[1])
	}
}

func TestAnalyzeExtendedBreakEvenResetsStreaks(t *testing.T) {
	trades := []*domain.Trade{
		{Symbol: "EURUSD", Profit: 10},
		{Symbol: "EURUSD", Profit: 10},
		{Symbol: "EURUSD"}, // break-even
		{Symbol: "EURUSD", Profit: 10},
	}

	stats := AnalyzeExtended(trades)

	if stats.MaxConsecutiveWins != 2 {
		t.Errorf("Expected break-even to cap the streak at 2, got %d", stats.MaxConsecutiveWins)
	}
	if stats.MaxConsecutiveLosses != 0 {
		t.Errorf("Expected 0 max consecutive losses, got %d", stats.MaxConsecutiveLosses)
	}
	// The break-even trade joins neither average.
	if stats.AverageWin != 10 {
		t.Errorf("Expected 10 average win, got %f", stats.AverageWin)
	}
	if stats.AverageLoss != 0 {
		t.Errorf("Expected 0 average loss, got %f", stats.AverageLoss)
	}
}

func TestAnalyzeExtendedEmpty(t *testing.T) {
	stats := AnalyzeExtended(nil)

	if stats.MaxConsecutiveWins != 0 || stats.MaxConsecutiveLosses != 0 {
		t.Errorf("Expected zero streaks, got %d and %d", stats.MaxConsecutiveWins, stats.MaxConsecutiveLosses)
	}
	if stats.AverageWin != 0 || stats.AverageLoss != 0 {
		t.Errorf("Expected zero averages, got %f and %f", stats.AverageWin, stats.AverageLoss)
	}
	if len(stats.BySymbol) != 0 {
		t.Errorf("Expected no symbols, got %d", len(stats.BySymbol))
	}
}

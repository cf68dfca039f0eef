package analytics

import (
	"sort"
	"tradeLogAnalyzer/internal/domain"
)

// ExtendedStats holds the opt-in statistics beyond the standard summary
type ExtendedStats struct {
	MaxConsecutiveWins   int
	MaxConsecutiveLosses int
	AverageWin           float64
	AverageLoss          float64 // negative, like the losses it averages
	LargestWin           float64
	LargestLoss          float64 // negative
	BySymbol             []SymbolStats
}

// SymbolStats aggregates the net cash flow for one symbol
type SymbolStats struct {
	Symbol string
	Trades int
	Net    float64
}

// AnalyzeExtended computes the extended statistics block from trade cash
// flows. Wins have positive cash flow, losses negative; a break-even trade
// resets both streaks and joins neither average.
func AnalyzeExtended(trades []*domain.Trade) *ExtendedStats {
	stats := &ExtendedStats{}
	perSymbol := make(map[string]*SymbolStats)

	var consecutiveWins, consecutiveLosses int
	var winningTrades, losingTrades int
	for _, trade := range trades {
		cf := trade.CashFlow()
		switch {
		case cf > 0:
			winningTrades++
			consecutiveWins++
			consecutiveLosses = 0
			stats.AverageWin = (stats.AverageWin*float64(winningTrades-1) + cf) / float64(winningTrades)
			if cf > stats.LargestWin {
				stats.LargestWin = cf
			}
		case cf < 0:
			losingTrades++
			consecutiveLosses++
			consecutiveWins = 0
			stats.AverageLoss = (stats.AverageLoss*float64(losingTrades-1) + cf) / float64(losingTrades)
			if cf < stats.LargestLoss {
				stats.LargestLoss = cf
			}
		default:
			consecutiveWins = 0
			consecutiveLosses = 0
		}
		if consecutiveWins > stats.MaxConsecutiveWins {
			stats.MaxConsecutiveWins = consecutiveWins
		}
		if consecutiveLosses > stats.MaxConsecutiveLosses {
			stats.MaxConsecutiveLosses = consecutiveLosses
		}

		s, ok := perSymbol[trade.Symbol]
		if !ok {
			s = &SymbolStats{Symbol: trade.Symbol}
			perSymbol[trade.Symbol] = s
		}
		s.Trades++
		s.Net += cf
	}

	stats.BySymbol = make([]SymbolStats, 0, len(perSymbol))
	for _, s := range perSymbol {
		stats.BySymbol = append(stats.BySymbol, *s)
	}
	sort.Slice(stats.BySymbol, func(i, j int) bool {
		return stats.BySymbol[i].Symbol < stats.BySymbol[j].Symbol
	})
	return stats
}

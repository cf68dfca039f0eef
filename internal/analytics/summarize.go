package analytics

import (
	"math"
	"tradeLogAnalyzer/internal/domain"
)

// Summarize computes the aggregate statistics for a trade collection. It is
// a pure function of its input: the slice is never modified and the input
// order does not affect any field. An empty collection yields the zero
// Summary (all numeric fields 0.0, no dates) rather than an error.
func Summarize(trades []*domain.Trade) *domain.Summary {
	summary := &domain.Summary{}
	if len(trades) == 0 {
		return summary
	}

	var grossProfit, grossLoss float64
	wins := 0
	start := trades[0].OpenTime
	end := trades[0].CloseTime
	for _, trade := range trades {
		cf := trade.CashFlow()
		// A break-even trade counts toward the total but to neither side.
		switch {
		case cf > 0:
			grossProfit += cf
			wins++
		case cf < 0:
			grossLoss += -cf
		}
		if trade.OpenTime.Before(start) {
			start = trade.OpenTime
		}
		if trade.CloseTime.After(end) {
			end = trade.CloseTime
		}
	}

	total := len(trades)
	summary.TotalTrades = total
	summary.GrossProfit = grossProfit
	summary.GrossLoss = grossLoss
	summary.NetProfit = grossProfit - grossLoss
	summary.WinRate = float64(wins) / float64(total)
	if grossLoss == 0 {
		// Zero loss over a non-empty collection reads as infinite, even when
		// the gross profit is also zero.
		summary.ProfitFactor = math.Inf(1)
	} else {
		summary.ProfitFactor = grossProfit / grossLoss
	}
	summary.AverageTrade = summary.NetProfit / float64(total)
	summary.MaxDrawdown = MaxDrawdown(EquityCurve(trades))
	summary.StartDate = &start
	summary.EndDate = &end
	return summary
}

package analytics

import (
	"math"
	"sort"
	"tradeLogAnalyzer/internal/domain"
)

// EquityCurve builds the cumulative cash flow curve for a trade collection.
// Trades are stable-sorted by close time on a copy, so the caller's slice is
// untouched and trades closing at the same instant keep their original
// relative order. Each point carries the drawdown from the running peak.
func EquityCurve(trades []*domain.Trade) []domain.EquityPoint {
	if len(trades) == 0 {
		return nil
	}

	// Sort a copy by close time; aggregate results must not depend on the
	// caller's ordering.
	sorted := make([]*domain.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CloseTime.Before(sorted[j].CloseTime)
	})

	curve := make([]domain.EquityPoint, 0, len(sorted))
	equity := 0.0
	peak := math.Inf(-1)
	for _, trade := range sorted {
		equity += trade.CashFlow()
		if equity > peak {
			peak = equity
		}
		curve = append(curve, domain.EquityPoint{
			Time:     trade.CloseTime,
			Equity:   equity,
			Drawdown: peak - equity,
		})
	}
	return curve
}

// MaxDrawdown returns the deepest peak-to-trough decline over an equity
// curve as a positive magnitude, zero for an empty curve. One linear pass
// with its own running peak, so it also works on curves built elsewhere.
func MaxDrawdown(curve []domain.EquityPoint) float64 {
	maxDD := 0.0
	peak := math.Inf(-1)
	for _, point := range curve {
		if point.Equity > peak {
			peak = point.Equity
		}
		if dd := peak - point.Equity; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

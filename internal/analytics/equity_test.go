package analytics

import (
	"math"
	"testing"
	"time"
	"tradeLogAnalyzer/internal/domain"
)

func TestEquityCurve(t *testing.T) {
	trades := fixtureTrades()
	// Feed the trades out of close-time order; the curve sorts a copy.
	shuffled := []*domain.Trade{trades[1], trades[2], trades[0]}

	curve := EquityCurve(shuffled)

	if len(curve) != 3 {
		t.Fatalf("Expected 3 equity points, got %d", len(curve))
	}
	wantEquity := []float64{39.5, 61.75, 20.95}
	for i, want := range wantEquity {
		if math.Abs(curve[i].Equity-want) > 1e-9 {
			t.Errorf("Expected equity %f at point %d, got %f", want, i, curve[i].Equity)
		}
	}
	// Points come out in close-time order regardless of input order.
	for i := 1; i < len(curve); i++ {
		if curve[i].Time.Before(curve[i-1].Time) {
			t.Errorf("Expected ascending close times, got %v before %v", curve[i].Time, curve[i-1].Time)
		}
	}
	if curve[0].Drawdown != 0 || curve[1].Drawdown != 0 {
		t.Errorf("Expected no drawdown at the first two points, got %f and %f", curve[0].Drawdown, curve[1].Drawdown)
	}
	if math.Abs(curve[2].Drawdown-40.8) > 1e-9 {
		t.Errorf("Expected 40.8 drawdown at the last point, got %f", curve[2].Drawdown)
	}

	// The caller's slice keeps its order.
	if shuffled[0].Ticket != "1002" || shuffled[2].Ticket != "1001" {
		t.Errorf("Expected input slice untouched, got %s/%s/%s", shuffled[0].Ticket, shuffled[1].Ticket, shuffled[2].Ticket)
	}
}

func TestEquityCurveStableTies(t *testing.T) {
	closeTime := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	trades := []*domain.Trade{
		{Ticket: "1", OpenTime: closeTime.Add(-time.Hour), CloseTime: closeTime, Profit: 10},
		{Ticket: "2", OpenTime: closeTime.Add(-time.Hour), CloseTime: closeTime, Profit: -5},
	}

	curve := EquityCurve(trades)
	if len(curve) != 2 {
		t.Fatalf("Expected 2 equity points, got %d", len(curve))
	}
	// Identical close times keep their relative input order.
	if curve[0].Equity != 10 || curve[1].Equity != 5 {
		t.Errorf("Expected equities 10 then 5 for tied close times, got %f then %f", curve[0].Equity, curve[1].Equity)
	}
}

func TestEquityCurveAllNegative(t *testing.T) {
	trades := []*domain.Trade{
		{OpenTime: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), CloseTime: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), Profit: -10},
		{OpenTime: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), CloseTime: time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), Profit: -5},
	}

	curve := EquityCurve(trades)
	// The first point sets the peak, so its drawdown is zero even below zero.
	if curve[0].Drawdown != 0 {
		t.Errorf("Expected 0 drawdown at the first point, got %f", curve[0].Drawdown)
	}
	if MaxDrawdown(curve) != 5 {
		t.Errorf("Expected 5 max drawdown, got %f", MaxDrawdown(curve))
	}
}

func TestEquityCurveEmpty(t *testing.T) {
	if curve := EquityCurve(nil); len(curve) != 0 {
		t.Errorf("Expected empty curve, got %d points", len(curve))
	}
}

func TestMaxDrawdown(t *testing.T) {
	base := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	curve := []domain.EquityPoint{
		{Time: base, Equity: 10},
		{Time: base.Add(1 * time.Hour), Equity: 5},
		{Time: base.Add(2 * time.Hour), Equity: 12},
		{Time: base.Add(3 * time.Hour), Equity: 3},
	}

	// Deepest decline is 12 down to 3, not the earlier 10 down to 5.
	if dd := MaxDrawdown(curve); dd != 9 {
		t.Errorf("Expected 9 max drawdown, got %f", dd)
	}
}

func TestMaxDrawdownMonotonicCurve(t *testing.T) {
	base := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	curve := []domain.EquityPoint{
		{Time: base, Equity: 1},
		{Time: base.Add(1 * time.Hour), Equity: 1},
		{Time: base.Add(2 * time.Hour), Equity: 4},
	}

	if dd := MaxDrawdown(curve); dd != 0 {
		t.Errorf("Expected 0 max drawdown for a non-decreasing curve, got %f", dd)
	}
}

func TestMaxDrawdownEmpty(t *testing.T) {
	if dd := MaxDrawdown(nil); dd != 0 {
		t.Errorf("Expected 0 max drawdown for an empty curve, got %f", dd)
	}
}

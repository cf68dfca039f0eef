package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"tradeLogAnalyzer/internal/analytics"
	"tradeLogAnalyzer/internal/domain"
)

// isoLayout renders statement timestamps the way they arrive: naive
// ISO-8601 with no zone.
const isoLayout = "2006-01-02T15:04:05"

// FormatText renders the canonical summary block. Gross loss keeps its
// literal leading minus (a zero loss prints "-0.00") and the Period line is
// present only when the collection carried trades.
func FormatText(s *domain.Summary) string {
	lines := []string{
		fmt.Sprintf("Total trades : %d", s.TotalTrades),
		fmt.Sprintf("Gross profit : %.2f", s.GrossProfit),
		fmt.Sprintf("Gross loss   : -%.2f", s.GrossLoss),
		fmt.Sprintf("Net profit   : %.2f", s.NetProfit),
		fmt.Sprintf("Win rate     : %.2f%%", s.WinRate*100),
		fmt.Sprintf("Profit factor: %s", formatFactor(s.ProfitFactor)),
		fmt.Sprintf("Average/trade: %.2f", s.AverageTrade),
		fmt.Sprintf("Max drawdown : %.2f", s.MaxDrawdown),
	}
	if s.StartDate != nil && s.EndDate != nil {
		lines = append(lines, fmt.Sprintf("Period       : %s -> %s",
			s.StartDate.Format(isoLayout), s.EndDate.Format(isoLayout)))
	}
	return strings.Join(lines, "\n")
}

// formatFactor special-cases the infinite profit factor: Go would print
// "+Inf" where the report reads "inf".
func formatFactor(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", f)
}

// jsonSummary mirrors domain.Summary for serialization: dates become naive
// ISO-8601 strings or null, and the infinite profit factor becomes the
// string "inf" since encoding/json cannot represent it as a number.
type jsonSummary struct {
	TotalTrades  int         `json:"total_trades"`
	GrossProfit  float64     `json:"gross_profit"`
	GrossLoss    float64     `json:"gross_loss"`
	NetProfit    float64     `json:"net_profit"`
	WinRate      float64     `json:"win_rate"`
	ProfitFactor interface{} `json:"profit_factor"`
	AverageTrade float64     `json:"average_trade"`
	MaxDrawdown  float64     `json:"max_drawdown"`
	StartDate    *string     `json:"start_date"`
	EndDate      *string     `json:"end_date"`
}

type jsonSymbolStats struct {
	Symbol string  `json:"symbol"`
	Trades int     `json:"trades"`
	Net    float64 `json:"net"`
}

type jsonExtended struct {
	MaxConsecutiveWins   int               `json:"max_consecutive_wins"`
	MaxConsecutiveLosses int               `json:"max_consecutive_losses"`
	AverageWin           float64           `json:"average_win"`
	AverageLoss          float64           `json:"average_loss"`
	LargestWin           float64           `json:"largest_win"`
	LargestLoss          float64           `json:"largest_loss"`
	BySymbol             []jsonSymbolStats `json:"by_symbol"`
}

type jsonReport struct {
	jsonSummary
	Extended *jsonExtended `json:"extended,omitempty"`
}

// FormatJSON renders the summary as two-space-indented JSON, with the
// extended block nested under "extended" when stats is non-nil.
func FormatJSON(s *domain.Summary, stats *analytics.ExtendedStats) (string, error) {
	out := jsonReport{
		jsonSummary: jsonSummary{
			TotalTrades:  s.TotalTrades,
			GrossProfit:  s.GrossProfit,
			GrossLoss:    s.GrossLoss,
			NetProfit:    s.NetProfit,
			WinRate:      s.WinRate,
			ProfitFactor: s.ProfitFactor,
			AverageTrade: s.AverageTrade,
			MaxDrawdown:  s.MaxDrawdown,
		},
	}
	if math.IsInf(s.ProfitFactor, 1) {
		out.ProfitFactor = "inf"
	}
	if s.StartDate != nil {
		v := s.StartDate.Format(isoLayout)
		out.StartDate = &v
	}
	if s.EndDate != nil {
		v := s.EndDate.Format(isoLayout)
		out.EndDate = &v
	}
	if stats != nil {
		ext := &jsonExtended{
			MaxConsecutiveWins:   stats.MaxConsecutiveWins,
			MaxConsecutiveLosses: stats.MaxConsecutiveLosses,
			AverageWin:           stats.AverageWin,
			AverageLoss:          stats.AverageLoss,
			LargestWin:           stats.LargestWin,
			LargestLoss:          stats.LargestLoss,
			BySymbol:             make([]jsonSymbolStats, 0, len(stats.BySymbol)),
		}
		for _, sym := range stats.BySymbol {
			ext.BySymbol = append(ext.BySymbol, jsonSymbolStats{Symbol: sym.Symbol, Trades: sym.Trades, Net: sym.Net})
		}
		out.Extended = ext
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	return string(b), nil
}

// FormatExtended renders the opt-in statistics block, ending with a
// per-symbol breakdown table when any symbols were seen.
func FormatExtended(stats *analytics.ExtendedStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Max win streak : %d\n", stats.MaxConsecutiveWins)
	fmt.Fprintf(&sb, "Max loss streak: %d\n", stats.MaxConsecutiveLosses)
	fmt.Fprintf(&sb, "Average win    : %.2f\n", stats.AverageWin)
	fmt.Fprintf(&sb, "Average loss   : %.2f\n", stats.AverageLoss)
	fmt.Fprintf(&sb, "Largest win    : %.2f\n", stats.LargestWin)
	fmt.Fprintf(&sb, "Largest loss   : %.2f\n", stats.LargestLoss)
	if len(stats.BySymbol) > 0 {
		sb.WriteString("\n")
		w := tabwriter.NewWriter(&sb, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
		fmt.Fprintln(w, "Symbol\tTrades\tNet\t")
		for _, s := range stats.BySymbol {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t\n", s.Symbol, s.Trades, s.Net)
		}
		w.Flush()
	}
	return sb.String()
}

// ScanRow is one line of the batch comparison table.
type ScanRow struct {
	File    string
	Summary *domain.Summary
}

// FormatScanTable renders one aligned row per analyzed statement so runs of
// different logs can be compared side by side.
func FormatScanTable(rows []ScanRow) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(w, "File\tTrades\tWin Rate\tProfit Factor\tNet Profit\tMax Drawdown\t")
	for _, row := range rows {
		s := row.Summary
		fmt.Fprintf(w, "%s\t%d\t%.2f%%\t%s\t%.2f\t%.2f\t\n",
			row.File, s.TotalTrades, s.WinRate*100, formatFactor(s.ProfitFactor), s.NetProfit, s.MaxDrawdown)
	}
	w.Flush()
	return sb.String()
}

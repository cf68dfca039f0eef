package utils

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
	"tradeLogAnalyzer/internal/domain"
)

func WriteEquityCurveToCSV(points []domain.EquityPoint, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	// Write header
	writer.Write([]string{"time", "equity", "drawdown"})

	for _, p := range points {
		writer.Write([]string{
			p.Time.Format(time.RFC3339),
			strconv.FormatFloat(p.Equity, 'f', -1, 64),
			strconv.FormatFloat(p.Drawdown, 'f', -1, 64),
		})
	}
	writer.Flush()
	return writer.Error()
}

func WriteTradesToCSV(trades []*domain.Trade, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	// Write header
	writer.Write([]string{
		"ticket", "open_time", "type", "volume", "symbol", "open_price",
		"stop_loss", "take_profit", "close_time", "close_price",
		"commission", "swap", "profit", "cash_flow",
	})

	for _, t := range trades {
		writer.Write([]string{
			t.Ticket,
			t.OpenTime.Format(time.RFC3339),
			t.Type,
			strconv.FormatFloat(t.Volume, 'f', -1, 64),
			t.Symbol,
			strconv.FormatFloat(t.OpenPrice, 'f', -1, 64),
			formatOptional(t.StopLoss),
			formatOptional(t.TakeProfit),
			t.CloseTime.Format(time.RFC3339),
			strconv.FormatFloat(t.ClosePrice, 'f', -1, 64),
			strconv.FormatFloat(t.Commission, 'f', -1, 64),
			strconv.FormatFloat(t.Swap, 'f', -1, 64),
			strconv.FormatFloat(t.Profit, 'f', -1, 64),
			strconv.FormatFloat(t.CashFlow(), 'f', -1, 64),
		})
	}
	writer.Flush()
	return writer.Error()
}

// formatOptional renders an unset price level as an empty cell.
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

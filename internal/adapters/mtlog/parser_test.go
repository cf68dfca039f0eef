package mtlog

import (
	"testing"
	"time"

	"tradeLogAnalyzer/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullRow returns a complete statement row; tests mutate copies of it.
func fullRow() map[string]string {
	return map[string]string{
		"Ticket":      "1001",
		"Open Time":   "2024.01.02 09:00:00",
		"Type":        "buy",
		"Volume":      "0.10",
		"Symbol":      "EURUSD",
		"Price":       "1.0950",
		"SL":          "1.0900",
		"TP":          "1.1000",
		"Close Time":  "2024.01.02 15:30:00",
		"Close Price": "1.0990",
		"Commission":  "-2.00",
		"Swap":        "-0.50",
		"Profit":      "42.00",
	}
}

func TestParseRow(t *testing.T) {
	trade, err := NewParser().ParseRow(fullRow())
	require.NoError(t, err)

	assert.Equal(t, "1001", trade.Ticket)
	assert.True(t, trade.OpenTime.Equal(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, "buy", trade.Type)
	assert.Equal(t, 0.10, trade.Volume)
	assert.Equal(t, "EURUSD", trade.Symbol)
	assert.Equal(t, 1.0950, trade.OpenPrice)
	require.NotNil(t, trade.StopLoss)
	assert.Equal(t, 1.0900, *trade.StopLoss)
	require.NotNil(t, trade.TakeProfit)
	assert.Equal(t, 1.1000, *trade.TakeProfit)
	assert.True(t, trade.CloseTime.Equal(time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC)))
	assert.Equal(t, 1.0990, trade.ClosePrice)
	assert.Equal(t, -2.00, trade.Commission)
	assert.Equal(t, -0.50, trade.Swap)
	assert.Equal(t, 42.00, trade.Profit)
	assert.InDelta(t, 39.5, trade.CashFlow(), 1e-9)
}

func TestParseRow_TimestampFormats(t *testing.T) {
	want := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value string
	}{
		{name: "dotted with seconds", value: "2024.01.02 09:00:00"},
		{name: "dotted without seconds", value: "2024.01.02 09:00"},
		{name: "dashed with seconds", value: "2024-01-02 09:00:00"},
		{name: "dashed without seconds", value: "2024-01-02 09:00"},
		{name: "iso 8601", value: "2024-01-02T09:00:00"},
		{name: "surrounding whitespace", value: "  2024.01.02 09:00:00  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := fullRow()
			row["Open Time"] = tt.value
			trade, err := NewParser().ParseRow(row)
			require.NoError(t, err)
			// Every accepted format must land on the identical instant.
			assert.True(t, trade.OpenTime.Equal(want), "got %v", trade.OpenTime)
		})
	}
}

func TestParseRow_OptionalDefaults(t *testing.T) {
	row := fullRow()
	row["SL"] = ""
	row["Commission"] = ""
	delete(row, "TP")
	delete(row, "Volume")

	trade, err := NewParser().ParseRow(row)
	require.NoError(t, err)

	// Blank stop/target stays unset; it must not collapse to zero.
	assert.Nil(t, trade.StopLoss)
	assert.Nil(t, trade.TakeProfit)
	// Blank or absent money columns default to zero.
	assert.Equal(t, 0.0, trade.Commission)
	assert.Equal(t, 0.0, trade.Volume)
}

func TestParseRow_TypeTagPreserved(t *testing.T) {
	row := fullRow()
	row["Type"] = "Balance"

	trade, err := NewParser().ParseRow(row)
	require.NoError(t, err)
	// Position type is an opaque tag; nothing normalizes or rejects it.
	assert.Equal(t, "Balance", trade.Type)
}

func TestParseRow_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantErr error
	}{
		{
			name:    "open time column missing",
			mutate:  func(row map[string]string) { delete(row, "Open Time") },
			wantErr: ports.ErrMissingField,
		},
		{
			name:    "close time column missing",
			mutate:  func(row map[string]string) { delete(row, "Close Time") },
			wantErr: ports.ErrMissingField,
		},
		{
			name:    "blank close time is a format error, not a missing column",
			mutate:  func(row map[string]string) { row["Close Time"] = "" },
			wantErr: ports.ErrTimestampFormat,
		},
		{
			name:    "unknown timestamp format",
			mutate:  func(row map[string]string) { row["Open Time"] = "02/01/2024 09:00" },
			wantErr: ports.ErrTimestampFormat,
		},
		{
			name:    "non-numeric volume",
			mutate:  func(row map[string]string) { row["Volume"] = "lots" },
			wantErr: ports.ErrNumericFormat,
		},
		{
			name:    "non-numeric stop loss",
			mutate:  func(row map[string]string) { row["SL"] = "none" },
			wantErr: ports.ErrNumericFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := fullRow()
			tt.mutate(row)

			trade, err := NewParser().ParseRow(row)
			assert.Nil(t, trade)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseRow_ExtraLayouts(t *testing.T) {
	row := fullRow()
	row["Open Time"] = "02/01/2024 09:00"
	row["Close Time"] = "02/01/2024 15:30"

	_, err := NewParser().ParseRow(row)
	require.Error(t, err)

	trade, err := NewParser("02/01/2006 15:04").ParseRow(row)
	require.NoError(t, err)
	assert.True(t, trade.OpenTime.Equal(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)))
	assert.True(t, trade.CloseTime.Equal(time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC)))
}

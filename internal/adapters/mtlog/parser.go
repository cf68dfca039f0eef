package mtlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tradeLogAnalyzer/internal/domain"
	"tradeLogAnalyzer/internal/ports"
)

// Canonical statement columns. Exports label the open price column plainly
// "Price"; everything else matches the field it feeds.
const (
	colTicket     = "Ticket"
	colOpenTime   = "Open Time"
	colType       = "Type"
	colVolume     = "Volume"
	colSymbol     = "Symbol"
	colOpenPrice  = "Price"
	colStopLoss   = "SL"
	colTakeProfit = "TP"
	colCloseTime  = "Close Time"
	colClosePrice = "Close Price"
	colCommission = "Commission"
	colSwap       = "Swap"
	colProfit     = "Profit"
)

var canonicalColumns = []string{
	colTicket, colOpenTime, colType, colVolume, colSymbol, colOpenPrice,
	colStopLoss, colTakeProfit, colCloseTime, colClosePrice, colCommission,
	colSwap, colProfit,
}

// timestampLayouts is the ordered fallback chain for statement timestamps.
// Broker exports vary in locale and precision; the first layout that parses
// the whole trimmed value wins.
var timestampLayouts = []string{
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// isoLayouts is the last-resort ISO-8601 chain tried after timestampLayouts.
var isoLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC3339,
}

// Parser converts one header-keyed statement row into a domain.Trade.
type Parser struct {
	extraLayouts []string
}

// NewParser creates a row parser. Extra layouts are tried before the
// built-in timestamp chain, so a report profile can teach the parser an
// uncommon export format without touching the defaults.
func NewParser(extraLayouts ...string) *Parser {
	return &Parser{extraLayouts: extraLayouts}
}

// ParseRow builds a Trade from one statement row. Open Time and Close Time
// must be present in the row; every other column falls back to its
// documented default when absent or blank. The row is not modified.
func (p *Parser) ParseRow(row map[string]string) (*domain.Trade, error) {
	openRaw, ok := row[colOpenTime]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", colOpenTime, ports.ErrMissingField)
	}
	openTime, err := p.parseTimestamp(openRaw)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colOpenTime, err)
	}
	volume, err := parseFloatDefault(row[colVolume])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colVolume, err)
	}
	openPrice, err := parseFloatDefault(row[colOpenPrice])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colOpenPrice, err)
	}
	stopLoss, err := parseOptionalFloat(row[colStopLoss])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colStopLoss, err)
	}
	takeProfit, err := parseOptionalFloat(row[colTakeProfit])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colTakeProfit, err)
	}
	closeRaw, ok := row[colCloseTime]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", colCloseTime, ports.ErrMissingField)
	}
	closeTime, err := p.parseTimestamp(closeRaw)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colCloseTime, err)
	}
	closePrice, err := parseFloatDefault(row[colClosePrice])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colClosePrice, err)
	}
	commission, err := parseFloatDefault(row[colCommission])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colCommission, err)
	}
	swap, err := parseFloatDefault(row[colSwap])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colSwap, err)
	}
	profit, err := parseFloatDefault(row[colProfit])
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", colProfit, err)
	}

	return &domain.Trade{
		Ticket:     strings.TrimSpace(row[colTicket]),
		OpenTime:   openTime,
		Type:       strings.TrimSpace(row[colType]),
		Volume:     volume,
		Symbol:     strings.TrimSpace(row[colSymbol]),
		OpenPrice:  openPrice,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
		CloseTime:  closeTime,
		ClosePrice: closePrice,
		Commission: commission,
		Swap:       swap,
		Profit:     profit,
	}, nil
}

// parseTimestamp parses a statement timestamp, trying profile layouts, the
// built-in broker chain, then ISO-8601.
func (p *Parser) parseTimestamp(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range p.extraLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, nil
		}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, nil
		}
	}
	for _, layout := range isoLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", value, ports.ErrTimestampFormat)
}

// parseOptionalFloat maps a blank value to nil, keeping "absent" distinct
// from an explicit zero.
func parseOptionalFloat(value string) (*float64, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", value, ports.ErrNumericFormat)
	}
	return &f, nil
}

// parseFloatDefault is parseOptionalFloat with blank coalesced to zero.
func parseFloatDefault(value string) (float64, error) {
	f, err := parseOptionalFloat(value)
	if err != nil || f == nil {
		return 0, err
	}
	return *f, nil
}

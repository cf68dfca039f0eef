package mtlog

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tradeLogAnalyzer/internal/domain"
	"tradeLogAnalyzer/internal/ports"
)

// sniffSampleSize matches the leading sample used for delimiter detection.
const sniffSampleSize = 2048

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Config holds the dependencies and options for a statement Loader.
type Config struct {
	Path      string       // statement export to read
	Delimiter rune         // 0 sniffs among ',' and ';'
	Profile   *Profile     // optional header aliases, layouts, pinned delimiter
	Logger    ports.Logger // required
}

// Loader reads a delimited broker statement and produces the trades it
// records, in file order. It implements ports.TradeSource.
type Loader struct {
	path      string
	delimiter rune
	profile   *Profile
	parser    *Parser
	logger    ports.Logger
}

// New creates a statement loader. An explicit Config.Delimiter wins over a
// profile-pinned one; with neither set the delimiter is sniffed per file.
func New(cfg Config) (*Loader, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required for mtlog loader")
	}
	delim := cfg.Delimiter
	if delim == 0 && cfg.Profile != nil {
		delim = cfg.Profile.delimiterRune()
	}
	if delim != 0 && delim != ',' && delim != ';' {
		return nil, fmt.Errorf("unsupported delimiter %q: must be ',' or ';'", delim)
	}
	var layouts []string
	if cfg.Profile != nil {
		layouts = cfg.Profile.TimeLayouts
	}
	return &Loader{
		path:      cfg.Path,
		delimiter: delim,
		profile:   cfg.Profile,
		parser:    NewParser(layouts...),
		logger:    cfg.Logger,
	}, nil
}

// Trades opens the configured statement file and loads every trade from it.
func (l *Loader) Trades(ctx context.Context) ([]*domain.Trade, error) {
	op := "Trades"
	if l.path == "" {
		return nil, fmt.Errorf("%s: no statement path configured", op)
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	trades, err := l.Load(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, l.path, err)
	}
	l.logger.Info(ctx, op+": statement loaded", map[string]interface{}{
		"path":   l.path,
		"trades": len(trades),
	})
	return trades, nil
}

// Load reads one statement from r. The reader may start with a UTF-8 BOM.
// A malformed row aborts the whole load with its 1-based data row number
// attached; rows are never silently skipped.
func (l *Loader) Load(ctx context.Context, r io.Reader) ([]*domain.Trade, error) {
	br := bufio.NewReaderSize(r, sniffSampleSize)
	if err := stripBOM(br); err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	delim := l.delimiter
	if delim == 0 {
		sample, _ := br.Peek(sniffSampleSize)
		var err error
		delim, err = sniffDelimiter(sample)
		if err != nil {
			return nil, err
		}
		l.logger.Debug(ctx, "Load: delimiter sniffed", map[string]interface{}{
			"delimiter": string(delim),
		})
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1 // rows shorter than the header fall back to column defaults

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("statement has no header row")
		}
		return nil, fmt.Errorf("read statement header: %w", err)
	}
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if l.profile != nil {
			if canonical, ok := l.profile.Columns[name]; ok {
				name = canonical
			}
		}
		columns[i] = name
	}

	var trades []*domain.Trade
	rowNum := 0
	for {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("load aborted: %w", ports.ErrTimeout)
			}
			return nil, fmt.Errorf("load aborted: %w", ports.ErrContextCanceled)
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+1, err)
		}
		rowNum++
		row := make(map[string]string, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		trade, err := l.parser.ParseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

func stripBOM(br *bufio.Reader) error {
	prefix, err := br.Peek(len(utf8BOM))
	if err != nil {
		if err == io.EOF {
			return nil // shorter than a BOM, nothing to strip
		}
		return err
	}
	if bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return err
		}
	}
	return nil
}

// sniffDelimiter picks the field delimiter by counting candidate occurrences
// outside quotes on the first sample line. Comma wins ties, matching the
// candidate order comma-then-semicolon.
func sniffDelimiter(sample []byte) (rune, error) {
	line := string(sample)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	commas, semis := 0, 0
	inQuotes := false
	for _, r := range line {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				commas++
			}
		case ';':
			if !inQuotes {
				semis++
			}
		}
	}
	switch {
	case commas == 0 && semis == 0:
		return 0, fmt.Errorf("no plausible delimiter in leading sample: %w", ports.ErrDelimiterDetection)
	case semis > commas:
		return ';', nil
	default:
		return ',', nil
	}
}

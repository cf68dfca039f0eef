package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeLogAnalyzer/internal/domain"
	"tradeLogAnalyzer/internal/ports"
)

// Mock implementations
type mockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.debugMsgs = append(m.debugMsgs, msg)
}

func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.infoMsgs = append(m.infoMsgs, msg)
}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.warnMsgs = append(m.warnMsgs, msg)
}

func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	m.errorMsgs = append(m.errorMsgs, msg)
}

type mockSource struct {
	trades []*domain.Trade
	err    error
}

func (m *mockSource) Trades(ctx context.Context) ([]*domain.Trade, error) {
	return m.trades, m.err
}

type mockArchive struct {
	imports       []*domain.Import
	trades        []*domain.Trade
	importErr     error
	findErr       error
	deleteErr     error
	deletedIDs    []string
	importedFiles []string
}

func (m *mockArchive) ImportTrades(ctx context.Context, sourceFile string, trades []*domain.Trade) (*domain.Import, error) {
	if m.importErr != nil {
		return nil, m.importErr
	}
	m.importedFiles = append(m.importedFiles, sourceFile)
	return &domain.Import{ID: "import-1", SourceFile: sourceFile, ImportedAt: time.Now(), TradeCount: len(trades)}, nil
}

func (m *mockArchive) ListImports(ctx context.Context) ([]*domain.Import, error) {
	return m.imports, m.findErr
}

func (m *mockArchive) FindByImport(ctx context.Context, importID string) ([]*domain.Trade, error) {
	return m.trades, m.findErr
}

func (m *mockArchive) FindBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Trade, error) {
	return m.trades, m.findErr
}

func (m *mockArchive) FindAll(ctx context.Context) ([]*domain.Trade, error) {
	return m.trades, m.findErr
}

func (m *mockArchive) DeleteImport(ctx context.Context, importID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, importID)
	return nil
}

func sampleTrades() []*domain.Trade {
	return []*domain.Trade{
		{
			Ticket:    "1001",
			Symbol:    "EURUSD",
			OpenTime:  time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			CloseTime: time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC),
			Profit:    39.5,
		},
		{
			Ticket:    "1002",
			Symbol:    "GBPUSD",
			OpenTime:  time.Date(2024, 1, 3, 10, 15, 0, 0, time.UTC),
			CloseTime: time.Date(2024, 1, 3, 17, 0, 0, 0, time.UTC),
			Profit:    -15.0,
		},
	}
}

func TestNewAnalyzerService(t *testing.T) {
	_, err := NewAnalyzerService(nil, nil)
	assert.Error(t, err)

	svc, err := NewAnalyzerService(&mockLogger{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name       string
		source     ports.TradeSource
		wantErr    bool
		wantTrades int
		wantNet    float64
	}{
		{
			name:       "summarizes loaded trades",
			source:     &mockSource{trades: sampleTrades()},
			wantTrades: 2,
			wantNet:    24.5,
		},
		{
			name:       "empty source",
			source:     &mockSource{},
			wantTrades: 0,
			wantNet:    0,
		},
		{
			name:    "source failure propagates",
			source:  &mockSource{err: errors.New("read failed")},
			wantErr: true,
		},
		{
			name:    "nil source",
			source:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAnalyzerService(&mockLogger{}, nil)
			require.NoError(t, err)

			analysis, err := svc.Analyze(context.Background(), tt.source)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, analysis)
			assert.Equal(t, tt.wantTrades, analysis.Summary.TotalTrades)
			assert.InDelta(t, tt.wantNet, analysis.Summary.NetProfit, 1e-9)
			assert.Len(t, analysis.Trades, tt.wantTrades)
		})
	}
}

func TestArchive(t *testing.T) {
	archive := &mockArchive{}
	svc, err := NewAnalyzerService(&mockLogger{}, archive)
	require.NoError(t, err)

	imp, err := svc.Archive(context.Background(), "statement.csv", sampleTrades())
	require.NoError(t, err)
	assert.Equal(t, 2, imp.TradeCount)
	assert.Equal(t, []string{"statement.csv"}, archive.importedFiles)
}

func TestArchiveWithoutArchiveConfigured(t *testing.T) {
	svc, err := NewAnalyzerService(&mockLogger{}, nil)
	require.NoError(t, err)

	_, err = svc.Archive(context.Background(), "statement.csv", sampleTrades())
	assert.Error(t, err)

	_, err = svc.AnalyzeImport(context.Background(), "import-1")
	assert.Error(t, err)

	_, err = svc.AnalyzeSymbol(context.Background(), "EURUSD", 0)
	assert.Error(t, err)

	_, err = svc.AnalyzeArchive(context.Background())
	assert.Error(t, err)

	_, err = svc.ListImports(context.Background())
	assert.Error(t, err)

	err = svc.DeleteImport(context.Background(), "import-1")
	assert.Error(t, err)
}

func TestAnalyzeImport(t *testing.T) {
	archive := &mockArchive{trades: sampleTrades()}
	svc, err := NewAnalyzerService(&mockLogger{}, archive)
	require.NoError(t, err)

	analysis, err := svc.AnalyzeImport(context.Background(), "import-1")
	require.NoError(t, err)
	assert.Equal(t, 2, analysis.Summary.TotalTrades)
	assert.InDelta(t, 24.5, analysis.Summary.NetProfit, 1e-9)
}

func TestAnalyzeImportNotFound(t *testing.T) {
	archive := &mockArchive{findErr: ports.ErrImportNotFound}
	logger := &mockLogger{}
	svc, err := NewAnalyzerService(logger, archive)
	require.NoError(t, err)

	_, err = svc.AnalyzeImport(context.Background(), "no-such-import")
	assert.ErrorIs(t, err, ports.ErrImportNotFound)
	assert.NotEmpty(t, logger.errorMsgs)
}

func TestAnalyzeSymbol(t *testing.T) {
	archive := &mockArchive{trades: sampleTrades()[:1]}
	svc, err := NewAnalyzerService(&mockLogger{}, archive)
	require.NoError(t, err)

	analysis, err := svc.AnalyzeSymbol(context.Background(), "EURUSD", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, analysis.Summary.TotalTrades)
	assert.InDelta(t, 39.5, analysis.Summary.NetProfit, 1e-9)
}

func TestAnalyzeArchive(t *testing.T) {
	archive := &mockArchive{trades: sampleTrades()}
	svc, err := NewAnalyzerService(&mockLogger{}, archive)
	require.NoError(t, err)

	analysis, err := svc.AnalyzeArchive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, analysis.Summary.TotalTrades)
}

func TestDeleteImport(t *testing.T) {
	archive := &mockArchive{}
	svc, err := NewAnalyzerService(&mockLogger{}, archive)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteImport(context.Background(), "import-1"))
	assert.Equal(t, []string{"import-1"}, archive.deletedIDs)
}

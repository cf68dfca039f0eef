package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradeLogAnalyzer/internal/domain"
	"tradeLogAnalyzer/internal/ports"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.TradeArchive interface using SQLite. Only
// raw statement rows are stored; summaries are recomputed from them on every
// read and never persisted.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite archive.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite archive instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite archive")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/trade_archive.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite archive initialization failed")
		return nil, err
	}

	// Open database connection
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000") // WAL mode for better concurrency
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite archive initialization failed")
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite archive initialization failed")
		return nil, err
	}

	// Set connection pool settings (important for SQLite)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite archive connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize archive schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite archive initialization failed")
		return nil, err
	}

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS imports (
		id TEXT PRIMARY KEY,
		source_file TEXT NOT NULL,
		imported_at TIMESTAMP NOT NULL,
		trade_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		import_id TEXT NOT NULL,
		seq INTEGER NOT NULL, -- statement order within the import
		ticket TEXT NOT NULL,
		open_time TIMESTAMP NOT NULL,
		type TEXT NOT NULL,
		volume REAL NOT NULL,
		symbol TEXT NOT NULL,
		open_price REAL NOT NULL,
		stop_loss REAL DEFAULT NULL,
		take_profit REAL DEFAULT NULL,
		close_time TIMESTAMP NOT NULL,
		close_price REAL NOT NULL,
		commission REAL NOT NULL,
		swap REAL NOT NULL,
		profit REAL NOT NULL
	);
	-- Add indexes for common lookups
	CREATE INDEX IF NOT EXISTS idx_trades_import_seq ON trades (import_id, seq);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol_close_time ON trades (symbol, close_time);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite archive connection")
		return r.db.Close()
	}
	return nil
}

// --- TradeArchive Implementation ---

// ImportTrades stores a statement's trades as one batch and returns the
// created batch record. The whole batch is written in one transaction so a
// failed insert never leaves a partial import behind.
func (r *Repository) ImportTrades(ctx context.Context, sourceFile string, trades []*domain.Trade) (*domain.Import, error) {
	imp := &domain.Import{
		ID:         uuid.New().String(),
		SourceFile: sourceFile,
		ImportedAt: time.Now().UTC(),
		TradeCount: len(trades),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	const importQuery = `
	INSERT INTO imports (id, source_file, imported_at, trade_count)
	VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, importQuery, imp.ID, imp.SourceFile, imp.ImportedAt, imp.TradeCount); err != nil {
		return nil, fmt.Errorf("failed to insert import record for %s: %w", sourceFile, err)
	}

	const tradeQuery = `
	INSERT INTO trades (import_id, seq, ticket, open_time, type, volume, symbol, open_price,
	                    stop_loss, take_profit, close_time, close_price, commission, swap, profit)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, trade := range trades {
		var stopLoss, takeProfit sql.NullFloat64
		if trade.StopLoss != nil {
			stopLoss = sql.NullFloat64{Float64: *trade.StopLoss, Valid: true}
		}
		if trade.TakeProfit != nil {
			takeProfit = sql.NullFloat64{Float64: *trade.TakeProfit, Valid: true}
		}
		_, err := tx.ExecContext(ctx, tradeQuery,
			imp.ID, i, trade.Ticket, trade.OpenTime, trade.Type, trade.Volume, trade.Symbol, trade.OpenPrice,
			stopLoss, takeProfit, trade.CloseTime, trade.ClosePrice, trade.Commission, trade.Swap, trade.Profit)
		if err != nil {
			return nil, fmt.Errorf("failed to insert trade %d of %s: %w", i+1, sourceFile, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import of %s: %w", sourceFile, err)
	}
	r.logger.Debug(ctx, "Import stored", map[string]interface{}{"importID": imp.ID, "source": sourceFile, "trades": len(trades)})
	return imp, nil
}

// ListImports retrieves all import batches, most recent first.
func (r *Repository) ListImports(ctx context.Context) ([]*domain.Import, error) {
	const query = `
	SELECT id, source_file, imported_at, trade_count
	FROM imports
	ORDER BY imported_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer rows.Close()

	imports := make([]*domain.Import, 0)
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import during ListImports: %w", err)
		}
		imports = append(imports, imp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating import rows: %w", err)
	}
	return imports, nil
}

// FindByImport retrieves the trades of one batch in their original
// statement order.
func (r *Repository) FindByImport(ctx context.Context, importID string) ([]*domain.Trade, error) {
	const existsQuery = `SELECT COUNT(*) FROM imports WHERE id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, existsQuery, importID).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to look up import %s: %w", importID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("import %s: %w", importID, ports.ErrImportNotFound)
	}

	const query = `
	SELECT ticket, open_time, type, volume, symbol, open_price, stop_loss, take_profit,
	       close_time, close_price, commission, swap, profit
	FROM trades
	WHERE import_id = ? ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades of import %s: %w", importID, err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// FindBySymbol retrieves archived trades for a symbol ordered by close time
// ascending. A limit <= 0 returns them all.
func (r *Repository) FindBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Trade, error) {
	const query = `
	SELECT ticket, open_time, type, volume, symbol, open_price, stop_loss, take_profit,
	       close_time, close_price, commission, swap, profit
	FROM trades
	WHERE symbol = ? ORDER BY close_time, id LIMIT ?`

	if limit <= 0 {
		limit = -1 // SQLite treats a negative limit as unlimited
	}
	rows, err := r.db.QueryContext(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades for symbol %s: %w", symbol, err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// FindAll retrieves every archived trade ordered by close time ascending.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Trade, error) {
	const query = `
	SELECT ticket, open_time, type, volume, symbol, open_price, stop_loss, take_profit,
	       close_time, close_price, commission, swap, profit
	FROM trades
	ORDER BY close_time, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all trades: %w", err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// DeleteImport removes a batch and its trades.
func (r *Repository) DeleteImport(ctx context.Context, importID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trades WHERE import_id = ?`, importID); err != nil {
		return fmt.Errorf("failed to delete trades of import %s: %w", importID, err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM imports WHERE id = ?`, importID)
	if err != nil {
		return fmt.Errorf("failed to delete import %s: %w", importID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete of import %s: %w", importID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("import %s: %w", importID, ports.ErrImportNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of import %s: %w", importID, err)
	}
	r.logger.Debug(ctx, "Import deleted", map[string]interface{}{"importID": importID})
	return nil
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanImport scans a row into a domain.Import struct.
func scanImport(s scanner) (*domain.Import, error) {
	imp := &domain.Import{}
	err := s.Scan(&imp.ID, &imp.SourceFile, &imp.ImportedAt, &imp.TradeCount)
	if err != nil {
		return nil, err
	}
	return imp, nil
}

// scanTrade scans a row into a domain.Trade struct.
func scanTrade(s scanner) (*domain.Trade, error) {
	t := &domain.Trade{}
	var stopLoss, takeProfit sql.NullFloat64
	err := s.Scan(
		&t.Ticket, &t.OpenTime, &t.Type, &t.Volume, &t.Symbol, &t.OpenPrice,
		&stopLoss, &takeProfit, &t.CloseTime, &t.ClosePrice, &t.Commission, &t.Swap, &t.Profit)
	if err != nil {
		return nil, err
	}
	// NULL stop/target scans back to the unset pointer, not to zero.
	if stopLoss.Valid {
		t.StopLoss = &stopLoss.Float64
	}
	if takeProfit.Valid {
		t.TakeProfit = &takeProfit.Float64
	}
	return t, nil
}

// collectTrades drains a trade result set.
func collectTrades(rows *sql.Rows) ([]*domain.Trade, error) {
	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

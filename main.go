package main

import (
	"context"
	"flag"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"

	"tradeLogAnalyzer/config"
	"tradeLogAnalyzer/internal/adapters/logger"
	"tradeLogAnalyzer/internal/adapters/mtlog"
	"tradeLogAnalyzer/internal/adapters/sqlite"
	"tradeLogAnalyzer/internal/analytics"
	"tradeLogAnalyzer/internal/app"
	"tradeLogAnalyzer/internal/ports"
	"tradeLogAnalyzer/internal/report"
	"tradeLogAnalyzer/internal/utils"
)

func main() {
	jsonOut := flag.Bool("json", false, "Emit the summary as JSON instead of the text block")
	extended := flag.Bool("extended", false, "Include streaks, extremes and a per-symbol breakdown")
	equityCSV := flag.String("equity-csv", "", "Write the equity curve to this CSV file")
	delimiter := flag.String("delimiter", "", "Field delimiter override (\",\" or \";\"); default sniffs per file")
	profilePath := flag.String("profile", "", "Broker column profile (YAML)")
	archive := flag.Bool("archive", false, "Store the parsed trades in the trade archive")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: tradeLogAnalyzer [flags] <statement.csv>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	statementPath := flag.Arg(0)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// Flags take precedence over environment configuration.
	if *delimiter == "" {
		*delimiter = cfg.Delimiter
	}
	if *profilePath == "" {
		*profilePath = cfg.ProfilePath
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()

	// 3. Load the column profile when one was requested
	var profile *mtlog.Profile
	if *profilePath != "" {
		profile, err = mtlog.LoadProfile(*profilePath)
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to load column profile")
			log.Fatalf("FATAL: Failed to load column profile: %v", err)
		}
	}

	var delimRune rune
	if *delimiter != "" {
		runes := []rune(*delimiter)
		if len(runes) != 1 {
			log.Fatalf("FATAL: Delimiter must be a single character, got %q", *delimiter)
		}
		delimRune = runes[0]
	}

	// 4. Initialize the statement loader
	loader, err := mtlog.New(mtlog.Config{
		Path:      statementPath,
		Delimiter: delimRune,
		Profile:   profile,
		Logger:    appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize statement loader")
		log.Fatalf("FATAL: Failed to initialize statement loader: %v", err)
	}

	// 5. Initialize the trade archive only when archiving was requested
	var tradeArchive ports.TradeArchive
	if *archive {
		repo, err := sqlite.NewRepository(sqlite.Config{
			DBPath: cfg.DBPath,
			Logger: appLogger,
		})
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to initialize trade archive")
			log.Fatalf("FATAL: Failed to initialize trade archive: %v", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				appLogger.Error(ctx, err, "Error closing trade archive")
			}
		}()
		tradeArchive = repo
	}

	// 6. Initialize Application Service
	service, err := app.NewAnalyzerService(appLogger, tradeArchive)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize analyzer service")
		log.Fatalf("FATAL: Failed to initialize analyzer service: %v", err)
	}

	// 7. Analyze the statement
	analysis, err := service.Analyze(ctx, loader)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Analysis failed", map[string]interface{}{"path": statementPath})
		log.Fatalf("FATAL: Analysis failed: %v", err)
	}

	// 8. Archive the trades when requested
	if tradeArchive != nil {
		imp, err := service.Archive(ctx, statementPath, analysis.Trades)
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to archive trades")
			log.Fatalf("FATAL: Failed to archive trades: %v", err)
		}
		appLogger.Info(ctx, "Trades archived", map[string]interface{}{"importID": imp.ID, "trades": imp.TradeCount})
	}

	// 9. Write the equity curve when requested
	if *equityCSV != "" {
		curve := analytics.EquityCurve(analysis.Trades)
		if err := utils.WriteEquityCurveToCSV(curve, *equityCSV); err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to write equity curve", map[string]interface{}{"path": *equityCSV})
			log.Fatalf("FATAL: Failed to write equity curve: %v", err)
		}
	}

	// 10. Render the report
	var stats *analytics.ExtendedStats
	if *extended {
		stats = analytics.AnalyzeExtended(analysis.Trades)
	}

	if *jsonOut {
		out, err := report.FormatJSON(analysis.Summary, stats)
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to encode summary")
			log.Fatalf("FATAL: Failed to encode summary: %v", err)
		}
		fmt.Println(out)
		return
	}

	fmt.Println(report.FormatText(analysis.Summary))
	if stats != nil {
		fmt.Println()
		fmt.Print(report.FormatExtended(stats))
	}
}

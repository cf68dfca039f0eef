package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"tradeLogAnalyzer/config"
	"tradeLogAnalyzer/internal/adapters/logger"
	"tradeLogAnalyzer/internal/adapters/sqlite"
	"tradeLogAnalyzer/internal/app"
	"tradeLogAnalyzer/internal/report"
	"tradeLogAnalyzer/internal/utils"
)

var (
	dbPath       = flag.String("db", "", "path to the trade archive database (defaults to DB_PATH)")
	symbol       = flag.String("symbol", "", "summarize archived trades for this symbol")
	limit        = flag.Int("limit", 0, "cap the number of trades when querying by symbol (0 = all)")
	listImports  = flag.Bool("list-imports", false, "list archived statement imports")
	importID     = flag.String("import", "", "summarize the trades of one import batch")
	deleteImport = flag.String("delete-import", "", "delete one import batch and its trades")
	exportCSV    = flag.String("export", "", "write the selected trades to this CSV file")
	jsonOut      = flag.Bool("json", false, "emit summaries as JSON")
)

func main() {
	flag.Parse()

	modes := 0
	if *listImports {
		modes++
	}
	if *importID != "" {
		modes++
	}
	if *symbol != "" {
		modes++
	}
	if *deleteImport != "" {
		modes++
	}
	if modes > 1 {
		fmt.Fprintln(os.Stderr, "Usage: pick at most one of -list-imports, -import, -symbol, -delete-import")
		os.Exit(2)
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if *dbPath == "" {
		*dbPath = cfg.DBPath
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()

	// 3. Open the trade archive
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: *dbPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to open trade archive")
		log.Fatalf("FATAL: Failed to open trade archive: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(ctx, err, "Error closing trade archive")
		}
	}()

	// 4. Initialize Application Service
	service, err := app.NewAnalyzerService(appLogger, repo)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize analyzer service: %v", err)
	}

	// 5. Dispatch on the requested mode
	switch {
	case *listImports:
		imports, err := service.ListImports(ctx)
		if err != nil {
			log.Fatalf("Error listing imports: %v", err)
		}
		if len(imports) == 0 {
			fmt.Println("No imports in the archive.")
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
		fmt.Fprintln(w, "ID\tSource File\tImported At\tTrades\t")
		for _, imp := range imports {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t\n",
				imp.ID, imp.SourceFile, imp.ImportedAt.Format(time.RFC3339), imp.TradeCount)
		}
		w.Flush()

	case *deleteImport != "":
		if err := service.DeleteImport(ctx, *deleteImport); err != nil {
			log.Fatalf("Error deleting import %s: %v", *deleteImport, err)
		}
		fmt.Printf("Deleted import %s\n", *deleteImport)

	case *importID != "":
		analysis, err := service.AnalyzeImport(ctx, *importID)
		if err != nil {
			log.Fatalf("Error analyzing import %s: %v", *importID, err)
		}
		render(analysis)

	case *symbol != "":
		analysis, err := service.AnalyzeSymbol(ctx, *symbol, *limit)
		if err != nil {
			log.Fatalf("Error analyzing symbol %s: %v", *symbol, err)
		}
		render(analysis)

	default:
		analysis, err := service.AnalyzeArchive(ctx)
		if err != nil {
			log.Fatalf("Error analyzing archive: %v", err)
		}
		render(analysis)
	}
}

func render(analysis *app.Analysis) {
	if *exportCSV != "" {
		if err := utils.WriteTradesToCSV(analysis.Trades, *exportCSV); err != nil {
			log.Fatalf("Error exporting trades to %s: %v", *exportCSV, err)
		}
		fmt.Printf("Exported %d trades to %s\n", len(analysis.Trades), *exportCSV)
	}
	if *jsonOut {
		out, err := report.FormatJSON(analysis.Summary, nil)
		if err != nil {
			log.Fatalf("Error encoding summary: %v", err)
		}
		fmt.Println(out)
		return
	}
	fmt.Println(report.FormatText(analysis.Summary))
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"tradeLogAnalyzer/config"
	"tradeLogAnalyzer/internal/adapters/logger"
	"tradeLogAnalyzer/internal/adapters/mtlog"
	"tradeLogAnalyzer/internal/app"
	"tradeLogAnalyzer/internal/domain"
	"tradeLogAnalyzer/internal/report"
)

var (
	dir     = flag.String("dir", "data", "directory to scan for statement files")
	suffix  = flag.String("suffix", ".csv", "statement file suffix")
	workers = flag.Int("workers", 4, "number of statements analyzed concurrently")
	jsonOut = flag.Bool("json", false, "emit one JSON object per statement instead of the table")
)

type scanResult struct {
	file    string
	summary *domain.Summary
	err     error
}

func main() {
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()

	// 3. Load the column profile when one was configured
	var profile *mtlog.Profile
	if cfg.ProfilePath != "" {
		profile, err = mtlog.LoadProfile(cfg.ProfilePath)
		if err != nil {
			log.Fatalf("FATAL: Failed to load column profile: %v", err)
		}
	}
	var delimRune rune
	if cfg.Delimiter != "" {
		delimRune = []rune(cfg.Delimiter)[0]
	}

	// 4. Find statement files
	files, err := findStatementFiles(*dir, *suffix)
	if err != nil {
		log.Fatalf("Error finding statement files: %v", err)
	}
	if len(files) == 0 {
		log.Println("No statement files found.")
		return
	}

	// 5. Initialize Application Service (scans are read-only, no archive)
	service, err := app.NewAnalyzerService(appLogger, nil)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize analyzer service: %v", err)
	}

	// 6. Fan the statements out to workers
	if *workers < 1 {
		*workers = 1
	}
	jobs := make(chan string, len(files))
	resultChan := make(chan scanResult, len(files))
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				loader, err := mtlog.New(mtlog.Config{
					Path:      file,
					Delimiter: delimRune,
					Profile:   profile,
					Logger:    appLogger,
				})
				if err != nil {
					resultChan <- scanResult{file: file, err: err}
					continue
				}
				analysis, err := service.Analyze(ctx, loader)
				if err != nil {
					resultChan <- scanResult{file: file, err: err}
					continue
				}
				resultChan <- scanResult{file: file, summary: analysis.Summary}
			}
		}()
	}
	for _, f := range files {
		jobs <- f
	}
	close(jobs)

	// Wait for all goroutines to complete
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// 7. Collect results, skipping files that failed to parse
	results := make([]scanResult, 0, len(files))
	for res := range resultChan {
		if res.err != nil {
			log.Printf("Error analyzing %s: %v", res.file, res.err)
			continue
		}
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].file < results[j].file })

	// 8. Render
	if *jsonOut {
		printJSON(results)
		return
	}
	rows := make([]report.ScanRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, report.ScanRow{File: filepath.Base(res.file), Summary: res.summary})
	}
	fmt.Print(report.FormatScanTable(rows))
}

func printJSON(results []scanResult) {
	type fileReport struct {
		File    string          `json:"file"`
		Summary json.RawMessage `json:"summary"`
	}

	out := make([]fileReport, 0, len(results))
	for _, res := range results {
		s, err := report.FormatJSON(res.summary, nil)
		if err != nil {
			log.Fatalf("Error encoding summary for %s: %v", res.file, err)
		}
		out = append(out, fileReport{File: res.file, Summary: json.RawMessage(s)})
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("Error encoding scan results: %v", err)
	}
	fmt.Println(string(b))
}

// findStatementFiles finds all statement files with the suffix in the directory
func findStatementFiles(dir, suffix string) ([]string, error) {
	var files []string

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), suffix) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

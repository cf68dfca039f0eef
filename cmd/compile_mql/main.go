package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"tradeLogAnalyzer/config"
	"tradeLogAnalyzer/internal/adapters/logger"
	"tradeLogAnalyzer/internal/adapters/mqlcompiler"
)

// stringSlice collects a repeatable flag into a list.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, " ") }

func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	output       = flag.String("output", "", "output file (defaults to the source with the executable extension)")
	compilerPath = flag.String("compiler", "", "path to the MetaEditor binary (defaults to MQL_COMPILER)")
	useWine      = flag.Bool("wine", false, "run the compiler through wine")
	timeout      = flag.Duration("timeout", 0, "per-build timeout (0 uses MQL_TIMEOUT_SECONDS, default 2m)")
	extraArgs    stringSlice
)

func init() {
	flag.StringVar(output, "o", "", "shorthand for -output")
	flag.Var(&extraArgs, "extra-arg", "additional compiler argument (repeatable)")
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: compile_mql [flags] <script.mq4|script.mq5>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	sourcePath := flag.Arg(0)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// Flags take precedence over environment configuration.
	if *compilerPath == "" {
		*compilerPath = cfg.CompilerPath
	}
	wine := *useWine || cfg.UseWine
	buildTimeout := *timeout
	if buildTimeout <= 0 {
		buildTimeout = cfg.CompileTimeout
	}
	args := append([]string{}, cfg.ExtraArgs...)
	args = append(args, extraArgs...)

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()

	// 3. Initialize the compiler adapter
	compiler, err := mqlcompiler.New(mqlcompiler.Config{
		CompilerPath: *compilerPath,
		UseWine:      wine,
		Timeout:      buildTimeout,
		ExtraArgs:    args,
		Logger:       appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize MQL compiler: %v", err)
	}

	// 4. Run the build
	start := time.Now()
	result, err := compiler.Compile(ctx, sourcePath, *output)
	if result == nil {
		// The compiler never produced a verdict (missing binary, timeout).
		appLogger.Error(ctx, err, "FATAL: Compilation did not run", map[string]interface{}{"source": sourcePath})
		log.Fatalf("FATAL: Compilation did not run: %v", err)
	}

	// 5. Report the verdict
	fmt.Printf("Command: %s\n", strings.Join(result.Command, " "))
	fmt.Printf("Return code: %d\n", result.ReturnCode)
	fmt.Printf("Output file: %s\n", result.OutputPath)
	if result.Stdout != "" {
		fmt.Println("--- stdout ---")
		fmt.Print(result.Stdout)
		if !strings.HasSuffix(result.Stdout, "\n") {
			fmt.Println()
		}
	}
	if result.Stderr != "" {
		fmt.Println("--- stderr ---")
		fmt.Print(result.Stderr)
		if !strings.HasSuffix(result.Stderr, "\n") {
			fmt.Println()
		}
	}

	if !result.Succeeded {
		appLogger.Error(ctx, err, "Compilation failed", map[string]interface{}{
			"source":   sourcePath,
			"duration": time.Since(start).String(),
		})
		os.Exit(result.ReturnCode)
	}
	appLogger.Info(ctx, "Compilation succeeded", map[string]interface{}{
		"source":   sourcePath,
		"output":   result.OutputPath,
		"duration": time.Since(start).String(),
	})
}

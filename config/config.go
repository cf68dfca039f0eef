package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tradeLogAnalyzer/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Statement Parsing
	Delimiter   string // Explicit field delimiter ("," or ";"); empty means sniff per file
	ProfilePath string // Optional broker column profile (YAML); empty means canonical headers

	// Trade Archive
	DBPath string

	// MQL Compilation
	CompilerPath   string        // Path to the MetaEditor binary; empty disables compilation
	UseWine        bool          // Run the compiler through wine on non-Windows hosts
	CompileTimeout time.Duration // Upper bound for a single compiler run
	ExtraArgs      []string      // Additional arguments appended to every compile

	// Logging
	LogLevel logger.LogLevel // Use the LogLevel type from the logger adapter
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string // Collect validation errors

	// Statement Parsing
	cfg.Delimiter = getEnv("STATEMENT_DELIMITER", "")
	if cfg.Delimiter != "" && cfg.Delimiter != "," && cfg.Delimiter != ";" {
		errs = append(errs, fmt.Sprintf("STATEMENT_DELIMITER must be ',' or ';', got %q", cfg.Delimiter))
	}
	cfg.ProfilePath = getEnv("COLUMN_PROFILE", "")

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/trade_archive.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// MQL Compilation
	cfg.CompilerPath = getEnv("MQL_COMPILER", "")
	cfg.UseWine = getEnvAsBool("MQL_USE_WINE", false)

	timeoutSeconds := getEnvAsInt("MQL_TIMEOUT_SECONDS", 120)
	if timeoutSeconds <= 0 {
		errs = append(errs, "MQL_TIMEOUT_SECONDS must be positive")
	}
	cfg.CompileTimeout = time.Duration(timeoutSeconds) * time.Second

	// Whitespace-separated; compiler options never contain embedded spaces.
	cfg.ExtraArgs = strings.Fields(getEnv("MQL_EXTRA_ARGS", ""))

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Log warning? For non-required fields, default is often acceptable.
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

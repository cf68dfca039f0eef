package ports

import "errors"

// Standard application-level errors.
// Adapters wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrNotFound           = errors.New("resource not found")
	ErrTimeout            = errors.New("operation timed out")
	ErrContextCanceled    = errors.New("operation canceled via context")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Statement Parsing Errors
	ErrMissingField       = errors.New("required column missing from row")
	ErrTimestampFormat    = errors.New("timestamp does not match any supported format")
	ErrNumericFormat      = errors.New("numeric field is not parseable as a number")
	ErrDelimiterDetection = errors.New("no plausible field delimiter detected")

	// Archive Specific Errors
	ErrImportNotFound = errors.New("import batch not found in archive")
	ErrQueryFailed    = errors.New("archive query failed")

	// Compiler Specific Errors
	ErrCompilerNotFound = errors.New("compiler executable not found")
	ErrCompileFailed    = errors.New("compiler exited with a non-zero status")
)

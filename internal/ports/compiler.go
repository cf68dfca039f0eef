package ports

import "context"

// CompileResult captures a single compiler invocation. The result is
// returned even when the build fails so callers can report the compiler's
// own output alongside the error.
type CompileResult struct {
	Command    []string // full argv that was executed
	ReturnCode int      // process exit code
	Stdout     string   // captured standard output
	Stderr     string   // captured standard error
	OutputPath string   // path of the produced executable
	Succeeded  bool     // true when the compiler exited with code 0
}

// ScriptCompiler defines the interface for building trading scripts into
// platform executables via an external compiler binary.
type ScriptCompiler interface {
	// Compile builds sourcePath into outputPath. An empty outputPath derives
	// the target from the source name. On a failed build the returned result
	// is still populated and the error wraps ErrCompileFailed.
	Compile(ctx context.Context, sourcePath, outputPath string) (*CompileResult, error)
}

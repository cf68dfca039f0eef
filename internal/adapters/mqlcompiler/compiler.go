package mqlcompiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"tradeLogAnalyzer/internal/ports"
)

const defaultTimeout = 2 * time.Minute

// Compiler invokes an externally installed MetaEditor binary to build MQL
// scripts into platform executables. It implements ports.ScriptCompiler.
type Compiler struct {
	compilerPath string
	useWine      bool
	timeout      time.Duration
	extraArgs    []string
	logger       ports.Logger
}

// Config holds configuration for the MQL compiler adapter.
type Config struct {
	CompilerPath string        // MetaEditor executable
	UseWine      bool          // prefix the invocation with wine
	Timeout      time.Duration // per-build deadline, defaults to 2 minutes
	ExtraArgs    []string      // appended verbatim after the built arguments
	Logger       ports.Logger
}

// New creates an MQL compiler adapter.
func New(cfg Config) (*Compiler, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required for MQL compiler")
	}
	if cfg.CompilerPath == "" {
		return nil, fmt.Errorf("compiler path is required: %w", ports.ErrCompilerNotFound)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Compiler{
		compilerPath: cfg.CompilerPath,
		useWine:      cfg.UseWine,
		timeout:      timeout,
		extraArgs:    cfg.ExtraArgs,
		logger:       cfg.Logger,
	}, nil
}

// Compile builds sourcePath into outputPath. An empty outputPath derives the
// target from the source name (.mq4 builds to .ex4, anything else to .ex5).
// When the compiler runs but exits nonzero the result is still returned
// alongside an error wrapping ports.ErrCompileFailed, so callers can show
// the compiler's own output.
func (c *Compiler) Compile(ctx context.Context, sourcePath, outputPath string) (*ports.CompileResult, error) {
	op := "Compile"
	if _, err := os.Stat(sourcePath); err != nil {
		return nil, fmt.Errorf("%s: source %s: %w", op, sourcePath, err)
	}
	if !c.useWine {
		// Under wine the path may only resolve inside the wine prefix.
		if _, err := os.Stat(c.compilerPath); err != nil {
			return nil, fmt.Errorf("%s: compiler %s: %w", op, c.compilerPath, ports.ErrCompilerNotFound)
		}
	}
	if outputPath == "" {
		outputPath = defaultOutputPath(sourcePath)
	}

	argv := c.buildCommand(sourcePath, outputPath)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Info(ctx, op+": invoking compiler", map[string]interface{}{
		"command": strings.Join(argv, " "),
	})
	runErr := cmd.Run()

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: compiler run exceeded %s: %w", op, c.timeout, ports.ErrTimeout)
		}
		return nil, fmt.Errorf("%s: compile aborted: %w", op, ports.ErrContextCanceled)
	}

	result := &ports.CompileResult{
		Command:    argv,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		OutputPath: outputPath,
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ReturnCode = exitErr.ExitCode()
			err := fmt.Errorf("%s: compiler exited with code %d: %w", op, result.ReturnCode, ports.ErrCompileFailed)
			c.logger.Error(ctx, err, op+": compiler reported errors", map[string]interface{}{
				"returnCode": result.ReturnCode,
				"source":     sourcePath,
			})
			return result, err
		}
		// The process could not be started at all.
		return nil, fmt.Errorf("%s: %w", op, runErr)
	}

	result.Succeeded = true
	c.logger.Info(ctx, op+": build succeeded", map[string]interface{}{
		"source": sourcePath,
		"output": outputPath,
	})
	return result, nil
}

// buildCommand assembles the compiler argv. MetaEditor takes slash-style
// options; extra arguments ride along verbatim at the end.
func (c *Compiler) buildCommand(sourcePath, outputPath string) []string {
	args := make([]string, 0, len(c.extraArgs)+4)
	if c.useWine {
		args = append(args, "wine")
	}
	args = append(args, c.compilerPath)
	args = append(args, "/compile:"+sourcePath)
	args = append(args, "/out:"+outputPath)
	args = append(args, c.extraArgs...)
	return args
}

// defaultOutputPath swaps the source extension for the executable one.
func defaultOutputPath(sourcePath string) string {
	ext := ".ex5"
	if strings.EqualFold(filepath.Ext(sourcePath), ".mq4") {
		ext = ".ex4"
	}
	return strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ext
}

package repair

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrorigo/mcp-orchestrator/apigen"
	"github.com/mrorigo/mcp-orchestrator/sandbox"
)

// Errors returned by Config validation.
var (
	ErrGeneratorRequired = errors.New("repair: Generator is required")
	ErrRunnerRequired    = errors.New("repair: Runner is required")
)

// Runner executes one code snippet to a terminal state. Satisfied by
// *sandbox.Executor.
type Runner interface {
	Execute(ctx context.Context, req sandbox.ExecutionRequest) sandbox.ExecutionResult
}

// Logger is an optional interface for observability during the loop.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort; Logf should not panic.
type Logger interface {
	Logf(format string, args ...any)
}

// Config configures a Loop.
type Config struct {
	// Generator is the generating backend. Required.
	Generator Generator

	// Runner executes the generated code. Required.
	Runner Runner

	// Logger is optional.
	Logger Logger
}

// Loop is the bounded generation-execution-repair cycle.
type Loop struct {
	gen    Generator
	runner Runner
	logger Logger
}

// NewLoop creates a Loop. Returns an error if a required field is
// missing.
func NewLoop(cfg Config) (*Loop, error) {
	if cfg.Generator == nil {
		return nil, ErrGeneratorRequired
	}
	if cfg.Runner == nil {
		return nil, ErrRunnerRequired
	}
	return &Loop{gen: cfg.Generator, runner: cfg.Runner, logger: cfg.Logger}, nil
}

// RunRequest parametrizes one loop invocation.
type RunRequest struct {
	// TaskPrompt is the task the generated code should accomplish.
	TaskPrompt string

	// InterfaceText is the tool surface description shown to the model,
	// as produced by apigen.BuildInterfaceText.
	InterfaceText string

	// Bindings is the tool table each execution runs against.
	Bindings apigen.Bindings

	// Args are installed as named globals for each execution attempt.
	Args map[string]any

	// MaxRetries bounds the repair cycle: at most 1+MaxRetries
	// generation calls are made. Negative values are treated as zero.
	MaxRetries int

	// Timeout is the per-attempt execution budget. Zero means the
	// runner's default.
	Timeout time.Duration

	// SystemPrompt overrides DefaultSystemPrompt when non-empty.
	SystemPrompt string

	// IncludeExamples appends worked examples to the initial prompt.
	IncludeExamples bool

	// CaptureOutput is forwarded to each execution. Nil means true.
	CaptureOutput *bool
}

// RunResult is a successful loop outcome: the execution result together
// with the code that produced it.
type RunResult struct {
	sandbox.ExecutionResult

	// Code is the extracted code of the successful attempt.
	Code string

	// Attempts is the number of generation calls made.
	Attempts int
}

// Run drives the loop to a successful execution or exhausts the retry
// budget. Success is never retried, even if the value is not what the
// caller hoped for; the only returned error type is *ExhaustedError.
func (l *Loop) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	maxRetries := req.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	system := req.SystemPrompt
	if system == "" {
		system = DefaultSystemPrompt
	}

	prompt := buildInitialPrompt(req.InterfaceText, req.TaskPrompt, req.IncludeExamples)

	var lastErr, lastCode string
	attempts := 0
	for attempt := 0; attempt <= maxRetries; attempt++ {
		attempts++

		response, err := l.gen.Generate(ctx, GenerateRequest{Prompt: prompt, SystemPrompt: system})
		if err != nil {
			lastErr = fmt.Sprintf("generation failed: %v", err)
			l.logf("attempt %d/%d: %s", attempts, maxRetries+1, lastErr)
			// No new code to repair against; retry with the previous
			// prompt (or the failing code from an earlier attempt).
			if lastCode != "" {
				prompt = buildRepairPrompt(lastCode, lastErr)
			}
			continue
		}

		code := ExtractCode(response)
		lastCode = code

		result := l.runner.Execute(ctx, sandbox.ExecutionRequest{
			Code:          code,
			Args:          req.Args,
			Bindings:      req.Bindings,
			Timeout:       req.Timeout,
			CaptureOutput: req.CaptureOutput,
		})
		if result.Success {
			l.logf("attempt %d/%d succeeded in %dms", attempts, maxRetries+1, result.DurationMs)
			return RunResult{ExecutionResult: result, Code: code, Attempts: attempts}, nil
		}

		lastErr = result.Error
		l.logf("attempt %d/%d failed: %s", attempts, maxRetries+1, lastErr)
		prompt = buildRepairPrompt(code, result.Error)
	}

	return RunResult{}, &ExhaustedError{
		Attempts:  attempts,
		LastError: lastErr,
		LastCode:  lastCode,
	}
}

func (l *Loop) logf(format string, args ...any) {
	if l.logger != nil {
		l.logger.Logf(format, args...)
	}
}

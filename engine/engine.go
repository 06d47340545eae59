package engine

import (
	"context"
	"fmt"

	"github.com/mrorigo/mcp-orchestrator/apigen"
	"github.com/mrorigo/mcp-orchestrator/repair"
	"github.com/mrorigo/mcp-orchestrator/sandbox"
)

// Engine combines the API surface generator, the sandbox executor and
// the repair loop behind the two caller-facing operations. Safe for
// concurrent use; every execution owns its own isolated context and
// binding table.
type Engine struct {
	opts     Options
	executor *sandbox.Executor
	loop     *repair.Loop
}

// New creates an Engine with the given options.
func New(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()

	executor := sandbox.New(sandbox.Options{DefaultTimeout: opts.DefaultTimeout})

	e := &Engine{opts: opts, executor: executor}
	if opts.Generator != nil {
		loop, err := repair.NewLoop(repair.Config{
			Generator: opts.Generator,
			Runner:    executor,
			Logger:    opts.Logger,
		})
		if err != nil {
			return nil, err
		}
		e.loop = loop
	}
	return e, nil
}

// Execute runs caller-supplied code against the current tool surface.
// It always returns a structured result; a tool-listing failure is
// reported as a failed execution, never as a Go error.
func (e *Engine) Execute(ctx context.Context, code string, args map[string]any, opts ExecuteOptions) sandbox.ExecutionResult {
	descriptors, err := e.opts.Tools.ListTools(ctx)
	if err != nil {
		return sandbox.ExecutionResult{
			State: sandbox.StateFailed,
			Error: fmt.Sprintf("listing tools: %v", err),
		}
	}

	return e.executor.Execute(ctx, sandbox.ExecutionRequest{
		Code:          code,
		Args:          args,
		Bindings:      apigen.BuildBindings(descriptors, e.opts.Dispatch),
		Timeout:       opts.Timeout,
		CaptureOutput: opts.CaptureOutput,
	})
}

// GenerateAndExecute asks the generating backend for code accomplishing
// taskPrompt and runs it, repairing failures within the retry budget.
// On success the result carries the code that produced it; on
// exhaustion the returned error is a *repair.ExhaustedError.
func (e *Engine) GenerateAndExecute(ctx context.Context, taskPrompt string, opts GenerateOptions) (repair.RunResult, error) {
	if e.loop == nil {
		return repair.RunResult{}, ErrGeneratorRequired
	}

	descriptors, err := e.opts.Tools.ListTools(ctx)
	if err != nil {
		return repair.RunResult{}, fmt.Errorf("listing tools: %w", err)
	}

	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = e.opts.MaxRetries
	}
	system := opts.SystemPrompt
	if system == "" {
		system = e.opts.SystemPrompt
	}

	return e.loop.Run(ctx, repair.RunRequest{
		TaskPrompt:      taskPrompt,
		InterfaceText:   apigen.BuildInterfaceText(descriptors),
		Bindings:        apigen.BuildBindings(descriptors, e.opts.Dispatch),
		Args:            opts.Args,
		MaxRetries:      maxRetries,
		Timeout:         opts.Timeout,
		SystemPrompt:    system,
		IncludeExamples: opts.IncludeExamples || e.opts.IncludeExamples,
	})
}

// InterfaceText returns the current tool surface description, as used
// for prompting. Exposed for diagnostics and prompt inspection.
func (e *Engine) InterfaceText(ctx context.Context) (string, error) {
	descriptors, err := e.opts.Tools.ListTools(ctx)
	if err != nil {
		return "", fmt.Errorf("listing tools: %w", err)
	}
	return apigen.BuildInterfaceText(descriptors), nil
}

package engine

import (
	"context"
	"errors"
	"time"

	"github.com/mrorigo/mcp-orchestrator/apigen"
	"github.com/mrorigo/mcp-orchestrator/repair"
	"github.com/mrorigo/mcp-orchestrator/sandbox"
)

// Default configuration values.
const (
	DefaultMaxRetries = 2
	DefaultTimeout    = sandbox.DefaultTimeout
)

// Errors returned by Options validation.
var (
	ErrToolsRequired     = errors.New("engine: Tools source is required")
	ErrDispatchRequired  = errors.New("engine: Dispatch is required")
	ErrGeneratorRequired = errors.New("engine: Generator is required")
)

// ToolSource supplies the ordered descriptor list. The registry behind
// it is an external collaborator; the engine only reads.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines.
// - Ownership: the returned slice is caller-owned; the engine never
//   mutates or caches it.
type ToolSource interface {
	ListTools(ctx context.Context) ([]apigen.ToolDescriptor, error)
}

// Logger is an optional interface for observability.
type Logger interface {
	Logf(format string, args ...any)
}

// Options configures an Engine.
type Options struct {
	// Tools supplies tool descriptors. Required.
	Tools ToolSource

	// Dispatch forwards tool calls to the external dispatcher. Required.
	Dispatch apigen.Dispatch

	// Generator is the generating backend. Required for
	// GenerateAndExecute; Execute works without it.
	Generator repair.Generator

	// DefaultTimeout is the execution budget applied when a call does
	// not specify one. Default: DefaultTimeout.
	DefaultTimeout time.Duration

	// MaxRetries bounds the repair cycle. Default: DefaultMaxRetries.
	// Set to a negative value for no retries.
	MaxRetries int

	// SystemPrompt overrides the built-in system prompt when non-empty.
	SystemPrompt string

	// IncludeExamples appends worked examples to initial prompts.
	IncludeExamples bool

	// Logger is optional.
	Logger Logger
}

// validate checks that required fields are set.
func (o *Options) validate() error {
	if o.Tools == nil {
		return ErrToolsRequired
	}
	if o.Dispatch == nil {
		return ErrDispatchRequired
	}
	return nil
}

// applyDefaults sets default values for unset optional fields.
func (o *Options) applyDefaults() {
	if o.DefaultTimeout == 0 {
		o.DefaultTimeout = DefaultTimeout
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = DefaultMaxRetries
	}
}

// ExecuteOptions parametrizes a single Execute call.
type ExecuteOptions struct {
	// Timeout overrides the engine's default budget. Zero means the
	// default.
	Timeout time.Duration

	// CaptureOutput controls console capture. Nil means true.
	CaptureOutput *bool
}

// GenerateOptions parametrizes a single GenerateAndExecute call.
type GenerateOptions struct {
	// Timeout is the per-attempt execution budget. Zero means the
	// engine's default.
	Timeout time.Duration

	// MaxRetries overrides the engine's retry budget. Zero means the
	// engine's default; negative means no retries.
	MaxRetries int

	// SystemPrompt overrides the engine's system prompt when non-empty.
	SystemPrompt string

	// IncludeExamples appends worked examples to the initial prompt.
	// ORed with the engine-level setting.
	IncludeExamples bool

	// Args are installed as named globals for each execution attempt.
	Args map[string]any
}

// StaticTools returns a ToolSource over a fixed descriptor list.
func StaticTools(descriptors ...apigen.ToolDescriptor) ToolSource {
	return staticSource(descriptors)
}

type staticSource []apigen.ToolDescriptor

func (s staticSource) ListTools(context.Context) ([]apigen.ToolDescriptor, error) {
	return append([]apigen.ToolDescriptor(nil), s...), nil
}

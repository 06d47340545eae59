package sandbox

import (
	"time"

	"github.com/mrorigo/mcp-orchestrator/apigen"
)

// State identifies the terminal state of one execution. States are
// mutually exclusive; no state is resumable.
type State string

const (
	// StateCompleted means the code ran to completion and produced a value.
	StateCompleted State = "completed"

	// StateFailed means the code failed to parse or threw during execution.
	StateFailed State = "failed"

	// StateTimedOut means the wall-clock budget expired and the runtime
	// was forcibly terminated.
	StateTimedOut State = "timed_out"
)

// ExecutionRequest describes one execution. It is owned by the executor
// for the duration of a single Execute call and discarded after.
type ExecutionRequest struct {
	// Code is the JavaScript source to execute. A bare top-level
	// `return <expr>` yields the execution's result value.
	Code string

	// Args are installed as named globals in the context before the
	// code runs. Collisions with allow-listed globals are the caller's
	// responsibility.
	Args map[string]any

	// Bindings is the tool table exposed to the code under the `tools`
	// namespace. Created fresh per execution context by the caller.
	Bindings apigen.Bindings

	// Timeout is the wall-clock budget. Zero means the executor's
	// default.
	Timeout time.Duration

	// CaptureOutput controls whether console calls are recorded.
	// Nil means true.
	CaptureOutput *bool
}

func (r ExecutionRequest) captureOutput() bool {
	if r.CaptureOutput == nil {
		return true
	}
	return *r.CaptureOutput
}

// ExecutionResult is the outcome of one execution. Exactly one of
// Value/Error is meaningful, gated by Success.
type ExecutionResult struct {
	// Success is true only for StateCompleted.
	Success bool `json:"success"`

	// State is the terminal state of the execution.
	State State `json:"state"`

	// Output holds one entry per console call, in call order, including
	// partial output preceding a failure or timeout.
	Output []string `json:"output,omitempty"`

	// Value is the execution's result value when Success is true.
	Value any `json:"value,omitempty"`

	// Error is the sanitized failure message when Success is false.
	Error string `json:"error,omitempty"`

	// DurationMs is the wall-clock execution time in milliseconds.
	// Always populated.
	DurationMs int64 `json:"durationMs"`
}

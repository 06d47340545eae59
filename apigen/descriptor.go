package apigen

import "context"

// ToolDescriptor describes one externally-dispatchable tool: a unique
// name, a natural-language description, and a JSON-schema-shaped input
// contract. Descriptors are owned by the external tool registry;
// this package only reads them.
type ToolDescriptor struct {
	// Name is the tool's unique identifier.
	Name string `json:"name"`

	// Description is the natural-language description shown to the
	// generating model.
	Description string `json:"description,omitempty"`

	// InputSchema is a JSON-schema-like structure describing the tool's
	// single input object. May be nil for tools that take no input.
	InputSchema map[string]any `json:"inputSchema,omitempty"`
}

// Dispatch forwards one tool call to the orchestration layer.
// It may return an error, which bindings re-throw to the caller.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines.
// - Ownership: input is read-only; the returned value is caller-owned.
type Dispatch func(ctx context.Context, name string, input map[string]any) (any, error)

// Binding is a callable wrapper around one tool. It forwards its input
// to the dispatcher and returns the dispatch result unchanged.
type Binding func(ctx context.Context, input map[string]any) (any, error)

// Bindings maps tool names to their bindings. The table is read-only
// once built; any mutable state a call affects lives on the dispatcher
// side.
type Bindings map[string]Binding

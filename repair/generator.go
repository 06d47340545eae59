package repair

import "context"

// GenerateRequest is one request to the generating backend.
type GenerateRequest struct {
	// Prompt is the user-role prompt text.
	Prompt string

	// SystemPrompt is the system-role instruction text. May be empty.
	SystemPrompt string
}

// Generator is the generating backend boundary. Prompt formatting lives
// on this side; transport, model selection and network-level retries
// live on the implementation's side.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines.
// - Errors: transport or refusal failures return an error; the loop
//   counts them against the retry budget like any other failure.
type Generator interface {
	// Generate returns the raw model response, possibly containing a
	// fenced code block.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

package repair

import (
	"context"
	"sync"

	"github.com/mrorigo/mcp-orchestrator/sandbox"
)

// mockGenerator replays scripted responses in order. Each entry is
// either a response string or an error; calls past the script return
// the last entry.
type mockGenerator struct {
	mu       sync.Mutex
	script   []generated
	requests []GenerateRequest
}

type generated struct {
	response string
	err      error
}

func (m *mockGenerator) Generate(_ context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	idx := len(m.requests) - 1
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}
	entry := m.script[idx]
	return entry.response, entry.err
}

func (m *mockGenerator) calls() []GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GenerateRequest(nil), m.requests...)
}

// mockRunner replays scripted execution results in order and records
// the requests it received.
type mockRunner struct {
	mu       sync.Mutex
	script   []sandbox.ExecutionResult
	requests []sandbox.ExecutionRequest
}

func (m *mockRunner) Execute(_ context.Context, req sandbox.ExecutionRequest) sandbox.ExecutionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	idx := len(m.requests) - 1
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}
	return m.script[idx]
}

func (m *mockRunner) calls() []sandbox.ExecutionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sandbox.ExecutionRequest(nil), m.requests...)
}

func successResult(value any) sandbox.ExecutionResult {
	return sandbox.ExecutionResult{
		Success: true,
		State:   sandbox.StateCompleted,
		Value:   value,
	}
}

func failedResult(errText string) sandbox.ExecutionResult {
	return sandbox.ExecutionResult{
		State: sandbox.StateFailed,
		Error: errText,
	}
}

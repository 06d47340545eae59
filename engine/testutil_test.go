package engine

import (
	"context"
	"sync"

	"github.com/mrorigo/mcp-orchestrator/apigen"
	"github.com/mrorigo/mcp-orchestrator/repair"
)

// failingSource always returns the configured error.
type failingSource struct {
	err error
}

func (f failingSource) ListTools(context.Context) ([]apigen.ToolDescriptor, error) {
	return nil, f.err
}

// scriptedGenerator replays responses in order and records requests.
type scriptedGenerator struct {
	mu        sync.Mutex
	responses []string
	requests  []repair.GenerateRequest
}

func (g *scriptedGenerator) Generate(_ context.Context, req repair.GenerateRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	idx := len(g.requests) - 1
	if idx >= len(g.responses) {
		idx = len(g.responses) - 1
	}
	return g.responses[idx], nil
}

func (g *scriptedGenerator) calls() []repair.GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]repair.GenerateRequest(nil), g.requests...)
}

// recordingDispatch records calls and returns a fixed value.
type recordingDispatch struct {
	mu    sync.Mutex
	value any
	err   error
	names []string
}

func (d *recordingDispatch) dispatch(_ context.Context, name string, _ map[string]any) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names = append(d.names, name)
	return d.value, d.err
}

func (d *recordingDispatch) calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.names...)
}

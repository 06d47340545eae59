package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mrorigo/mcp-orchestrator/apigen"
	"github.com/mrorigo/mcp-orchestrator/sandbox"
)

func TestNew_Validation(t *testing.T) {
	dispatch := &recordingDispatch{}
	tools := StaticTools()

	if _, err := New(Options{Dispatch: dispatch.dispatch}); !errors.Is(err, ErrToolsRequired) {
		t.Errorf("expected ErrToolsRequired, got %v", err)
	}
	if _, err := New(Options{Tools: tools}); !errors.Is(err, ErrDispatchRequired) {
		t.Errorf("expected ErrDispatchRequired, got %v", err)
	}
	if _, err := New(Options{Tools: tools, Dispatch: dispatch.dispatch}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExecute_RunsAgainstToolSurface(t *testing.T) {
	dispatch := &recordingDispatch{value: "from-tool"}
	engine, err := New(Options{
		Tools:    StaticTools(apigen.ToolDescriptor{Name: "lookup"}),
		Dispatch: dispatch.dispatch,
	})
	if err != nil {
		t.Fatal(err)
	}

	result := engine.Execute(context.Background(), "return await tools.lookup({})", nil, ExecuteOptions{})
	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	if result.Value != "from-tool" {
		t.Errorf("expected dispatched value, got %v", result.Value)
	}
	if calls := dispatch.calls(); len(calls) != 1 || calls[0] != "lookup" {
		t.Errorf("expected one dispatch to lookup, got %v", calls)
	}
}

func TestExecute_ArgsAndOptionsForwarded(t *testing.T) {
	engine, err := New(Options{
		Tools:    StaticTools(),
		Dispatch: (&recordingDispatch{}).dispatch,
	})
	if err != nil {
		t.Fatal(err)
	}

	off := false
	result := engine.Execute(context.Background(),
		"console.log('quiet'); return n * 2",
		map[string]any{"n": 21},
		ExecuteOptions{CaptureOutput: &off},
	)
	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	if result.Value != int64(42) {
		t.Errorf("expected 42, got %v", result.Value)
	}
	if len(result.Output) != 0 {
		t.Errorf("expected capture disabled, got %v", result.Output)
	}
}

func TestExecute_ToolListingFailure(t *testing.T) {
	engine, err := New(Options{
		Tools:    failingSource{err: errors.New("registry down")},
		Dispatch: (&recordingDispatch{}).dispatch,
	})
	if err != nil {
		t.Fatal(err)
	}

	result := engine.Execute(context.Background(), "return 1", nil, ExecuteOptions{})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.State != sandbox.StateFailed {
		t.Errorf("expected StateFailed, got %q", result.State)
	}
	if !strings.Contains(result.Error, "registry down") {
		t.Errorf("expected listing error surfaced, got %q", result.Error)
	}
}

func TestGenerateAndExecute_RequiresGenerator(t *testing.T) {
	engine, err := New(Options{
		Tools:    StaticTools(),
		Dispatch: (&recordingDispatch{}).dispatch,
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = engine.GenerateAndExecute(context.Background(), "task", GenerateOptions{})
	if !errors.Is(err, ErrGeneratorRequired) {
		t.Errorf("expected ErrGeneratorRequired, got %v", err)
	}
}

func TestGenerateAndExecute_HappyPath(t *testing.T) {
	dispatch := &recordingDispatch{value: "pong"}
	gen := &scriptedGenerator{responses: []string{
		"```javascript\nreturn await tools.ping({});\n```",
	}}
	engine, err := New(Options{
		Tools: StaticTools(apigen.ToolDescriptor{
			Name:        "ping",
			Description: "Check liveness.",
		}),
		Dispatch:  dispatch.dispatch,
		Generator: gen,
	})
	if err != nil {
		t.Fatal(err)
	}

	result, err := engine.GenerateAndExecute(context.Background(), "ping the service", GenerateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Value != "pong" {
		t.Errorf("expected dispatched value, got %v", result.Value)
	}
	if result.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", result.Attempts)
	}
	if result.Code != "return await tools.ping({});" {
		t.Errorf("expected extracted code, got %q", result.Code)
	}

	calls := gen.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 generation call, got %d", len(calls))
	}
	if !strings.Contains(calls[0].Prompt, "function ping(") {
		t.Errorf("prompt missing generated interface: %q", calls[0].Prompt)
	}
	if !strings.Contains(calls[0].Prompt, "ping the service") {
		t.Errorf("prompt missing task: %q", calls[0].Prompt)
	}
}

func TestGenerateAndExecute_RepairsFailingCode(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"```js\nreturn await tools.nope({});\n```",
		"```js\nreturn 'recovered';\n```",
	}}
	engine, err := New(Options{
		Tools:     StaticTools(),
		Dispatch:  (&recordingDispatch{}).dispatch,
		Generator: gen,
	})
	if err != nil {
		t.Fatal(err)
	}

	result, err := engine.GenerateAndExecute(context.Background(), "task", GenerateOptions{MaxRetries: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Value != "recovered" {
		t.Errorf("expected repaired value, got %v", result.Value)
	}
	if result.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", result.Attempts)
	}
	calls := gen.calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 generation calls, got %d", len(calls))
	}
	if !strings.Contains(calls[1].Prompt, "tools.nope") {
		t.Errorf("repair prompt missing failing code: %q", calls[1].Prompt)
	}
}

func TestInterfaceText(t *testing.T) {
	engine, err := New(Options{
		Tools: StaticTools(apigen.ToolDescriptor{
			Name:        "get_user",
			Description: "Fetch a user.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{"type": "string"},
				},
				"required": []any{"id"},
			},
		}),
		Dispatch: (&recordingDispatch{}).dispatch,
	})
	if err != nil {
		t.Fatal(err)
	}

	text, err := engine.InterfaceText(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"declare namespace tools", "GetUserInput", "id: string;", "function get_user("} {
		if !strings.Contains(text, want) {
			t.Errorf("interface text missing %q:\n%s", want, text)
		}
	}
}

func TestInterfaceText_ListingFailure(t *testing.T) {
	engine, err := New(Options{
		Tools:    failingSource{err: errors.New("registry down")},
		Dispatch: (&recordingDispatch{}).dispatch,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := engine.InterfaceText(context.Background()); err == nil {
		t.Error("expected error from failing source")
	}
}

package engine_test

import (
	"context"
	"fmt"

	"github.com/mrorigo/mcp-orchestrator/apigen"
	"github.com/mrorigo/mcp-orchestrator/engine"
)

func Example() {
	tools := engine.StaticTools(apigen.ToolDescriptor{
		Name:        "add",
		Description: "Add two numbers.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []any{"a", "b"},
		},
	})
	dispatch := func(_ context.Context, name string, input map[string]any) (any, error) {
		a, _ := input["a"].(int64)
		b, _ := input["b"].(int64)
		return a + b, nil
	}

	eng, err := engine.New(engine.Options{Tools: tools, Dispatch: dispatch})
	if err != nil {
		panic(err)
	}

	result := eng.Execute(context.Background(),
		`const sum = await tools.add({ a: 2, b: 3 });
return sum;`, nil, engine.ExecuteOptions{})

	fmt.Println("success:", result.Success)
	fmt.Println("value:", result.Value)
	// Output:
	// success: true
	// value: 5
}

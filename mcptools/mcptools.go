// Package mcptools adapts an MCP client session to the engine's
// ToolSource/Dispatch boundary: session tools become descriptors, and
// dispatched calls become CallTool requests. The session's lifecycle
// (connection, reconnection, shutdown) stays with the caller.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mrorigo/mcp-orchestrator/apigen"
)

// Session is the slice of the MCP client session the adapter consumes.
// Satisfied by *mcp.ClientSession.
type Session interface {
	ListTools(ctx context.Context, params *mcp.ListToolsParams) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
}

// Adapter bridges one MCP session into the engine boundary.
type Adapter struct {
	session Session
}

// New creates an Adapter over the given session.
func New(session Session) *Adapter {
	return &Adapter{session: session}
}

// ListTools returns the session's tools as descriptors, following
// pagination cursors until the listing is complete.
func (a *Adapter) ListTools(ctx context.Context) ([]apigen.ToolDescriptor, error) {
	var descriptors []apigen.ToolDescriptor
	params := &mcp.ListToolsParams{}
	for {
		result, err := a.session.ListTools(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("mcptools: listing tools: %w", err)
		}
		for _, tool := range result.Tools {
			schema, err := coerceSchema(tool.InputSchema)
			if err != nil {
				return nil, fmt.Errorf("mcptools: tool %q input schema: %w", tool.Name, err)
			}
			descriptors = append(descriptors, apigen.ToolDescriptor{
				Name:        tool.Name,
				Description: tool.Description,
				InputSchema: schema,
			})
		}
		if result.NextCursor == "" {
			return descriptors, nil
		}
		params.Cursor = result.NextCursor
	}
}

// Dispatch forwards one tool call to the session. A result flagged
// IsError becomes a Go error, which propagates into generated code as
// an ordinary thrown error.
func (a *Adapter) Dispatch(ctx context.Context, name string, input map[string]any) (any, error) {
	result, err := a.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: input,
	})
	if err != nil {
		return nil, fmt.Errorf("mcptools: calling %q: %w", name, err)
	}
	if result.IsError {
		return nil, fmt.Errorf("tool %q failed: %s", name, contentText(result.Content))
	}
	if result.StructuredContent != nil {
		return result.StructuredContent, nil
	}
	return contentText(result.Content), nil
}

// coerceSchema normalizes the SDK's schema representation to the
// map shape the generator consumes.
func coerceSchema(schema any) (map[string]any, error) {
	switch s := schema.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return s, nil
	default:
		data, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		var out map[string]any
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// contentText flattens text content blocks into one string.
func contentText(content []mcp.Content) string {
	var parts []string
	for _, c := range content {
		if text, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}

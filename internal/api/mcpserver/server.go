// Package mcpserver exposes the tool registry over the Model Context Protocol,
// so MCP clients can call the same tools as the voice webhooks.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/tool"
	"github.com/matiasleandrokruk/voicedesk/internal/version"
	"github.com/matiasleandrokruk/voicedesk/pkg/uuid"
)

// toolCallIDPrefix marks audit rows that came in over MCP.
const toolCallIDPrefix = "mcp-"

// New builds an MCP server with one tool per registry entry.
func New(dispatcher *tool.Dispatcher) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: version.Name, Version: version.Version}, nil)
	for _, def := range dispatcher.Registry().Definitions() {
		mcp.AddTool(server, &mcp.Tool{
			Name:        def.Name,
			Description: describe(def),
		}, handlerFor(dispatcher, def.Name))
	}
	return server
}

// NewHandler serves server over streamable HTTP.
func NewHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}

func handlerFor(dispatcher *tool.Dispatcher, name string) mcp.ToolHandlerFor[map[string]any, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, any, error) {
		args, err := json.Marshal(input)
		if err != nil {
			return errorResult(fmt.Sprintf("encode arguments: %v", err)), nil, nil
		}
		req := &tool.Request{Message: tool.Message{ToolCalls: []tool.Call{{
			ID:       toolCallIDPrefix + uuid.NewV7().String(),
			Type:     "function",
			Function: tool.Function{Name: name, Arguments: args},
		}}}}

		resp, err := dispatcher.Dispatch(ctx, name, req)
		if err != nil {
			if ce, ok := tool.AsCallError(err); ok {
				return errorResult(fmt.Sprintf("%s: %s", ce.Kind, ce.Error())), nil, nil
			}
			return errorResult("internal server error"), nil, nil
		}

		out, err := json.Marshal(resp.Results[0].Result)
		if err != nil {
			return nil, nil, fmt.Errorf("mcpserver: encode %s result: %w", name, err)
		}
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(out)}}}, nil, nil
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// describe appends the JSON input schema so clients see required fields.
func describe(def tool.ToolDefinition) string {
	return fmt.Sprintf("%s. Arguments schema: %s", def.Description, def.InputSchema)
}

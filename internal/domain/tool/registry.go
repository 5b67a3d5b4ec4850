package tool

import (
	"encoding/json"
	"strings"
)

// Family groups tools by the shape of their response.
type Family string

const (
	FamilyCreate Family = "create"
	FamilyRead   Family = "read"
	FamilyUpdate Family = "update"
	FamilyDelete Family = "delete"
)

// ToolDefinition describes a tool to callers (HTTP listing, MCP, A2A).
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Path        string          `json:"path"`
	Family      Family          `json:"family"`
	RecordKind  string          `json:"recordKind"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type registeredTool struct {
	def      ToolDefinition
	executor ToolExecutor
}

// ToolRegistry maps tool names to executors. It is built once at startup
// and read concurrently afterwards.
type ToolRegistry struct {
	tools map[string]registeredTool
	order []string
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]registeredTool)}
}

func (r *ToolRegistry) Register(def ToolDefinition, executor ToolExecutor) error {
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" || executor == nil {
		return ErrToolExecutorNotRegistered
	}
	if _, exists := r.tools[def.Name]; exists {
		return ErrToolExecutorAlreadyRegistered
	}
	if len(def.InputSchema) == 0 {
		def.InputSchema = json.RawMessage(`{"type":"object","properties":{}}`)
	}
	r.tools[def.Name] = registeredTool{def: def, executor: executor}
	r.order = append(r.order, def.Name)
	return nil
}

func (r *ToolRegistry) Get(name string) (ToolExecutor, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, ErrToolExecutorNotRegistered
	}
	return t.executor, nil
}

// Definition returns the definition registered under name.
func (r *ToolRegistry) Definition(name string) (ToolDefinition, bool) {
	t, ok := r.tools[name]
	return t.def, ok
}

// Definitions lists every tool in registration order.
func (r *ToolRegistry) Definitions() []ToolDefinition {
	out := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].def)
	}
	return out
}

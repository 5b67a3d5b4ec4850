package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/tool"
)

type ToolHandler struct {
	registry *tool.ToolRegistry
}

func NewToolHandler(registry *tool.ToolRegistry) *ToolHandler {
	return &ToolHandler{registry: registry}
}

type toolResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Path        string          `json:"path"`
	Family      string          `json:"family"`
	RecordKind  string          `json:"recordKind"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	defs := h.registry.Definitions()
	out := make([]toolResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, toToolResponse(def))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out, "meta": map[string]int{"total": len(out)}})
}

func toToolResponse(def tool.ToolDefinition) toolResponse {
	return toolResponse{
		Name:        def.Name,
		Description: def.Description,
		Path:        def.Path,
		Family:      string(def.Family),
		RecordKind:  def.RecordKind,
		InputSchema: def.InputSchema,
	}
}

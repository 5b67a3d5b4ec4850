package handlers

import (
	"strings"

	"github.com/a2aproject/a2a-go/a2a"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/tool"
	"github.com/matiasleandrokruk/voicedesk/internal/version"
)

// NewAgentCard describes voicedesk to A2A clients: one skill per registered tool.
func NewAgentCard(defs []tool.ToolDefinition, publicURL string) *a2a.AgentCard {
	skills := make([]a2a.AgentSkill, 0, len(defs))
	for _, def := range defs {
		skills = append(skills, a2a.AgentSkill{
			ID:          def.Name,
			Name:        def.Name,
			Description: def.Description,
			Tags:        []string{def.RecordKind, string(def.Family)},
		})
	}
	return &a2a.AgentCard{
		Name:               version.Name,
		Description:        "Todo, reminder and calendar tools for voice assistants",
		URL:                strings.TrimRight(publicURL, "/"),
		Version:            version.Version,
		Capabilities:       a2a.AgentCapabilities{},
		DefaultInputModes:  []string{"application/json"},
		DefaultOutputModes: []string{"application/json"},
		Skills:             skills,
	}
}

package handlers

import (
	"testing"

	"github.com/matiasleandrokruk/voicedesk/internal/version"
)

func TestNewAgentCard(t *testing.T) {
	t.Parallel()

	defs := mustBuiltInRegistry(t).Definitions()
	card := NewAgentCard(defs, "https://voice.example.com/")

	if card.Name != version.Name {
		t.Errorf("Name = %q", card.Name)
	}
	if card.URL != "https://voice.example.com" {
		t.Errorf("URL = %q", card.URL)
	}
	if len(card.Skills) != len(defs) {
		t.Fatalf("len(Skills) = %d; want %d", len(card.Skills), len(defs))
	}
	if card.Skills[0].ID != defs[0].Name || len(card.Skills[0].Tags) != 2 {
		t.Errorf("first skill = %+v", card.Skills[0])
	}
}

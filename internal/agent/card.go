// Package agent holds the A2A agent card served at /.well-known/agent.json.
package agent

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

//go:embed agent.json
var rawAgentCard []byte

// AgentCardData is the validated card, set by LoadAgentCard.
var AgentCardData []byte

var (
	loadOnce sync.Once
	loadErr  error
)

// LoadAgentCard validates the embedded card once and exposes it through
// AgentCardData.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var card struct {
			Name   string            `json:"name"`
			URL    string            `json:"url"`
			Skills []json.RawMessage `json:"skills"`
		}
		if err := json.Unmarshal(rawAgentCard, &card); err != nil {
			loadErr = fmt.Errorf("failed to parse agent card: %w", err)
			return
		}
		if card.Name == "" || len(card.Skills) == 0 {
			loadErr = errors.New("agent card is missing a name or skills")
			return
		}
		AgentCardData = rawAgentCard
	})
	return loadErr
}

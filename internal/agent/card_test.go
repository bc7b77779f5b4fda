package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAgentCard(t *testing.T) {
	require.NoError(t, LoadAgentCard())
	require.NotEmpty(t, AgentCardData)

	var card map[string]any
	require.NoError(t, json.Unmarshal(AgentCardData, &card))
	assert.Equal(t, "Segment Persona Agent", card["name"])
	assert.NotEmpty(t, card["skills"])

	// Second call is a no-op.
	require.NoError(t, LoadAgentCard())
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversationSeedsSystemPrompt(t *testing.T) {
	c := NewConversation("s1", "eres un asistente")

	require.Len(t, c.Messages, 1)
	assert.Equal(t, RoleSystem, c.Messages[0].Role)
	assert.Equal(t, PhaseGreeting, c.Phase)
	assert.Equal(t, 0, c.TurnCount)
}

func TestTurnCountOnlyCountsUserMessages(t *testing.T) {
	c := NewConversation("s1", "prompt")

	c.AddUserMessage("hola")
	c.AddAssistantMessage("¡hola!")
	c.AddUserMessage("tengo una duda")

	assert.Equal(t, 2, c.TurnCount)
	assert.Len(t, c.Messages, 4)
}

func TestTransition(t *testing.T) {
	c := NewConversation("s1", "prompt")

	assert.True(t, c.Transition(PhaseDiscovery))
	assert.Equal(t, PhaseDiscovery, c.Phase)
	assert.Equal(t, []Phase{PhaseGreeting}, c.PhaseHistory)

	// same phase and invalid phases are no-ops
	assert.False(t, c.Transition(PhaseDiscovery))
	assert.False(t, c.Transition(Phase("limbo")))
	assert.Len(t, c.PhaseHistory, 1)
}

func TestReset(t *testing.T) {
	c := NewConversation("s1", "prompt")
	c.AddUserMessage("hola")
	c.AddAssistantMessage("¡hola!")
	c.Transition(PhaseDiscovery)

	c.Reset()

	require.Len(t, c.Messages, 1)
	assert.Equal(t, RoleSystem, c.Messages[0].Role)
	assert.Equal(t, PhaseGreeting, c.Phase)
	assert.Empty(t, c.PhaseHistory)
	assert.Equal(t, 0, c.TurnCount)
}

func TestLastMessages(t *testing.T) {
	c := NewConversation("s1", "prompt")
	c.AddUserMessage("uno")
	c.AddUserMessage("dos")
	c.AddUserMessage("tres")

	last := c.LastMessages(2)
	require.Len(t, last, 2)
	assert.Equal(t, "dos", last[0].Content)
	assert.Equal(t, "tres", last[1].Content)

	assert.Len(t, c.LastMessages(100), 4)
}

func TestSummarize(t *testing.T) {
	c := NewConversation("s1", "prompt")
	c.AddUserMessage("hola")
	c.AddAssistantMessage("¡hola!")
	c.Transition(PhaseDiscovery)

	s := c.Summarize()
	assert.Equal(t, "s1", s.SessionID)
	assert.Equal(t, 1, s.TotalTurns)
	assert.Equal(t, PhaseDiscovery, s.CurrentPhase)
	assert.Equal(t, 1, s.UserMessages)
	assert.Equal(t, 1, s.AssistantMessages)
}

func TestProfileDedup(t *testing.T) {
	p := NewProfile()

	assert.True(t, p.AddObjection(ObjectionPrice))
	assert.False(t, p.AddObjection(ObjectionPrice))
	assert.True(t, p.HasObjection(ObjectionPrice))

	p.AddInterest("agente_citas")
	p.AddInterest("agente_citas")
	assert.Len(t, p.InterestedProducts, 1)
}

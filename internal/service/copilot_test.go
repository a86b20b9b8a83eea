package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qorax-ai/sales-agent-platform/internal/catalog"
	"github.com/qorax-ai/sales-agent-platform/internal/interpret"
	"github.com/qorax-ai/sales-agent-platform/internal/model"
	"github.com/qorax-ai/sales-agent-platform/internal/profile"
	"github.com/qorax-ai/sales-agent-platform/internal/session"
	"github.com/qorax-ai/sales-agent-platform/pkg/logger"
)

func newCopilot(t *testing.T) *CopilotService {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)

	store := session.NewStore(time.Hour, log)
	t.Cleanup(store.Close)

	return NewCopilotService(store, interpret.NewInterpreter(), profile.NewProfiler(), catalog.New(), log)
}

func TestCopilotCreatesSessionOnFirstUse(t *testing.T) {
	c := newCopilot(t)

	advice, err := c.Analyze(context.Background(), "cop-1", "hola, busco información")
	require.NoError(t, err)

	assert.Equal(t, model.PhaseGreeting, advice.Phase)
	assert.NotEmpty(t, advice.Suggestions)
}

func TestCopilotPhaseFollowsProfile(t *testing.T) {
	c := newCopilot(t)
	ctx := context.Background()

	advice, err := c.Analyze(ctx, "cop-2", "tiene una clínica dental")
	require.NoError(t, err)
	assert.Equal(t, model.PhaseDiscovery, advice.Phase)

	advice, err = c.Analyze(ctx, "cop-2", "le interesan las citas automáticas")
	require.NoError(t, err)
	assert.Equal(t, model.PhaseQualification, advice.Phase)
	assert.Contains(t, advice.Profile.InterestedProducts, "agente_citas")
}

func TestCopilotObjectionsDrivePhaseAndSuggestions(t *testing.T) {
	c := newCopilot(t)
	ctx := context.Background()

	_, err := c.Analyze(ctx, "cop-3", "tiene un restaurante")
	require.NoError(t, err)

	advice, err := c.Analyze(ctx, "cop-3", "dice que le parece muy caro")
	require.NoError(t, err)

	assert.Equal(t, model.PhaseObjectionHandling, advice.Phase)
	require.NotEmpty(t, advice.Suggestions)
	assert.Contains(t, advice.Suggestions[0], "precio")
}

func TestCopilotCloseSignal(t *testing.T) {
	c := newCopilot(t)

	advice, err := c.Analyze(context.Background(), "cop-4", "el cliente dice que sí, quiere agendar")
	require.NoError(t, err)

	assert.Equal(t, model.PhaseClosing, advice.Phase)
	assert.Contains(t, advice.Suggestions[0], "correo")
}

func TestCopilotAnalysisListsFacts(t *testing.T) {
	c := newCopilot(t)

	advice, err := c.Analyze(context.Background(), "cop-5", "tiene una tienda y lo necesita urgente")
	require.NoError(t, err)

	assert.Contains(t, advice.Analysis, "Giro detectado: retail")
	assert.Contains(t, advice.Analysis, "Urgencia: high")
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qorax-ai/sales-agent-platform/internal/catalog"
	"github.com/qorax-ai/sales-agent-platform/internal/dialogue"
	"github.com/qorax-ai/sales-agent-platform/internal/interpret"
	"github.com/qorax-ai/sales-agent-platform/internal/model"
	"github.com/qorax-ai/sales-agent-platform/internal/profile"
	"github.com/qorax-ai/sales-agent-platform/internal/response"
	"github.com/qorax-ai/sales-agent-platform/internal/session"
	"github.com/qorax-ai/sales-agent-platform/pkg/logger"
)

type recordingCRM struct {
	mu      sync.Mutex
	created []model.Lead
	updated []model.Lead
}

func (r *recordingCRM) CreateLead(_ context.Context, lead *model.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, *lead)
	return nil
}

func (r *recordingCRM) UpdateLead(_ context.Context, lead *model.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, *lead)
	return nil
}

func (r *recordingCRM) GetLead(context.Context, string) (*model.Lead, error) { return nil, nil }
func (r *recordingCRM) ListLeads(context.Context, int, int) ([]model.Lead, int, error) {
	return nil, 0, nil
}
func (r *recordingCRM) AddNote(context.Context, *model.LeadNote) error { return nil }

type recordingNotifier struct {
	mu       sync.Mutex
	welcomes int
	alerts   int
}

func (r *recordingNotifier) SendWelcome(context.Context, *model.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.welcomes++
	return nil
}

func (r *recordingNotifier) NotifySalesTeam(context.Context, *model.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts++
	return nil
}

func (r *recordingNotifier) welcomeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.welcomes
}

type recordingBus struct {
	mu     sync.Mutex
	events []model.ConversationEvent
}

func (r *recordingBus) Publish(_ context.Context, e *model.ConversationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

func (r *recordingBus) Close() {}

func (r *recordingBus) typesSeen() map[model.EventType]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[model.EventType]int)
	for _, e := range r.events {
		seen[e.Type]++
	}
	return seen
}

type agentFixture struct {
	svc      *AgentService
	store    *session.Store
	crm      *recordingCRM
	notifier *recordingNotifier
	bus      *recordingBus
}

func newAgentFixture(t *testing.T) *agentFixture {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)

	store := session.NewStore(time.Hour, log)
	t.Cleanup(store.Close)

	inter := interpret.NewInterpreter()
	cat := catalog.New()
	f := &agentFixture{
		store:    store,
		crm:      &recordingCRM{},
		notifier: &recordingNotifier{},
		bus:      &recordingBus{},
	}
	f.svc = NewAgentService(
		AgentConfig{},
		store,
		inter,
		profile.NewProfiler(),
		dialogue.NewLadder(),
		response.NewSelector(cat, inter),
		nil,
		f.crm,
		f.notifier,
		f.bus,
		log,
	)
	return f
}

func (f *agentFixture) start(t *testing.T) string {
	t.Helper()
	resp, err := f.svc.StartSession(context.Background())
	require.NoError(t, err)
	return resp.SessionID
}

func TestStartSessionGreets(t *testing.T) {
	f := newAgentFixture(t)

	resp, err := f.svc.StartSession(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, model.PhaseGreeting, resp.Phase)
	assert.Equal(t, response.GreetingMessage, resp.Greeting)
}

func TestRestaurantOpenerMovesToDiscovery(t *testing.T) {
	f := newAgentFixture(t)
	id := f.start(t)

	resp, err := f.svc.ProcessMessage(context.Background(), id, "Hola, tengo un restaurante")
	require.NoError(t, err)

	assert.Equal(t, string(model.PhaseDiscovery), resp.Phase)
	assert.Equal(t, 1, resp.TurnCount)

	prof, err := f.svc.Profile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "gastronomia", prof.Industry)
}

func TestPriceInquiryMidConversation(t *testing.T) {
	f := newAgentFixture(t)
	id := f.start(t)
	ctx := context.Background()

	for _, msg := range []string{
		"Hola, tengo un restaurante",
		"pierdo clientes porque no contesto el teléfono",
		"sobre todo por la noche",
	} {
		_, err := f.svc.ProcessMessage(ctx, id, msg)
		require.NoError(t, err)
	}

	resp, err := f.svc.ProcessMessage(ctx, id, "¿y cuánto cuesta?")
	require.NoError(t, err)

	assert.Equal(t, string(interpret.IntentPriceInquiry), resp.Intent)
	assert.Equal(t, string(model.PhaseObjectionHandling), resp.Phase)
}

func TestLeadCapturedOnceAndUpdated(t *testing.T) {
	f := newAgentFixture(t)
	id := f.start(t)
	ctx := context.Background()

	_, err := f.svc.ProcessMessage(ctx, id, "me llamo Ana, mi correo es ana@cafe.mx")
	require.NoError(t, err)

	f.crm.mu.Lock()
	created := len(f.crm.created)
	f.crm.mu.Unlock()
	require.Equal(t, 1, created)

	_, err = f.svc.ProcessMessage(ctx, id, "y mi teléfono es +52 55 1234 5678")
	require.NoError(t, err)

	f.crm.mu.Lock()
	defer f.crm.mu.Unlock()
	assert.Len(t, f.crm.created, 1)
	require.NotEmpty(t, f.crm.updated)
	assert.Equal(t, "+525512345678", f.crm.updated[len(f.crm.updated)-1].Phone)
}

func TestWelcomeEmailFiresOnce(t *testing.T) {
	f := newAgentFixture(t)
	id := f.start(t)
	ctx := context.Background()

	_, err := f.svc.ProcessMessage(ctx, id, "mi correo es ana@cafe.mx")
	require.NoError(t, err)
	_, err = f.svc.ProcessMessage(ctx, id, "les repito, es ana@cafe.mx")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return f.notifier.welcomeCount() == 1 },
		time.Second, 10*time.Millisecond)

	// a later turn with the email already captured must not resend
	_, err = f.svc.ProcessMessage(ctx, id, "perfecto, gracias")
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, f.notifier.welcomeCount())
}

func TestEventsPublished(t *testing.T) {
	f := newAgentFixture(t)
	id := f.start(t)
	ctx := context.Background()

	_, err := f.svc.ProcessMessage(ctx, id, "tengo una tienda pero me parece muy caro")
	require.NoError(t, err)

	_, err = f.svc.EndSession(ctx, id)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		seen := f.bus.typesSeen()
		return seen[model.EventConversationStarted] == 1 &&
			seen[model.EventObjectionDetected] == 1 &&
			seen[model.EventPhaseChanged] >= 1 &&
			seen[model.EventConversationEnded] == 1
	}, time.Second, 10*time.Millisecond)
}

func TestEndSessionRemovesSession(t *testing.T) {
	f := newAgentFixture(t)
	id := f.start(t)
	ctx := context.Background()

	resp, err := f.svc.EndSession(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Farewell)

	_, err = f.svc.ProcessMessage(ctx, id, "hola?")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestResetClearsState(t *testing.T) {
	f := newAgentFixture(t)
	id := f.start(t)
	ctx := context.Background()

	_, err := f.svc.ProcessMessage(ctx, id, "tengo un restaurante, mi correo es ana@cafe.mx")
	require.NoError(t, err)

	require.NoError(t, f.svc.Reset(ctx, id))

	prof, err := f.svc.Profile(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, prof.Industry)
	assert.Empty(t, prof.Email)

	summary, err := f.svc.Summary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalTurns)
	assert.Equal(t, model.PhaseGreeting, summary.CurrentPhase)
}

func TestCloseSignalForcesClosing(t *testing.T) {
	f := newAgentFixture(t)
	id := f.start(t)

	resp, err := f.svc.ProcessMessage(context.Background(), id, "el cliente dice que sí, quiere contratar")
	require.NoError(t, err)
	assert.Equal(t, string(model.PhaseClosing), resp.Phase)
}

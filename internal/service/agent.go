// Package service implements the conversation pipelines: the customer
// facing agent and the seller copilot.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qorax-ai/sales-agent-platform/internal/crm"
	"github.com/qorax-ai/sales-agent-platform/internal/dialogue"
	"github.com/qorax-ai/sales-agent-platform/internal/events"
	"github.com/qorax-ai/sales-agent-platform/internal/interpret"
	"github.com/qorax-ai/sales-agent-platform/internal/llm"
	"github.com/qorax-ai/sales-agent-platform/internal/model"
	"github.com/qorax-ai/sales-agent-platform/internal/notify"
	"github.com/qorax-ai/sales-agent-platform/internal/profile"
	"github.com/qorax-ai/sales-agent-platform/internal/response"
	"github.com/qorax-ai/sales-agent-platform/internal/session"
	"github.com/qorax-ai/sales-agent-platform/pkg/logger"
	"github.com/qorax-ai/sales-agent-platform/pkg/metrics"
)

const qualifiedThreshold = 70

// AgentConfig tunes the agent pipeline.
type AgentConfig struct {
	// UseLLM switches reply generation to the LLM, with the canned
	// templates as fallback. When false (or no client is configured)
	// replies come from templates only.
	UseLLM bool

	// LLMModel overrides the provider default model.
	LLMModel string

	// HistoryWindow caps how many trailing messages are sent to the LLM.
	HistoryWindow int
}

// AgentService runs the customer-facing conversation pipeline.
type AgentService struct {
	cfg       AgentConfig
	sessions  session.Repository
	inter     *interpret.Interpreter
	profiler  *profile.Profiler
	control   dialogue.Controller
	selector  *response.Selector
	llmClient llm.Client
	crm       crm.CRM
	notifier  notify.Notifier
	bus       events.Bus
	logger    *logger.Logger
}

// NewAgentService wires the pipeline. llmClient may be nil.
func NewAgentService(
	cfg AgentConfig,
	sessions session.Repository,
	inter *interpret.Interpreter,
	profiler *profile.Profiler,
	control dialogue.Controller,
	selector *response.Selector,
	llmClient llm.Client,
	leadSink crm.CRM,
	notifier notify.Notifier,
	bus events.Bus,
	log *logger.Logger,
) *AgentService {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 12
	}
	return &AgentService{
		cfg:       cfg,
		sessions:  sessions,
		inter:     inter,
		profiler:  profiler,
		control:   control,
		selector:  selector,
		llmClient: llmClient,
		crm:       leadSink,
		notifier:  notifier,
		bus:       bus,
		logger:    log,
	}
}

// StartSessionResponse is the result of opening a new session.
type StartSessionResponse struct {
	SessionID string      `json:"session_id"`
	Greeting  string      `json:"greeting"`
	Phase     model.Phase `json:"phase"`
}

// StartSession opens a new conversation and returns the scripted greeting.
func (s *AgentService) StartSession(ctx context.Context) (*StartSessionResponse, error) {
	sessionID := uuid.Must(uuid.NewV7()).String()

	conv := model.NewConversation(sessionID, response.SystemPrompt)
	conv.AddAssistantMessage(response.GreetingMessage)

	sess := &session.Session{
		Conversation: conv,
		Profile:      model.NewProfile(),
	}
	if err := s.sessions.Put(ctx, sessionID, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	metrics.SessionsActive.Inc()
	s.publish(sessionID, model.EventConversationStarted, nil)
	s.logger.Info("session started", zap.String("session_id", sessionID))

	return &StartSessionResponse{
		SessionID: sessionID,
		Greeting:  response.GreetingMessage,
		Phase:     conv.Phase,
	}, nil
}

// ProcessMessage runs one conversation turn.
func (s *AgentService) ProcessMessage(ctx context.Context, sessionID, content string) (*model.SendMessageResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	conv := sess.Conversation
	prof := sess.Profile
	conv.AddUserMessage(content)

	intent, confidence := s.inter.DetectIntent(content)
	metrics.IntentsDetected.WithLabelValues(string(intent)).Inc()

	newObjections := s.profiler.Update(prof, content)
	for _, objection := range newObjections {
		metrics.ObjectionsDetected.WithLabelValues(objection).Inc()
		s.publish(sessionID, model.EventObjectionDetected, map[string]any{
			"category": objection,
			"phase":    string(conv.Phase),
		})
	}

	s.captureLead(ctx, sessionID, sess)

	closeSignal := s.inter.IsCloseSignal(content)
	next := s.control.Next(conv.Phase, dialogue.Input{
		TurnCount:   conv.TurnCount,
		HistoryLen:  len(conv.Messages),
		Profile:     prof,
		CloseSignal: closeSignal,
	})
	s.transition(sessionID, conv, next)

	sel := s.selector.Select(conv.Phase, content, prof, conv.TurnCount)
	reply := sel.Text
	if s.cfg.UseLLM && s.llmClient != nil {
		if generated, err := s.generate(ctx, conv, prof); err != nil {
			s.logger.Warn("LLM completion failed, using template reply",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		} else if generated != "" {
			reply = generated
		}
	}
	s.transition(sessionID, conv, sel.Next)

	if conv.Phase == model.PhaseClosing && mentionsDemo(content) {
		s.publish(sessionID, model.EventDemoRequested, map[string]any{
			"turn": conv.TurnCount,
		})
	}

	conv.AddAssistantMessage(reply)
	if err := s.sessions.Put(ctx, sessionID, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	metrics.MessagesProcessed.WithLabelValues(string(conv.Phase)).Inc()
	s.logger.Debug("turn processed",
		zap.String("session_id", sessionID),
		zap.String("intent", string(intent)),
		zap.String("phase", string(conv.Phase)),
		zap.Int("turn", conv.TurnCount),
	)

	return &model.SendMessageResponse{
		Reply:      reply,
		Phase:      string(conv.Phase),
		Intent:     string(intent),
		Confidence: confidence,
		TurnCount:  conv.TurnCount,
	}, nil
}

func (s *AgentService) transition(sessionID string, conv *model.Conversation, next model.Phase) {
	from := conv.Phase
	if !conv.Transition(next) {
		return
	}
	metrics.PhaseTransitions.WithLabelValues(string(from), string(next)).Inc()
	s.publish(sessionID, model.EventPhaseChanged, map[string]any{
		"from": string(from),
		"to":   string(next),
	})
}

// captureLead creates or updates the CRM lead for the session. A lead
// exists once a contact field is captured; the welcome email fires exactly
// once, on the turn the email address first appears.
func (s *AgentService) captureLead(ctx context.Context, sessionID string, sess *session.Session) {
	prof := sess.Profile
	if prof.Email == "" && prof.Phone == "" {
		return
	}

	lead := leadFromProfile(sessionID, prof)

	if sess.LeadID == "" {
		lead.ID = uuid.Must(uuid.NewV7()).String()
		if err := s.crm.CreateLead(ctx, lead); err != nil {
			s.logger.Error("create lead failed", zap.String("session_id", sessionID), zap.Error(err))
			return
		}
		sess.LeadID = lead.ID
		metrics.LeadsCaptured.WithLabelValues(string(lead.Status)).Inc()
		s.publish(sessionID, model.EventLeadCreated, map[string]any{
			"lead_id":             lead.ID,
			"qualification_score": lead.QualificationScore,
		})
		s.dispatch(func(ctx context.Context) error { return s.notifier.NotifySalesTeam(ctx, lead) })
	} else {
		lead.ID = sess.LeadID
		if err := s.crm.UpdateLead(ctx, lead); err != nil {
			s.logger.Error("update lead failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	if lead.Status == model.LeadStatusQualified && !sess.Qualified {
		sess.Qualified = true
		s.publish(sessionID, model.EventLeadQualified, map[string]any{
			"lead_id":             lead.ID,
			"qualification_score": lead.QualificationScore,
		})
	}

	if prof.Email != "" && !sess.WelcomeSent {
		sess.WelcomeSent = true
		s.dispatch(func(ctx context.Context) error { return s.notifier.SendWelcome(ctx, lead) })
	}
}

func leadFromProfile(sessionID string, prof *model.Profile) *model.Lead {
	status := model.LeadStatusNew
	if prof.QualificationScore >= qualifiedThreshold {
		status = model.LeadStatusQualified
	}
	return &model.Lead{
		SessionID:          sessionID,
		Status:             status,
		Name:               prof.Name,
		Email:              prof.Email,
		Phone:              prof.Phone,
		Company:            prof.Company,
		Industry:           prof.Industry,
		CustomerType:       prof.CustomerType,
		Urgency:            prof.Urgency,
		EngagementScore:    prof.EngagementScore,
		QualificationScore: prof.QualificationScore,
		Objections:         append([]string(nil), prof.Objections...),
		Interests:          append([]string(nil), prof.InterestedProducts...),
	}
}

// generate asks the LLM for a reply grounded in the phase prompt and the
// trailing history window.
func (s *AgentService) generate(ctx context.Context, conv *model.Conversation, prof *model.Profile) (string, error) {
	start := time.Now()

	var msgs []llm.ChatMessage
	for _, m := range conv.LastMessages(s.cfg.HistoryWindow) {
		if m.Role == model.RoleSystem {
			continue
		}
		msgs = append(msgs, llm.ChatMessage{Role: string(m.Role), Content: m.Content})
	}

	resp, err := s.llmClient.Complete(ctx, &llm.CompletionRequest{
		Model:       s.cfg.LLMModel,
		System:      response.BuildPrompt(conv.Phase, prof),
		Messages:    msgs,
		Temperature: 0.7,
	})
	if err != nil {
		metrics.LLMCompletionDuration.WithLabelValues(s.cfg.LLMModel, "error").Observe(time.Since(start).Seconds())
		return "", err
	}

	metrics.LLMCompletionDuration.WithLabelValues(resp.Model, "ok").Observe(time.Since(start).Seconds())
	metrics.LLMTokensTotal.WithLabelValues(resp.Model, "in").Add(float64(resp.TokensIn))
	metrics.LLMTokensTotal.WithLabelValues(resp.Model, "out").Add(float64(resp.TokensOut))
	return strings.TrimSpace(resp.Content), nil
}

// EndSessionResponse is the result of closing a session.
type EndSessionResponse struct {
	Farewell string                    `json:"farewell"`
	Summary  model.ConversationSummary `json:"summary"`
}

const farewellMessage = "¡Gracias por tu tiempo! 👋 Quedamos en contacto. Si te queda cualquier duda, aquí estaré."

// EndSession closes the conversation, publishes the final summary and
// removes the session from the store.
func (s *AgentService) EndSession(ctx context.Context, sessionID string) (*EndSessionResponse, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := s.summarize(sess)
	s.publish(sessionID, model.EventConversationEnded, map[string]any{
		"turns":               summary.TotalTurns,
		"final_phase":         string(summary.CurrentPhase),
		"qualification_score": summary.QualificationScore,
	})

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	metrics.SessionsActive.Dec()
	s.logger.Info("session ended",
		zap.String("session_id", sessionID),
		zap.Int("turns", summary.TotalTurns),
	)

	return &EndSessionResponse{Farewell: farewellMessage, Summary: summary}, nil
}

// Reset wipes the conversation and profile back to the initial state while
// keeping the session id.
func (s *AgentService) Reset(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.Conversation.Reset()
	sess.Profile = model.NewProfile()
	sess.LeadID = ""
	sess.WelcomeSent = false
	return s.sessions.Put(ctx, sessionID, sess)
}

// Summary returns the current conversation digest.
func (s *AgentService) Summary(ctx context.Context, sessionID string) (*model.ConversationSummary, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary := s.summarize(sess)
	return &summary, nil
}

// Profile returns the profile built so far for the session.
func (s *AgentService) Profile(ctx context.Context, sessionID string) (*model.Profile, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Profile, nil
}

// History returns the trailing messages of the session, excluding the
// system prompt.
func (s *AgentService) History(ctx context.Context, sessionID string, limit int) ([]model.Message, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	var out []model.Message
	for _, m := range sess.Conversation.LastMessages(limit + 1) {
		if m.Role == model.RoleSystem {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *AgentService) summarize(sess *session.Session) model.ConversationSummary {
	summary := sess.Conversation.Summarize()
	summary.EngagementScore = sess.Profile.EngagementScore
	summary.QualificationScore = sess.Profile.QualificationScore
	return summary
}

// publish emits an event without blocking the turn; bus failures are
// logged and dropped.
func (s *AgentService) publish(sessionID string, eventType model.EventType, data map[string]any) {
	event := events.NewEvent(sessionID, eventType, data)
	s.dispatch(func(ctx context.Context) error { return s.bus.Publish(ctx, event) })
}

// dispatch runs fn in the background with its own timeout. Used for every
// side effect that must not delay or fail the conversation turn.
func (s *AgentService) dispatch(fn func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.logger.Warn("background dispatch failed", zap.Error(err))
		}
	}()
}

func mentionsDemo(message string) bool {
	normalized := interpret.Normalize(message)
	return strings.Contains(normalized, "demo") || strings.Contains(normalized, "prueba")
}

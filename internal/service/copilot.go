package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/qorax-ai/sales-agent-platform/internal/catalog"
	"github.com/qorax-ai/sales-agent-platform/internal/dialogue"
	"github.com/qorax-ai/sales-agent-platform/internal/interpret"
	"github.com/qorax-ai/sales-agent-platform/internal/model"
	"github.com/qorax-ai/sales-agent-platform/internal/profile"
	"github.com/qorax-ai/sales-agent-platform/internal/session"
	"github.com/qorax-ai/sales-agent-platform/pkg/logger"
)

// CopilotAdvice is what the seller sees after pasting a customer message:
// the detected state plus ready-to-send reply suggestions.
type CopilotAdvice struct {
	Phase       model.Phase      `json:"phase"`
	Intent      interpret.Intent `json:"intent,omitempty"`
	Analysis    []string         `json:"analysis"`
	Suggestions []string         `json:"suggestions"`
	Profile     *model.Profile   `json:"profile"`
}

// CopilotService assists a human seller: the seller pastes what their
// customer said and gets back the detected phase, profile facts and reply
// suggestions. Unlike the agent, the phase is recomputed from the profile
// on every message, so pasting messages out of order still works.
type CopilotService struct {
	sessions session.Repository
	inter    *interpret.Interpreter
	profiler *profile.Profiler
	control  dialogue.Controller
	catalog  *catalog.Catalog
	logger   *logger.Logger
}

func NewCopilotService(
	sessions session.Repository,
	inter *interpret.Interpreter,
	profiler *profile.Profiler,
	cat *catalog.Catalog,
	log *logger.Logger,
) *CopilotService {
	return &CopilotService{
		sessions: sessions,
		inter:    inter,
		profiler: profiler,
		control:  dialogue.NewProfileDriven(),
		catalog:  cat,
		logger:   log,
	}
}

// interestRules map what the customer talks about to catalog products.
var interestRules = []struct {
	productID string
	keywords  []string
}{
	{"agente_whatsapp", []string{"whatsapp", "wa business", "mensajes de whats"}},
	{"agente_citas", []string{"citas", "reservas", "agendar", "agenda", "turnos"}},
	{"agente_ventas", []string{"ventas", "leads", "prospectos", "cotizaciones", "vender mas"}},
	{"agente_basico", []string{"pagina web", "sitio web", "preguntas frecuentes", "faq"}},
	{"agente_personalizado", []string{"a medida", "personalizado", "integracion", "mi sistema", "algo especifico"}},
}

// Analyze processes one pasted customer message for the given copilot
// session, creating the session on first use.
func (s *CopilotService) Analyze(ctx context.Context, sessionID, customerMessage string) (*CopilotAdvice, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		sess = &session.Session{
			Conversation: model.NewConversation(sessionID, "copilot"),
			Profile:      model.NewProfile(),
		}
	} else if err != nil {
		return nil, err
	}

	conv := sess.Conversation
	prof := sess.Profile
	conv.AddUserMessage(customerMessage)

	intent, _ := s.inter.DetectIntent(customerMessage)
	s.profiler.Update(prof, customerMessage)
	s.detectInterests(prof, customerMessage)

	next := s.control.Next(conv.Phase, dialogue.Input{
		TurnCount:   conv.TurnCount,
		HistoryLen:  len(conv.Messages),
		Profile:     prof,
		CloseSignal: s.inter.IsCloseSignal(customerMessage),
	})
	conv.Transition(next)

	if err := s.sessions.Put(ctx, sessionID, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	advice := &CopilotAdvice{
		Phase:       conv.Phase,
		Intent:      intent,
		Analysis:    s.buildAnalysis(prof, intent),
		Suggestions: s.buildSuggestions(conv.Phase, prof),
		Profile:     prof,
	}

	s.logger.Debug("copilot advice",
		zap.String("session_id", sessionID),
		zap.String("phase", string(conv.Phase)),
		zap.String("intent", string(intent)),
	)
	return advice, nil
}

func (s *CopilotService) detectInterests(prof *model.Profile, message string) {
	normalized := interpret.Normalize(message)
	for _, rule := range interestRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				prof.AddInterest(rule.productID)
				break
			}
		}
	}
}

func (s *CopilotService) buildAnalysis(prof *model.Profile, intent interpret.Intent) []string {
	var analysis []string
	if prof.Industry != "" {
		analysis = append(analysis, fmt.Sprintf("Giro detectado: %s", prof.Industry))
	}
	if prof.CustomerType != model.CustomerUnknown {
		analysis = append(analysis, fmt.Sprintf("Tipo de cliente: %s", prof.CustomerType))
	}
	if prof.Urgency != model.UrgencyUnknown {
		analysis = append(analysis, fmt.Sprintf("Urgencia: %s", prof.Urgency))
	}
	for _, o := range prof.Objections {
		analysis = append(analysis, fmt.Sprintf("Objeción activa: %s", o))
	}
	if intent != interpret.IntentUnknown {
		analysis = append(analysis, fmt.Sprintf("Última intención: %s", intent))
	}
	analysis = append(analysis, fmt.Sprintf("Calificación del lead: %.0f/100", prof.QualificationScore))
	return analysis
}

func (s *CopilotService) buildSuggestions(phase model.Phase, prof *model.Profile) []string {
	switch phase {
	case model.PhaseGreeting:
		return []string{
			"Preséntate y pregunta a qué se dedica su negocio.",
			"Pregunta por dónde lo contactan más sus clientes: WhatsApp, teléfono o redes.",
		}
	case model.PhaseDiscovery:
		return []string{
			"Pregunta qué parte de la atención a clientes le quita más tiempo.",
			"Pide un ejemplo reciente de un cliente que se perdió por no responder a tiempo.",
		}
	case model.PhaseQualification:
		return []string{
			"Pregunta cuántas consultas recibe al día y quién las responde hoy.",
			"Pregunta qué tan pronto quiere tenerlo funcionando.",
		}
	case model.PhasePresentation:
		suggestions := make([]string, 0, 3)
		for i, p := range s.catalog.ProductsForIndustry(prof.Industry) {
			suggestions = append(suggestions, fmt.Sprintf(
				"Opción %d: presenta el %s (%s, listo en %s).",
				i+1, p.Name, p.PriceDescriptor, p.ImplementationTime,
			))
		}
		return suggestions
	case model.PhaseObjectionHandling:
		return s.objectionSuggestions(prof)
	case model.PhaseClosing:
		return []string{
			"Pide nombre, correo y teléfono para mandar la propuesta hoy mismo.",
			"Ofrece dos horarios concretos para la demo: mañana o tarde.",
		}
	case model.PhaseFollowUp:
		return []string{
			"Agradece su tiempo y ofrece enviarle la propuesta por correo.",
			"Acuerda una fecha concreta para retomar la conversación.",
		}
	default:
		return nil
	}
}

func (s *CopilotService) objectionSuggestions(prof *model.Profile) []string {
	byCategory := map[string]string{
		model.ObjectionPrice:       "Reencuadra el precio: pregunta cuánto le cuesta cada cliente que se va sin respuesta.",
		model.ObjectionTime:        "Aclara que la implementación la hace el equipo y a él solo le toma una llamada de 30 minutos.",
		model.ObjectionTrust:       "Ofrece referencias de clientes reales y un periodo de prueba sin compromiso.",
		model.ObjectionTechnical:   "Explica que no necesita saber de tecnología: el agente llega configurado y funcionando.",
		model.ObjectionCompetition: "Pregunta qué le falta a su proveedor actual y posiciona la diferencia, sin atacarlo.",
		model.ObjectionIndecision:  "Baja la presión: propone una demo corta de 15 minutos antes de cualquier decisión.",
	}
	var suggestions []string
	for _, o := range prof.Objections {
		if text, ok := byCategory[o]; ok {
			suggestions = append(suggestions, text)
		}
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Responde la duda con un ejemplo concreto y redirige hacia la demo.")
	}
	return suggestions
}

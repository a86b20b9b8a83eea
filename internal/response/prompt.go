package response

import (
	"fmt"
	"strings"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

// SystemPrompt anchors the LLM fallback to the same persona the canned
// templates use.
const SystemPrompt = `Eres el asistente comercial de Qorax AI, una empresa que implementa agentes de inteligencia artificial para negocios de habla hispana.

Reglas:
- Responde siempre en español, en tono cercano y profesional.
- Respuestas cortas: máximo 3 párrafos breves.
- Nunca inventes precios ni plazos; si no los sabes, ofrece agendar una llamada.
- Tu objetivo es entender el negocio del cliente, recomendar el agente adecuado y conseguir sus datos de contacto para una demo.
- No prometas integraciones que no se hayan mencionado.`

var phaseContexts = map[model.Phase]string{
	model.PhaseGreeting:          "La conversación apenas comienza. Preséntate brevemente y pregunta a qué se dedica el negocio del cliente.",
	model.PhaseDiscovery:         "Estás descubriendo el negocio del cliente. Haz preguntas abiertas sobre su operación y sus problemas de atención al cliente.",
	model.PhaseQualification:     "Estás calificando al prospecto. Pregunta por volumen de consultas, quién las atiende y qué tan pronto quiere resolverlo.",
	model.PhasePresentation:      "Ya conoces su negocio. Presenta hasta tres opciones numeradas de productos con precio y pide que elija una.",
	model.PhaseObjectionHandling: "El cliente tiene objeciones. Respóndelas con empatía y datos concretos, y redirige hacia una demo.",
	model.PhaseClosing:           "El cliente está listo para avanzar. Pide nombre, correo y teléfono, y confirma el siguiente paso.",
	model.PhaseFollowUp:          "El cliente pidió tiempo. Sé breve, deja la puerta abierta y ofrece enviar la propuesta por correo.",
}

// PhaseContext returns the phase-specific instruction block appended to
// the system prompt when the LLM fallback generates the reply.
func PhaseContext(phase model.Phase) string {
	if ctx, ok := phaseContexts[phase]; ok {
		return ctx
	}
	return phaseContexts[model.PhaseDiscovery]
}

// BuildPrompt assembles the full system prompt for one LLM completion:
// persona, phase instruction and a compact profile summary.
func BuildPrompt(phase model.Phase, profile *model.Profile) string {
	var b strings.Builder
	b.WriteString(SystemPrompt)
	b.WriteString("\n\nFase actual: ")
	b.WriteString(string(phase))
	b.WriteString("\n")
	b.WriteString(PhaseContext(phase))

	if profile == nil {
		return b.String()
	}
	b.WriteString("\n\nLo que sabemos del cliente:")
	if profile.Name != "" {
		fmt.Fprintf(&b, "\n- Nombre: %s", profile.Name)
	}
	if profile.Industry != "" {
		fmt.Fprintf(&b, "\n- Giro: %s", profile.Industry)
	}
	if profile.CustomerType != model.CustomerUnknown {
		fmt.Fprintf(&b, "\n- Tipo de negocio: %s", profile.CustomerType)
	}
	if profile.Urgency != model.UrgencyUnknown {
		fmt.Fprintf(&b, "\n- Urgencia: %s", profile.Urgency)
	}
	if len(profile.Objections) > 0 {
		fmt.Fprintf(&b, "\n- Objeciones detectadas: %s", strings.Join(profile.Objections, ", "))
	}
	if len(profile.InterestedProducts) > 0 {
		fmt.Fprintf(&b, "\n- Productos de interés: %s", strings.Join(profile.InterestedProducts, ", "))
	}
	return b.String()
}

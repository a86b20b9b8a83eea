// Package response selects the assistant's reply for the current phase
// from canned Spanish templates, and decides the forced phase moves that
// follow directly from what the reply committed to (for example answering
// an option selection pushes the conversation to closing).
package response

import (
	"fmt"
	"strings"

	"github.com/qorax-ai/sales-agent-platform/internal/catalog"
	"github.com/qorax-ai/sales-agent-platform/internal/interpret"
	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

// Selection is the chosen reply plus the phase the conversation should be
// in after sending it. Next equals the input phase when the reply does not
// commit the conversation to a move.
type Selection struct {
	Text string
	Next model.Phase
}

// Selector picks replies from the canned template trees.
type Selector struct {
	catalog     *catalog.Catalog
	interpreter *interpret.Interpreter
}

func NewSelector(c *catalog.Catalog, in *interpret.Interpreter) *Selector {
	return &Selector{catalog: c, interpreter: in}
}

// Select returns the reply for the user's message given the current phase
// and profile.
func (s *Selector) Select(phase model.Phase, message string, profile *model.Profile, turnCount int) Selection {
	switch phase {
	case model.PhaseGreeting:
		return Selection{Text: GreetingMessage, Next: phase}
	case model.PhaseDiscovery:
		return s.discovery(message, profile, turnCount)
	case model.PhaseQualification:
		return s.qualification(message, profile)
	case model.PhasePresentation:
		return s.presentation(message, profile)
	case model.PhaseObjectionHandling:
		return s.objectionHandling(message, profile)
	case model.PhaseClosing:
		return s.closing(message, profile)
	case model.PhaseFollowUp:
		return Selection{Text: followUpMessage, Next: phase}
	default:
		return Selection{Text: genericFallback, Next: phase}
	}
}

// GreetingMessage opens every conversation.
const GreetingMessage = "¡Hola! 👋 Soy el asistente de Qorax AI. Ayudamos a negocios como el tuyo a atender clientes y vender más con agentes de inteligencia artificial. Cuéntame, ¿a qué se dedica tu negocio?"

const followUpMessage = "¡Qué gusto saludarte de nuevo! ¿Retomamos donde nos quedamos? Puedo recordarte las opciones que vimos o resolver cualquier duda nueva."

const genericFallback = "Entiendo. Para recomendarte la mejor solución, cuéntame un poco más: ¿qué parte de la atención a tus clientes te quita más tiempo hoy?"

var discoveryByIndustry = map[string]string{
	"gastronomia":      "¡Un restaurante, excelente! 🍽️ Muchos restaurantes pierden reservas y pedidos por no contestar a tiempo el teléfono o WhatsApp. ¿Te pasa que se acumulan mensajes sin responder, sobre todo en horas pico?",
	"cafeteria":        "¡Una cafetería, qué buen negocio! ☕ Solemos ver cafeterías saturadas de mensajes preguntando horarios, menú y pedidos. ¿Cómo manejas hoy esas consultas?",
	"salud":            "Entiendo, sector salud. 🏥 Lo más común ahí es perder citas por teléfonos ocupados y pacientes que escriben fuera de horario. ¿Cómo agendas tus citas actualmente?",
	"retail":           "¡Ventas al público! 🛍️ Los comercios suelen recibir las mismas preguntas todo el día: precios, tallas, existencias, envíos. ¿Quién responde esos mensajes hoy en tu negocio?",
	"educacion":        "Sector educativo, muy bien. 🎓 Las instituciones reciben muchísimas consultas de aspirantes en temporada de inscripciones. ¿Cómo atienden hoy esas solicitudes de información?",
	"legal":            "Un despacho legal, entiendo. ⚖️ Ahí cada consulta que no se responde puede ser un cliente que se va con otro despacho. ¿Cómo gestionan hoy las primeras consultas?",
	"tecnologia":       "¡Una empresa de tecnología! 💻 Seguro recibes leads que se enfrían porque nadie los contacta a tiempo. ¿Cómo calificas hoy a tus prospectos?",
	"finanzas":         "Sector financiero, perfecto. 📊 La confianza y la rapidez de respuesta son clave ahí. ¿Cómo atienden hoy las consultas de sus clientes?",
	"inmobiliaria":     "¡Bienes raíces! 🏠 Los interesados escriben a toda hora preguntando por propiedades, y el que responde primero gana. ¿Cuántas consultas reciben al día aproximadamente?",
	"recursos_humanos": "Reclutamiento, entiendo. 👥 Filtrar candidatos consume muchísimo tiempo de tu equipo. ¿Cuántas postulaciones procesan al mes?",
}

const discoveryGeneric = "Interesante. Cuéntame un poco más de tu negocio: ¿qué tipo de clientes atiendes y por dónde te contactan normalmente, WhatsApp, teléfono, redes?"

// specificTaskKeywords promote discovery straight into qualification when
// the customer already names the job they want automated.
var specificTaskKeywords = []string{
	"reservas", "citas", "pedidos", "cotizaciones", "consultas",
	"agendar", "responder mensajes", "atencion al cliente", "whatsapp",
	"seguimiento", "leads",
}

func (s *Selector) discovery(message string, profile *model.Profile, turnCount int) Selection {
	normalized := interpret.Normalize(message)

	if turnCount >= 2 && containsAny(normalized, specificTaskKeywords) {
		return Selection{
			Text: "Perfecto, eso lo resolvemos muy bien. Para recomendarte la opción exacta, dime: ¿aproximadamente cuántos mensajes o solicitudes recibes al día, y quién los atiende hoy?",
			Next: model.PhaseQualification,
		}
	}

	if profile != nil && profile.Industry != "" {
		if text, ok := discoveryByIndustry[profile.Industry]; ok {
			return Selection{Text: text, Next: model.PhaseDiscovery}
		}
	}
	return Selection{Text: discoveryGeneric, Next: model.PhaseDiscovery}
}

func (s *Selector) qualification(message string, profile *model.Profile) Selection {
	if s.interpreter.IsPriceInquiry(message) {
		return Selection{
			Text: "Claro, hablemos de números. 💰 Nuestros agentes van desde $990 MXN al mes según lo que necesites. Antes de darte un precio exacto, la pregunta importante es otra: ¿cuánto te cuesta hoy cada cliente que se va sin respuesta?",
			Next: model.PhaseObjectionHandling,
		}
	}

	if s.interpreter.MentionsProblem(message) {
		return Selection{
			Text: "Te entiendo perfectamente, y es más común de lo que crees. La buena noticia es que justo eso es lo que automatizamos. ¿Esto te pasa todos los días o sobre todo en ciertas temporadas?",
			Next: model.PhaseQualification,
		}
	}

	return Selection{
		Text: "Muy útil, gracias. Una pregunta más para afinar la recomendación: ¿qué tan pronto te gustaría tener esto funcionando?",
		Next: model.PhaseQualification,
	}
}

func (s *Selector) presentation(message string, profile *model.Profile) Selection {
	if option, ok := s.interpreter.DetectSelectedOption(message); ok {
		industry := ""
		if profile != nil {
			industry = profile.Industry
		}
		pitched := s.catalog.ProductsForIndustry(industry)
		if option <= len(pitched) {
			p := pitched[option-1]
			if profile != nil {
				profile.AddInterest(p.ID)
			}
			return Selection{
				Text: fmt.Sprintf(
					"¡Excelente elección! El %s cuesta %s y queda funcionando en %s. Para avanzar solo necesito tu nombre, correo y teléfono, y te mando la propuesta hoy mismo. 🚀",
					p.Name, p.PriceDescriptor, p.ImplementationTime,
				),
				Next: model.PhaseClosing,
			}
		}
	}

	industry := ""
	if profile != nil {
		industry = profile.Industry
	}
	pitched := s.catalog.ProductsForIndustry(industry)

	var b strings.Builder
	b.WriteString("Con lo que me cuentas, estas son las opciones que mejor te quedan:\n\n")
	for i, p := range pitched {
		fmt.Fprintf(&b, "%d️⃣ **%s** — %s (%s)\n", i+1, p.Name, p.Description, p.PriceDescriptor)
	}
	b.WriteString("\n¿Cuál te llama más la atención? Puedes responder con el número.")
	return Selection{Text: b.String(), Next: model.PhasePresentation}
}

// objectionResponses in precedence order: price, time, trust. Doubt is the
// fallback when the profile has no recognized objection.
var objectionResponses = []struct {
	objection string
	text      string
}{
	{model.ObjectionPrice, "Entiendo la preocupación por el precio. Piénsalo así: si el agente te recupera aunque sea 2 o 3 clientes al mes que hoy se van sin respuesta, ya se pagó solo. Además empezamos con el plan que tu presupuesto permita y escalamos después. ¿Te muestro los números para tu caso?"},
	{model.ObjectionTime, "Justo por eso existe esto: para devolverte tiempo. La implementación la hacemos nosotros, a ti te toma una llamada de 30 minutos darnos la información. En una semana está respondiendo por ti. ¿Te parece si lo agendamos?"},
	{model.ObjectionTrust, "Es una duda muy válida y me alegra que la menciones. Trabajamos con negocios reales que puedes contactar, y puedes empezar con un periodo de prueba para verlo funcionando con tus propios clientes antes de comprometerte. ¿Te gustaría una demo con casos de tu giro?"},
	{model.ObjectionIndecision, "Tómate el tiempo que necesites, es una decisión de negocio. Lo que sí te recomiendo es verlo funcionando antes de decidir: una demo de 15 minutos con ejemplos de tu giro. Sin compromiso. ¿Te la agendo?"},
}

const objectionDoubtFallback = "Buena pregunta. El agente aprende de la información de tu negocio y responde como lo haría tu mejor empleado, las 24 horas. Y cuando no sabe algo, lo pasa contigo en vez de inventar. ¿Quieres verlo en acción con una demo?"

func (s *Selector) objectionHandling(message string, profile *model.Profile) Selection {
	if profile != nil {
		for _, r := range objectionResponses {
			if profile.HasObjection(r.objection) {
				return Selection{Text: r.text, Next: model.PhaseObjectionHandling}
			}
		}
	}
	return Selection{Text: objectionDoubtFallback, Next: model.PhaseObjectionHandling}
}

func (s *Selector) closing(message string, profile *model.Profile) Selection {
	normalized := interpret.Normalize(message)

	switch {
	case containsAny(normalized, []string{"demo", "demostracion", "prueba", "probar"}):
		return Selection{
			Text: "¡Perfecto! 🎯 Agendemos tu demo. ¿Te queda mejor mañana por la mañana o por la tarde? Solo necesito tu nombre y un correo o teléfono para confirmarte.",
			Next: model.PhaseClosing,
		}
	case containsAny(normalized, []string{"manana por la manana", "por la manana", "en la manana"}):
		return Selection{
			Text: "¡Agendado para la mañana! ☀️ Te llega la confirmación por correo. Si me compartes tu número también te mando recordatorio por WhatsApp.",
			Next: model.PhaseClosing,
		}
	case containsAny(normalized, []string{"por la tarde", "en la tarde"}):
		return Selection{
			Text: "¡Agendado para la tarde! Te llega la confirmación por correo. Si me compartes tu número también te mando recordatorio por WhatsApp.",
			Next: model.PhaseClosing,
		}
	case s.interpreter.IsAffirmative(message):
		return Selection{
			Text: "¡Excelente decisión! 🎉 Solo me falta confirmar tus datos: nombre completo, correo y teléfono. En cuanto los tenga, el equipo te contacta hoy mismo para arrancar.",
			Next: model.PhaseClosing,
		}
	case s.interpreter.IsNegative(message):
		return Selection{
			Text: "Sin problema, no hay prisa. 🙂 Te dejo mi propuesta por escrito si me compartes tu correo, y me escribes cuando sea buen momento. ¿Te parece?",
			Next: model.PhaseFollowUp,
		}
	default:
		return Selection{
			Text: "¿Te gustaría que agendemos una demo para que lo veas funcionando, o prefieres que te mande la propuesta por correo?",
			Next: model.PhaseClosing,
		}
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

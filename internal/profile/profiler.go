// Package profile builds and updates customer profiles from conversation
// messages. Extraction is keyword-driven and deterministic: every table is
// an ordered slice so repeated runs over the same transcript produce the
// same profile.
package profile

import (
	"strings"

	"github.com/qorax-ai/sales-agent-platform/internal/interpret"
	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

type keywordRule[T any] struct {
	value    T
	keywords []string
}

// customerTypeRules are checked in priority order; the first rule with a
// matching keyword wins.
var customerTypeRules = []keywordRule[model.CustomerType]{
	{model.CustomerStartup, []string{"startup", "emprendimiento", "emprendedor", "emprendedora", "recien empezamos", "recien empece", "estamos empezando"}},
	{model.CustomerEnterprise, []string{"corporativo", "corporacion", "empresa grande", "gran empresa", "sucursales", "multinacional", "varias oficinas"}},
	{model.CustomerPyme, []string{"pyme", "pequena empresa", "mediana empresa", "negocio familiar", "mi negocio", "mi empresa", "mi local", "mi tienda"}},
	{model.CustomerFreelancer, []string{"freelance", "freelancer", "independiente", "por mi cuenta", "trabajo solo", "trabajo sola"}},
}

// industryRules keywords are pre-folded (no accents) to match normalized
// message text.
var industryRules = []keywordRule[string]{
	{"retail", []string{"tienda", "retail", "venta de ropa", "boutique", "comercio", "vendemos productos", "ecommerce", "tienda online"}},
	{"salud", []string{"clinica", "consultorio", "medico", "medica", "dentista", "salud", "hospital", "pacientes", "terapia"}},
	{"educacion", []string{"escuela", "colegio", "universidad", "academia", "cursos", "educacion", "capacitacion", "alumnos", "estudiantes"}},
	{"legal", []string{"abogado", "abogada", "despacho", "legal", "juridico", "notaria", "bufete"}},
	{"tecnologia", []string{"software", "tecnologia", "desarrollo", "programacion", "sistemas", "app", "aplicacion", "saas"}},
	{"finanzas", []string{"banco", "finanzas", "contabilidad", "contador", "contadora", "seguros", "inversiones", "creditos"}},
	{"inmobiliaria", []string{"inmobiliaria", "bienes raices", "propiedades", "venta de casas", "rentas", "departamentos"}},
	{"recursos_humanos", []string{"recursos humanos", "reclutamiento", "seleccion de personal", "headhunter", "contratacion"}},
	{"gastronomia", []string{"restaurante", "restaurant", "comida", "cocina", "chef", "menu", "reservas de mesa", "delivery"}},
	{"cafeteria", []string{"cafeteria", "cafe", "coffee", "barista", "panaderia", "pasteleria"}},
}

// urgencyRules are checked high to low; within one message the most urgent
// matching level wins.
var urgencyRules = []keywordRule[model.Urgency]{
	{model.UrgencyCritical, []string{"urgentisimo", "para ayer", "emergencia", "crisis", "ya no aguanto", "es critico"}},
	{model.UrgencyHigh, []string{"urgente", "urge", "lo antes posible", "cuanto antes", "esta semana", "ya mismo", "inmediato", "rapido por favor"}},
	{model.UrgencyMedium, []string{"pronto", "este mes", "en unas semanas", "proximamente", "no hay tanta prisa pero"}},
	{model.UrgencyLow, []string{"sin prisa", "sin apuro", "mas adelante", "el proximo ano", "algun dia", "solo estoy viendo", "solo informacion"}},
}

var objectionRules = []keywordRule[string]{
	{model.ObjectionPrice, []string{"caro", "costoso", "no tengo presupuesto", "no me alcanza", "mucho dinero", "muy elevado", "fuera de mi presupuesto"}},
	{model.ObjectionTime, []string{"no tengo tiempo", "mucho tiempo", "tardaria", "muy largo", "estoy muy ocupado", "estoy muy ocupada"}},
	{model.ObjectionTrust, []string{"no confio", "desconfio", "sera confiable", "es seguro eso", "me han estafado", "no los conozco", "suena demasiado bueno"}},
	{model.ObjectionTechnical, []string{"no se de tecnologia", "muy tecnico", "complicado de usar", "no soy bueno con", "dificil de configurar", "no entiendo de sistemas"}},
	{model.ObjectionCompetition, []string{"ya tengo un proveedor", "ya uso otro", "la competencia", "otra empresa me ofrece", "ya trabajo con"}},
	{model.ObjectionIndecision, []string{"no estoy seguro", "no estoy segura", "tengo que pensarlo", "dejame pensarlo", "no se si", "tal vez despues"}},
}

var painPointRules = []keywordRule[string]{
	{"perdida_de_clientes", []string{"pierdo clientes", "perdemos clientes", "se van los clientes", "no respondo a tiempo", "mensajes sin responder"}},
	{"sobrecarga", []string{"no doy abasto", "demasiado trabajo", "sobrecargado", "sobrecargada", "no me alcanza el dia", "todo lo hago yo"}},
	{"atencion_fuera_de_horario", []string{"fuera de horario", "por la noche", "fines de semana", "cuando cerramos", "no atendemos de noche"}},
	{"procesos_manuales", []string{"todo a mano", "manualmente", "excel", "hojas de calculo", "anoto en papel", "proceso manual"}},
}

// Profiler incrementally enriches a profile from each user message. The
// zero value is ready to use.
type Profiler struct{}

func NewProfiler() *Profiler {
	return &Profiler{}
}

// Update enriches the profile in place from one user message and returns
// the objection categories newly detected in this message.
func (p *Profiler) Update(profile *model.Profile, message string) []string {
	normalized := interpret.Normalize(message)
	if normalized == "" {
		return nil
	}

	p.updateIdentity(profile, message)
	p.updateCustomerType(profile, normalized)
	p.updateIndustry(profile, normalized)
	p.updateUrgency(profile, normalized)
	newObjections := p.updateObjections(profile, normalized)
	p.updatePainPoints(profile, normalized)
	p.updateEngagement(profile, message)
	p.recomputeQualification(profile)
	return newObjections
}

func (p *Profiler) updateIdentity(profile *model.Profile, message string) {
	if profile.Name == "" {
		if name := interpret.ExtractName(message); name != "" {
			profile.Name = name
		}
	}
	if profile.Email == "" {
		if email := interpret.ExtractEmail(message); email != "" {
			profile.Email = email
		}
	}
	if profile.Phone == "" {
		if phone := interpret.ExtractPhone(message); phone != "" {
			profile.Phone = phone
		}
	}
}

func (p *Profiler) updateCustomerType(profile *model.Profile, normalized string) {
	if profile.CustomerType != model.CustomerUnknown {
		return
	}
	for _, rule := range customerTypeRules {
		if containsAny(normalized, rule.keywords) {
			profile.CustomerType = rule.value
			return
		}
	}
}

// updateIndustry is sticky: the first detected industry is kept for the
// rest of the conversation even if later messages mention another one.
func (p *Profiler) updateIndustry(profile *model.Profile, normalized string) {
	if profile.Industry != "" {
		return
	}
	for _, rule := range industryRules {
		if containsAny(normalized, rule.keywords) {
			profile.Industry = rule.value
			return
		}
	}
}

// updateUrgency is latest-wins: each message that states an urgency level
// overwrites the previous one.
func (p *Profiler) updateUrgency(profile *model.Profile, normalized string) {
	for _, rule := range urgencyRules {
		if containsAny(normalized, rule.keywords) {
			profile.Urgency = rule.value
			return
		}
	}
}

func (p *Profiler) updateObjections(profile *model.Profile, normalized string) []string {
	var added []string
	for _, rule := range objectionRules {
		if containsAny(normalized, rule.keywords) {
			if profile.AddObjection(rule.value) {
				added = append(added, rule.value)
			}
		}
	}
	return added
}

func (p *Profiler) updatePainPoints(profile *model.Profile, normalized string) {
	for _, rule := range painPointRules {
		if containsAny(normalized, rule.keywords) {
			profile.AddPainPoint(rule.value)
		}
	}
}

// updateEngagement adds a per-message contribution of half a point per
// word plus five points per question mark, capped at 10 per message, and
// clamps the total at 100.
func (p *Profiler) updateEngagement(profile *model.Profile, raw string) {
	words := len(strings.Fields(raw))
	questions := strings.Count(raw, "?")
	delta := float64(words)*0.5 + float64(questions)*5
	if delta > 10 {
		delta = 10
	}
	profile.EngagementScore += delta
	if profile.EngagementScore > 100 {
		profile.EngagementScore = 100
	}
}

// recomputeQualification rebuilds the qualification score from scratch so
// it never drifts from the profile fields it is derived from.
func (p *Profiler) recomputeQualification(profile *model.Profile) {
	score := 0.0
	if profile.CustomerType != model.CustomerUnknown {
		score += 15
	}
	if profile.Industry != "" {
		score += 15
	}
	switch profile.Urgency {
	case model.UrgencyHigh, model.UrgencyCritical:
		score += 20
	case model.UrgencyMedium:
		score += 10
	}
	if profile.Name != "" {
		score += 10
	}
	if profile.Email != "" {
		score += 15
	}
	if profile.Phone != "" {
		score += 10
	}
	if profile.EngagementScore > 50 {
		score += 15
	}
	if score > 100 {
		score = 100
	}
	profile.QualificationScore = score
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

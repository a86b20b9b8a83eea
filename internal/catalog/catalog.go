// Package catalog holds the static product catalog and the mapping from
// detected industries to recommended products.
package catalog

import (
	"strings"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

var products = []model.Product{
	{
		ID:          "agente_whatsapp",
		Name:        "Agente IA para WhatsApp",
		Description: "Agente de inteligencia artificial que atiende tu WhatsApp Business las 24 horas, responde consultas y captura datos de clientes.",
		Benefits: []string{
			"Atención 24/7 sin contratar personal",
			"Respuestas instantáneas a consultas frecuentes",
			"Captura automática de datos de contacto",
			"Escala a un humano cuando hace falta",
		},
		UseCases: []string{
			"Responder consultas fuera de horario",
			"Confirmar pedidos y reservas",
			"Primer filtro de atención al cliente",
		},
		SetupPrice:         "desde $4,900 MXN",
		MonthlyPrice:       "$1,490 MXN/mes",
		PriceDescriptor:    "desde $4,900 MXN de implementación + $1,490 MXN/mes",
		ImplementationTime: "1 semana",
	},
	{
		ID:          "agente_basico",
		Name:        "Agente de Atención Básico",
		Description: "Asistente virtual para tu sitio web que responde preguntas frecuentes y orienta a tus visitantes.",
		Benefits: []string{
			"Reduce la carga de consultas repetitivas",
			"Disponible en tu sitio todo el día",
			"Fácil de actualizar con nueva información",
		},
		UseCases: []string{
			"Preguntas frecuentes",
			"Orientación sobre productos y servicios",
			"Horarios, ubicación y políticas",
		},
		SetupPrice:         "desde $3,900 MXN",
		MonthlyPrice:       "$990 MXN/mes",
		PriceDescriptor:    "desde $3,900 MXN de implementación + $990 MXN/mes",
		ImplementationTime: "3 a 5 días",
	},
	{
		ID:          "agente_ventas",
		Name:        "Agente de Ventas IA",
		Description: "Agente que conversa con tus prospectos, califica leads y agenda citas con tu equipo de ventas.",
		Benefits: []string{
			"Califica leads automáticamente",
			"Agenda citas sin intervención humana",
			"Seguimiento consistente a cada prospecto",
			"Más conversiones con el mismo tráfico",
		},
		UseCases: []string{
			"Calificación de prospectos",
			"Agendado de demos y citas",
			"Seguimiento de cotizaciones",
		},
		SetupPrice:         "desde $7,900 MXN",
		MonthlyPrice:       "$2,490 MXN/mes",
		PriceDescriptor:    "desde $7,900 MXN de implementación + $2,490 MXN/mes",
		ImplementationTime: "1 a 2 semanas",
	},
	{
		ID:          "agente_citas",
		Name:        "Agente de Citas y Reservas",
		Description: "Agente que gestiona la agenda de tu negocio: agenda, confirma y reagenda citas automáticamente.",
		Benefits: []string{
			"Agenda llena sin llamadas telefónicas",
			"Recordatorios automáticos que reducen inasistencias",
			"Sincronización con tu calendario",
		},
		UseCases: []string{
			"Citas médicas y de servicios",
			"Reservas de mesa",
			"Reagendado y cancelaciones",
		},
		SetupPrice:         "desde $5,900 MXN",
		MonthlyPrice:       "$1,890 MXN/mes",
		PriceDescriptor:    "desde $5,900 MXN de implementación + $1,890 MXN/mes",
		ImplementationTime: "1 semana",
	},
	{
		ID:          "agente_personalizado",
		Name:        "Agente Personalizado",
		Description: "Agente de IA diseñado a la medida de tu proceso: integraciones con tus sistemas y flujos propios de tu operación.",
		Benefits: []string{
			"Diseñado sobre tu proceso real",
			"Integración con tus sistemas actuales",
			"Acompañamiento durante la implementación",
		},
		UseCases: []string{
			"Procesos internos específicos",
			"Integraciones con CRM o ERP",
			"Flujos de varios pasos",
		},
		SetupPrice:         "cotización personalizada",
		MonthlyPrice:       "según alcance",
		PriceDescriptor:    "cotización personalizada según alcance",
		ImplementationTime: "2 a 4 semanas",
	},
}

// industrySolutions maps a detected industry to the product IDs pitched
// for it, in pitch order. "otro" is the fallback for industries without a
// dedicated mapping.
var industrySolutions = map[string][]string{
	"gastronomia":      {"agente_whatsapp", "agente_citas", "agente_personalizado"},
	"cafeteria":        {"agente_whatsapp", "agente_basico", "agente_personalizado"},
	"salud":            {"agente_citas", "agente_whatsapp", "agente_personalizado"},
	"retail":           {"agente_whatsapp", "agente_ventas", "agente_personalizado"},
	"educacion":        {"agente_basico", "agente_ventas", "agente_personalizado"},
	"legal":            {"agente_citas", "agente_basico", "agente_personalizado"},
	"tecnologia":       {"agente_ventas", "agente_basico", "agente_personalizado"},
	"finanzas":         {"agente_ventas", "agente_citas", "agente_personalizado"},
	"inmobiliaria":     {"agente_ventas", "agente_whatsapp", "agente_personalizado"},
	"recursos_humanos": {"agente_basico", "agente_citas", "agente_personalizado"},
	"otro":             {"agente_whatsapp", "agente_ventas", "agente_personalizado"},
}

// Catalog is a read-only view over the static product data.
type Catalog struct {
	byID map[string]model.Product
}

func New() *Catalog {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{byID: byID}
}

// AllProducts returns every catalog entry in definition order.
func (c *Catalog) AllProducts() []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)
	return out
}

// ProductByID looks up a product by its identifier.
func (c *Catalog) ProductByID(id string) (model.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ProductsForIndustry returns the products pitched for the industry, in
// pitch order. Unknown or empty industries fall back to the generic set.
// Lookup is case-insensitive.
func (c *Catalog) ProductsForIndustry(industry string) []model.Product {
	ids, ok := industrySolutions[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		ids = industrySolutions["otro"]
	}
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, found := c.byID[id]; found {
			out = append(out, p)
		}
	}
	return out
}

// Industries returns the industries with a dedicated product mapping,
// excluding the fallback entry.
func (c *Catalog) Industries() []string {
	out := make([]string, 0, len(industrySolutions)-1)
	for industry := range industrySolutions {
		if industry == "otro" {
			continue
		}
		out = append(out, industry)
	}
	return out
}

package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qorax-ai/sales-agent-platform/internal/catalog"
	"github.com/qorax-ai/sales-agent-platform/internal/interpret"
	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

func newSelector() *Selector {
	return NewSelector(catalog.New(), interpret.NewInterpreter())
}

func TestDiscoveryUsesIndustryResponse(t *testing.T) {
	s := newSelector()
	prof := model.NewProfile()
	prof.Industry = "gastronomia"

	sel := s.Select(model.PhaseDiscovery, "tengo un restaurante", prof, 1)

	assert.Equal(t, model.PhaseDiscovery, sel.Next)
	assert.Contains(t, sel.Text, "restaurante")
}

func TestDiscoverySpecificTaskPromotesToQualification(t *testing.T) {
	s := newSelector()
	prof := model.NewProfile()
	prof.Industry = "gastronomia"

	sel := s.Select(model.PhaseDiscovery, "quiero automatizar las reservas", prof, 2)
	assert.Equal(t, model.PhaseQualification, sel.Next)

	// before turn 2 the same message stays in discovery
	sel = s.Select(model.PhaseDiscovery, "quiero automatizar las reservas", prof, 1)
	assert.Equal(t, model.PhaseDiscovery, sel.Next)
}

func TestQualificationPriceInquiryMovesToObjections(t *testing.T) {
	s := newSelector()

	sel := s.Select(model.PhaseQualification, "¿cuánto cuesta?", model.NewProfile(), 4)

	assert.Equal(t, model.PhaseObjectionHandling, sel.Next)
	assert.Contains(t, sel.Text, "$990")
}

func TestPresentationListsIndustryProducts(t *testing.T) {
	s := newSelector()
	prof := model.NewProfile()
	prof.Industry = "salud"

	sel := s.Select(model.PhasePresentation, "a ver las opciones", prof, 5)

	assert.Equal(t, model.PhasePresentation, sel.Next)
	assert.Contains(t, sel.Text, "Agente de Citas y Reservas")
	assert.Equal(t, 3, strings.Count(sel.Text, "️⃣"))
}

func TestPresentationOptionSelectClosesAndRecordsInterest(t *testing.T) {
	s := newSelector()
	prof := model.NewProfile()
	prof.Industry = "salud"

	sel := s.Select(model.PhasePresentation, "la primera opcion", prof, 6)

	assert.Equal(t, model.PhaseClosing, sel.Next)
	assert.Contains(t, sel.Text, "Agente de Citas y Reservas")
	require.Len(t, prof.InterestedProducts, 1)
	assert.Equal(t, "agente_citas", prof.InterestedProducts[0])
}

func TestObjectionPrecedence(t *testing.T) {
	s := newSelector()
	prof := model.NewProfile()
	prof.AddObjection(model.ObjectionTime)
	prof.AddObjection(model.ObjectionPrice)

	sel := s.Select(model.PhaseObjectionHandling, "es que además es caro", prof, 5)

	// price outranks time regardless of detection order
	assert.Contains(t, sel.Text, "presupuesto")
	assert.Equal(t, model.PhaseObjectionHandling, sel.Next)
}

func TestObjectionDoubtFallback(t *testing.T) {
	s := newSelector()

	sel := s.Select(model.PhaseObjectionHandling, "¿y esto funciona de verdad?", model.NewProfile(), 5)
	assert.Contains(t, sel.Text, "demo")
}

func TestClosingBranches(t *testing.T) {
	s := newSelector()
	prof := model.NewProfile()

	tests := []struct {
		msg      string
		next     model.Phase
		fragment string
	}{
		{"quiero una demo", model.PhaseClosing, "demo"},
		{"mañana por la mañana", model.PhaseClosing, "mañana"},
		{"mejor por la tarde", model.PhaseClosing, "tarde"},
		{"sí, dale", model.PhaseClosing, "datos"},
		{"no gracias, lo voy a pensar", model.PhaseFollowUp, "propuesta"},
	}
	for _, tt := range tests {
		sel := s.Select(model.PhaseClosing, tt.msg, prof, 7)
		assert.Equal(t, tt.next, sel.Next, tt.msg)
		assert.Contains(t, strings.ToLower(sel.Text), tt.fragment, tt.msg)
	}
}

func TestBuildPromptIncludesProfile(t *testing.T) {
	prof := model.NewProfile()
	prof.Name = "Ana"
	prof.Industry = "salud"
	prof.AddObjection(model.ObjectionPrice)

	prompt := BuildPrompt(model.PhaseObjectionHandling, prof)

	assert.Contains(t, prompt, SystemPrompt)
	assert.Contains(t, prompt, "Ana")
	assert.Contains(t, prompt, "salud")
	assert.Contains(t, prompt, model.ObjectionPrice)
}

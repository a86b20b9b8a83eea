package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

func TestLadderThresholds(t *testing.T) {
	l := NewLadder()
	tests := []struct {
		name    string
		current model.Phase
		turns   int
		want    model.Phase
	}{
		{"greeting stays before first turn", model.PhaseGreeting, 0, model.PhaseGreeting},
		{"greeting to discovery", model.PhaseGreeting, 1, model.PhaseDiscovery},
		{"discovery holds", model.PhaseDiscovery, 2, model.PhaseDiscovery},
		{"discovery to qualification", model.PhaseDiscovery, 3, model.PhaseQualification},
		{"qualification holds", model.PhaseQualification, 4, model.PhaseQualification},
		{"qualification to presentation", model.PhaseQualification, 5, model.PhasePresentation},
		{"presentation untouched", model.PhasePresentation, 9, model.PhasePresentation},
		{"closing untouched", model.PhaseClosing, 9, model.PhaseClosing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Next(tt.current, Input{TurnCount: tt.turns})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCloseSignalShortCircuits(t *testing.T) {
	in := Input{TurnCount: 1, CloseSignal: true, Profile: model.NewProfile()}
	assert.Equal(t, model.PhaseClosing, NewLadder().Next(model.PhaseGreeting, in))
	assert.Equal(t, model.PhaseClosing, NewProfileDriven().Next(model.PhaseGreeting, in))
}

func TestProfileDrivenRecompute(t *testing.T) {
	c := NewProfileDriven()

	empty := model.NewProfile()
	assert.Equal(t, model.PhaseGreeting, c.Next(model.PhasePresentation, Input{Profile: empty}))

	industryOnly := model.NewProfile()
	industryOnly.Industry = "salud"
	assert.Equal(t, model.PhaseDiscovery, c.Next(model.PhaseGreeting, Input{Profile: industryOnly}))

	qualified := model.NewProfile()
	qualified.Industry = "salud"
	qualified.AddInterest("agente_citas")
	assert.Equal(t, model.PhaseQualification, c.Next(model.PhaseGreeting, Input{Profile: qualified, HistoryLen: 3}))
	assert.Equal(t, model.PhasePresentation, c.Next(model.PhaseGreeting, Input{Profile: qualified, HistoryLen: 5}))
}

func TestProfileDrivenObjectionsWin(t *testing.T) {
	prof := model.NewProfile()
	prof.Industry = "retail"
	prof.AddInterest("agente_ventas")
	prof.AddObjection(model.ObjectionPrice)

	got := NewProfileDriven().Next(model.PhasePresentation, Input{Profile: prof, HistoryLen: 10})
	assert.Equal(t, model.PhaseObjectionHandling, got)
}

func TestProfileDrivenNilProfile(t *testing.T) {
	assert.Equal(t, model.PhaseGreeting, NewProfileDriven().Next(model.PhaseClosing, Input{}))
}

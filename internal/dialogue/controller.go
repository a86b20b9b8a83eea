// Package dialogue decides which phase a sales conversation is in. Two
// controllers implement the same interface: a turn-count ladder for the
// customer-facing agent, and a stateless profile-driven recompute for the
// seller copilot.
package dialogue

import (
	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

// Input carries everything a controller may consult when deciding the
// next phase.
type Input struct {
	TurnCount   int
	HistoryLen  int
	Profile     *model.Profile
	CloseSignal bool
}

// Controller computes the phase the conversation should be in after the
// latest user message.
type Controller interface {
	Next(current model.Phase, in Input) model.Phase
}

// Ladder advances phases on turn-count thresholds. It only ever moves
// forward; phases past presentation are left where the response layer put
// them.
type Ladder struct{}

func NewLadder() *Ladder {
	return &Ladder{}
}

func (l *Ladder) Next(current model.Phase, in Input) model.Phase {
	if in.CloseSignal {
		return model.PhaseClosing
	}
	switch current {
	case model.PhaseGreeting:
		if in.TurnCount >= 1 {
			return model.PhaseDiscovery
		}
	case model.PhaseDiscovery:
		if in.TurnCount >= 3 {
			return model.PhaseQualification
		}
	case model.PhaseQualification:
		if in.TurnCount >= 5 {
			return model.PhasePresentation
		}
	}
	return current
}

// ProfileDriven recomputes the phase from the profile alone on every
// message, so a seller can paste messages out of order and still land in
// a sensible phase.
type ProfileDriven struct{}

func NewProfileDriven() *ProfileDriven {
	return &ProfileDriven{}
}

func (p *ProfileDriven) Next(_ model.Phase, in Input) model.Phase {
	if in.CloseSignal {
		return model.PhaseClosing
	}
	prof := in.Profile
	if prof == nil {
		return model.PhaseGreeting
	}
	if len(prof.Objections) > 0 {
		return model.PhaseObjectionHandling
	}
	hasIndustry := prof.Industry != ""
	hasInterests := len(prof.InterestedProducts) > 0
	switch {
	case hasIndustry && hasInterests:
		if in.HistoryLen > 4 {
			return model.PhasePresentation
		}
		return model.PhaseQualification
	case hasIndustry || hasInterests:
		return model.PhaseDiscovery
	default:
		return model.PhaseGreeting
	}
}

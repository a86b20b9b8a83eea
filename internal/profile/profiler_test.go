package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qorax-ai/sales-agent-platform/internal/model"
)

func TestUpdateDetectsIndustryAndType(t *testing.T) {
	p := NewProfiler()
	prof := model.NewProfile()

	p.Update(prof, "Hola, tengo un restaurante y es mi negocio familiar")

	assert.Equal(t, "gastronomia", prof.Industry)
	assert.Equal(t, model.CustomerPyme, prof.CustomerType)
}

func TestIndustryIsSticky(t *testing.T) {
	p := NewProfiler()
	prof := model.NewProfile()

	p.Update(prof, "tengo una clínica dental")
	assert.Equal(t, "salud", prof.Industry)

	p.Update(prof, "también me interesa algo para mi tienda online")
	assert.Equal(t, "salud", prof.Industry)
}

func TestUrgencyLatestWins(t *testing.T) {
	p := NewProfiler()
	prof := model.NewProfile()

	p.Update(prof, "lo necesito urgente")
	assert.Equal(t, model.UrgencyHigh, prof.Urgency)

	p.Update(prof, "bueno, en realidad sin prisa")
	assert.Equal(t, model.UrgencyLow, prof.Urgency)
}

func TestObjectionsAppendWithoutDuplicates(t *testing.T) {
	p := NewProfiler()
	prof := model.NewProfile()

	added := p.Update(prof, "me parece muy caro y no tengo tiempo")
	assert.Equal(t, []string{model.ObjectionPrice, model.ObjectionTime}, added)

	added = p.Update(prof, "insisto, es muy costoso")
	assert.Empty(t, added)
	assert.Equal(t, []string{model.ObjectionPrice, model.ObjectionTime}, prof.Objections)
}

func TestEngagementPerMessageCap(t *testing.T) {
	p := NewProfiler()
	prof := model.NewProfile()

	// 4 words, 1 question: 4*0.5 + 5 = 7
	p.Update(prof, "cuanto cuesta el servicio?")
	assert.InDelta(t, 7, prof.EngagementScore, 0.001)

	// long message with questions is capped at 10 per message
	p.Update(prof, "necesito saber todo sobre el producto porque tengo muchas dudas importantes? como funciona? cuanto tarda? que incluye exactamente el servicio completo?")
	assert.InDelta(t, 17, prof.EngagementScore, 0.001)
}

func TestQualificationRecomputedFromScratch(t *testing.T) {
	p := NewProfiler()
	prof := model.NewProfile()

	p.Update(prof, "soy Ana, tengo una cafetería y lo necesito urgente")
	// type unknown (no type keyword), industry +15, urgency high +20, name +10
	assert.InDelta(t, 45, prof.QualificationScore, 0.001)

	p.Update(prof, "mi correo es ana@cafe.mx y mi número es +52 55 1234 5678")
	// adds email +15 and phone +10
	assert.InDelta(t, 70, prof.QualificationScore, 0.001)
}

func TestContactCapturedOnce(t *testing.T) {
	p := NewProfiler()
	prof := model.NewProfile()

	p.Update(prof, "escríbeme a primero@correo.com")
	p.Update(prof, "o mejor a segundo@correo.com")

	assert.Equal(t, "primero@correo.com", prof.Email)
}

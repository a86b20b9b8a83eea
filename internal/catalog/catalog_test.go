package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductByID(t *testing.T) {
	c := New()

	p, ok := c.ProductByID("agente_whatsapp")
	require.True(t, ok)
	assert.Equal(t, "Agente IA para WhatsApp", p.Name)

	_, ok = c.ProductByID("no_existe")
	assert.False(t, ok)
}

func TestProductsForIndustry(t *testing.T) {
	c := New()

	got := c.ProductsForIndustry("gastronomia")
	require.Len(t, got, 3)
	assert.Equal(t, "agente_whatsapp", got[0].ID)
	assert.Equal(t, "agente_citas", got[1].ID)
}

func TestProductsForIndustryCaseInsensitive(t *testing.T) {
	c := New()
	assert.Equal(t, c.ProductsForIndustry("salud"), c.ProductsForIndustry("  SALUD "))
}

func TestProductsForIndustryFallback(t *testing.T) {
	c := New()

	generic := c.ProductsForIndustry("otro")
	assert.Equal(t, generic, c.ProductsForIndustry("mineria"))
	assert.Equal(t, generic, c.ProductsForIndustry(""))
}

func TestAllProductsIsACopy(t *testing.T) {
	c := New()

	all := c.AllProducts()
	require.NotEmpty(t, all)
	all[0].Name = "mutado"

	again := c.AllProducts()
	assert.NotEqual(t, "mutado", again[0].Name)
}

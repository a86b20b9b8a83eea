package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qorax-ai/sales-agent-platform/internal/catalog"
)

// ProductHandler exposes the static product catalog.
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler creates a new product handler.
func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if industry := r.URL.Query().Get("industry"); industry != "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"industry": industry,
			"products": h.catalog.ProductsForIndustry(industry),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"products": h.catalog.AllProducts(),
	})
}

// Get handles GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, ok := h.catalog.ProductByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

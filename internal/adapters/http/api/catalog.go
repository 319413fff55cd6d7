package api

import (
	"net/http"

	"github.com/okian/edutrack/internal/domain/model"
)

// CatalogDependencies exposes the subject catalog.
type CatalogDependencies interface {
	Catalog() []model.Subject
}

// CatalogHandler handles catalog requests.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleCatalog handles GET /catalog requests.
func (h *CatalogHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "api.catalog", http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Catalog())
}

package api

import (
	"context"
	"net/http"

	"github.com/okian/edutrack/internal/domain/dashboard"
)

// DashboardDependencies builds the dashboard view.
type DashboardDependencies interface {
	Dashboard(ctx context.Context, term string) (dashboard.View, error)
}

// DashboardHandler handles dashboard requests.
type DashboardHandler struct {
	deps DashboardDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleDashboard handles GET /dashboard?q= requests.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"
	if !allowMethod(w, r, op, http.MethodGet) {
		return
	}
	view, err := h.deps.Dashboard(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

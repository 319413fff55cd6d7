package api

import (
	"context"
	"net/http"

	"github.com/okian/edutrack/internal/domain/analytics"
)

// AnalyticsDependencies builds the teacher report.
type AnalyticsDependencies interface {
	Analytics(ctx context.Context, f analytics.Filter) (analytics.Report, error)
}

// AnalyticsHandler handles teacher analytics requests.
type AnalyticsHandler struct {
	deps AnalyticsDependencies
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(deps AnalyticsDependencies) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps}
}

// HandleAnalytics handles GET /analytics?student=&subject= requests.
func (h *AnalyticsHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	const op = "api.analytics"
	if !allowMethod(w, r, op, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	report, err := h.deps.Analytics(r.Context(), analytics.Filter{
		Student: q.Get("student"),
		Subject: q.Get("subject"),
	})
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

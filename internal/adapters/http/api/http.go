// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/edutrack/internal/adapters/repository"
	"github.com/okian/edutrack/internal/domain/auth"
	"github.com/okian/edutrack/internal/domain/drafts"
	"github.com/okian/edutrack/internal/domain/history"
	"github.com/okian/edutrack/internal/domain/wizard"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AuthDependencies
	CatalogDependencies
	DashboardDependencies
	EntriesDependencies
	WizardDependencies
	AnalyticsDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	authHandler      *AuthHandler
	catalogHandler   *CatalogHandler
	dashboardHandler *DashboardHandler
	entriesHandler   *EntriesHandler
	wizardHandler    *WizardHandler
	analyticsHandler *AnalyticsHandler
	sessions         SessionProvider
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		authHandler:      NewAuthHandler(deps),
		catalogHandler:   NewCatalogHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
		entriesHandler:   NewEntriesHandler(deps),
		wizardHandler:    NewWizardHandler(deps),
		analyticsHandler: NewAnalyticsHandler(deps),
		sessions:         deps,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/login", MetricsMiddleware(s.authHandler.HandleLogin, "login"))
	mux.HandleFunc("/logout", MetricsMiddleware(s.authHandler.HandleLogout, "logout"))
	mux.HandleFunc("/session", MetricsMiddleware(s.authHandler.HandleSession, "session"))
	mux.HandleFunc("/catalog", MetricsMiddleware(s.catalogHandler.HandleCatalog, "catalog"))

	mux.HandleFunc("/dashboard", MetricsMiddleware(RequireSession(s.sessions, s.dashboardHandler.HandleDashboard), "dashboard"))
	mux.HandleFunc("/entries/export", MetricsMiddleware(RequireSession(s.sessions, s.entriesHandler.HandleExport), "entries_export"))
	mux.HandleFunc("/entries", MetricsMiddleware(RequireSession(s.sessions, s.entriesHandler.HandleEntries), "entries"))
	mux.HandleFunc("/wizard", MetricsMiddleware(RequireSession(s.sessions, s.wizardHandler.HandleOpen), "wizard"))
	mux.HandleFunc("/wizard/", MetricsMiddleware(RequireSession(s.sessions, s.wizardHandler.HandleDraft), "wizard_draft"))
	mux.HandleFunc("/analytics", MetricsMiddleware(RequireTeacher(s.sessions, s.analyticsHandler.HandleAnalytics), "analytics"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// errorStatus maps an error kind to a status and a stable code.
type errorStatus struct {
	kind   error
	status int
	code   string
}

var errorTable = []errorStatus{
	{ErrBadRequest, http.StatusBadRequest, "bad_request"},
	{ErrNotFound, http.StatusNotFound, "not_found"},
	{ErrMethod, http.StatusMethodNotAllowed, "method_not_allowed"},
	{ErrUnauthenticated, http.StatusUnauthorized, "login_required"},
	{repository.ErrNoSession, http.StatusUnauthorized, "login_required"},
	{auth.ErrInvalidCredentials, http.StatusBadRequest, "invalid_credentials"},
	{auth.ErrForbidden, http.StatusForbidden, "forbidden"},
	{drafts.ErrNotFound, http.StatusNotFound, "draft_not_found"},
	{wizard.ErrIncomplete, http.StatusBadRequest, "incomplete"},
	{wizard.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input"},
	{wizard.ErrInvalidDate, http.StatusUnprocessableEntity, "invalid_date"},
	{wizard.ErrUnknownSubject, http.StatusUnprocessableEntity, "unknown_subject"},
	{wizard.ErrUnknownTopic, http.StatusUnprocessableEntity, "unknown_topic"},
	{wizard.ErrWrongStep, http.StatusConflict, "wrong_step"},
	{wizard.ErrNoPreviousStep, http.StatusConflict, "no_previous_step"},
	{wizard.ErrCommitted, http.StatusConflict, "committed"},
	{history.ErrExport, http.StatusInternalServerError, "export_failed"},
	{repository.ErrPersist, http.StatusInternalServerError, "persist_failed"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
	{context.Canceled, http.StatusRequestTimeout, "cancelled"},
}

// writeDomainError translates err into an HTTP error response.
func writeDomainError(w http.ResponseWriter, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.kind) {
			writeError(w, e.status, e.code, err)
			return
		}
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}

// allowMethod writes 405 and reports false when r.Method is not method.
func allowMethod(w http.ResponseWriter, r *http.Request, op, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethod))
	return false
}

// decodeJSON reads a JSON body into v.
func decodeJSON(r *http.Request, op string, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}

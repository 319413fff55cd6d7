package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/edutrack/internal/domain/history"
	"github.com/okian/edutrack/internal/domain/model"
	"github.com/okian/edutrack/internal/domain/wizard"
)

// EntriesDependencies defines the history operations.
type EntriesDependencies interface {
	History(ctx context.Context, q history.Query) (history.View, error)
	ExportHistory(ctx context.Context, w io.Writer, q history.Query) error
	CreateEntry(ctx context.Context, in wizard.Input) (model.ProgressEntry, error)
}

// EntriesHandler handles history list, export and create requests.
type EntriesHandler struct {
	deps EntriesDependencies
}

// NewEntriesHandler creates a new entries handler.
func NewEntriesHandler(deps EntriesDependencies) *EntriesHandler {
	return &EntriesHandler{deps: deps}
}

// rawCount accepts a count typed as a JSON string or number and keeps its
// text, so lenient parsing happens in one place.
type rawCount string

func (c *rawCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*c = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("count: %w", err)
		}
		*c = rawCount(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("count: %w", err)
		}
		*c = rawCount(n.String())
	}
	return nil
}

type entryRequest struct {
	Date    string   `json:"date"`
	Subject string   `json:"subject"`
	Topic   string   `json:"topic"`
	Correct rawCount `json:"correct"`
	Wrong   rawCount `json:"wrong"`
}

func queryFrom(r *http.Request) history.Query {
	v := r.URL.Query()
	return history.Query{
		Search:  v.Get("q"),
		Subject: v.Get("subject"),
		SortBy:  v.Get("sort"),
	}
}

// HandleEntries handles GET /entries and POST /entries requests.
func (h *EntriesHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodPost}, ", "))
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind("api.entries", ErrMethod))
	}
}

func (h *EntriesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_entries"
	view, err := h.deps.History(r.Context(), queryFrom(r))
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *EntriesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_entry"
	var req entryRequest
	if err := decodeJSON(r, op, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	entry, err := h.deps.CreateEntry(r.Context(), wizard.Input{
		Date:    req.Date,
		Subject: req.Subject,
		Topic:   req.Topic,
		Correct: string(req.Correct),
		Wrong:   string(req.Wrong),
	})
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// HandleExport handles GET /entries/export requests with the list filters.
func (h *EntriesHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_entries"
	if !allowMethod(w, r, op, http.MethodGet) {
		return
	}
	var buf bytes.Buffer
	if err := h.deps.ExportHistory(r.Context(), &buf, queryFrom(r)); err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="progress-history.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

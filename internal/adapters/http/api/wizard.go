package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/okian/edutrack/internal/domain/drafts"
)

// WizardDependencies defines the entry form draft operations.
type WizardDependencies interface {
	OpenDraft(ctx context.Context) (drafts.Draft, error)
	GetDraft(ctx context.Context, id string) (drafts.Draft, error)
	ChooseDate(ctx context.Context, id, date string) (drafts.Draft, error)
	ChooseSubject(ctx context.Context, id, subject string) (drafts.Draft, error)
	ChooseTopic(ctx context.Context, id, topic string) (drafts.Draft, error)
	SetScores(ctx context.Context, id, correct, wrong string) (drafts.Draft, error)
	Back(ctx context.Context, id string) (drafts.Draft, error)
	SubmitDraft(ctx context.Context, id, correct, wrong string) (drafts.Draft, error)
}

// WizardHandler handles entry form draft requests.
type WizardHandler struct {
	deps WizardDependencies
}

// NewWizardHandler creates a new wizard handler.
func NewWizardHandler(deps WizardDependencies) *WizardHandler {
	return &WizardHandler{deps: deps}
}

type wizardRequest struct {
	Date    string   `json:"date"`
	Subject string   `json:"subject"`
	Topic   string   `json:"topic"`
	Correct rawCount `json:"correct"`
	Wrong   rawCount `json:"wrong"`
}

// HandleOpen handles POST /wizard requests.
func (h *WizardHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	const op = "api.open_draft"
	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}
	d, err := h.deps.OpenDraft(r.Context())
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// HandleDraft handles GET /wizard/{id} and POST /wizard/{id}/{action}.
func (h *WizardHandler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	const op = "api.draft"
	// Extract path parameters after /wizard/
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/wizard/"), "/"), "/")
	if parts[0] == "" || len(parts) > 2 {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	id := parts[0]

	if len(parts) == 1 {
		if !allowMethod(w, r, op, http.MethodGet) {
			return
		}
		d, err := h.deps.GetDraft(r.Context(), id)
		if err != nil {
			writeDomainError(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, d)
		return
	}

	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}
	var req wizardRequest
	// back and date (meaning today) may come without a body
	if err := decodeJSON(r, op, &req); err != nil && !errors.Is(err, io.EOF) {
		writeDomainError(w, err)
		return
	}

	ctx := r.Context()
	var (
		d   drafts.Draft
		err error
	)
	switch parts[1] {
	case "date":
		d, err = h.deps.ChooseDate(ctx, id, req.Date)
	case "subject":
		d, err = h.deps.ChooseSubject(ctx, id, req.Subject)
	case "topic":
		d, err = h.deps.ChooseTopic(ctx, id, req.Topic)
	case "scores":
		d, err = h.deps.SetScores(ctx, id, string(req.Correct), string(req.Wrong))
	case "back":
		d, err = h.deps.Back(ctx, id)
	case "submit":
		d, err = h.deps.SubmitDraft(ctx, id, string(req.Correct), string(req.Wrong))
	default:
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

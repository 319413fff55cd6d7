// Package wizard implements the four-step flow that records a study session:
// date, subject, topic, then scores.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/edutrack/internal/domain/model"
	"github.com/okian/edutrack/internal/domain/scoring"
)

// Step is a position in the flow.
type Step int

// Flow steps in order.
const (
	StepDate Step = iota + 1
	StepSubject
	StepTopic
	StepScores
	StepCommitted
)

// String returns the step name used in API payloads and metrics.
func (s Step) String() string {
	switch s {
	case StepDate:
		return "date"
	case StepSubject:
		return "subject"
	case StepTopic:
		return "topic"
	case StepScores:
		return "scores"
	case StepCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Appender persists a finished entry.
type Appender interface {
	Append(ctx context.Context, entry model.ProgressEntry) error
}

// Preview is the live computation shown while scores are typed.
type Preview struct {
	Ready           bool    `json:"ready"`
	Correct         int     `json:"correct"`
	Wrong           int     `json:"wrong"`
	Total           int     `json:"total"`
	NetScore        float64 `json:"netScore"`
	AccuracyPercent int     `json:"accuracyPercent"`
}

// Snapshot is a read-only copy of a flow's state.
type Snapshot struct {
	Step       int                  `json:"step"`
	StepName   string               `json:"stepName"`
	Date       string               `json:"date"`
	Subject    string               `json:"subject"`
	Topic      string               `json:"topic"`
	Topics     []string             `json:"topics"`
	CorrectRaw string               `json:"correctRaw"`
	WrongRaw   string               `json:"wrongRaw"`
	Preview    Preview              `json:"preview"`
	Entry      *model.ProgressEntry `json:"entry,omitempty"`
}

// Input carries every form value of a session at once.
type Input struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Correct string `json:"correct"`
	Wrong   string `json:"wrong"`
}

// Flow is one in-progress entry form. It is safe for concurrent use.
type Flow struct {
	mu         sync.Mutex
	step       Step
	date       string
	subject    model.Subject
	topic      string
	correctRaw string
	wrongRaw   string
	entry      *model.ProgressEntry

	now   func() time.Time
	newID func() string
}

// New creates a flow at the date step.
func New(opts ...Option) *Flow {
	f := &Flow{
		step:  StepDate,
		now:   time.Now,
		newID: newEntryID,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Step returns the current step.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// ChooseDate sets the session date. An empty date means today.
func (f *Flow) ChooseDate(date string) error {
	const op = "wizard.ChooseDate"
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(StepDate); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	date = strings.TrimSpace(date)
	if date == "" {
		date = f.now().Format(model.DateLayout)
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return fmt.Errorf("%s: %w: %q", op, ErrInvalidDate, date)
	}
	f.date = date
	f.step = StepSubject
	return nil
}

// ChooseSubject selects a subject by name or short id. A different subject
// clears a previously chosen topic.
func (f *Flow) ChooseSubject(key string) error {
	const op = "wizard.ChooseSubject"
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(StepSubject); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s, ok := model.LookupSubject(key)
	if !ok {
		return fmt.Errorf("%s: %w: %q", op, ErrUnknownSubject, key)
	}
	if s.ID != f.subject.ID {
		f.topic = ""
	}
	f.subject = s
	f.step = StepTopic
	return nil
}

// ChooseTopic selects one of the chosen subject's topics.
func (f *Flow) ChooseTopic(topic string) error {
	const op = "wizard.ChooseTopic"
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(StepTopic); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !f.subject.HasTopic(topic) {
		return fmt.Errorf("%s: %w: %q", op, ErrUnknownTopic, topic)
	}
	f.topic = topic
	f.step = StepScores
	return nil
}

// SetScores records the raw count fields as typed.
func (f *Flow) SetScores(correctRaw, wrongRaw string) error {
	const op = "wizard.SetScores"
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(StepScores); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	f.correctRaw = correctRaw
	f.wrongRaw = wrongRaw
	return nil
}

// Preview returns the live computation for the current raw fields.
func (f *Flow) Preview() Preview {
	f.mu.Lock()
	defer f.mu.Unlock()
	return preview(f.correctRaw, f.wrongRaw)
}

func preview(correctRaw, wrongRaw string) Preview {
	c, _ := scoring.ParseCount(correctRaw)
	w, _ := scoring.ParseCount(wrongRaw)
	p := Preview{
		Ready:   correctRaw != "" && wrongRaw != "",
		Correct: c,
		Wrong:   w,
		Total:   scoring.Total(c, w),
	}
	p.AccuracyPercent = scoring.AccuracyPercent(c, p.Total)
	if p.Ready {
		p.NetScore = scoring.NetScore(c, w)
	}
	return p
}

// Submit validates the counts, builds the entry and hands it to appender.
// On any failure the flow stays at the scores step.
func (f *Flow) Submit(ctx context.Context, correctRaw, wrongRaw string, appender Appender) (model.ProgressEntry, error) {
	const op = "wizard.Submit"
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.expect(StepScores); err != nil {
		return model.ProgressEntry{}, fmt.Errorf("%s: %w", op, err)
	}
	f.correctRaw = correctRaw
	f.wrongRaw = wrongRaw
	if correctRaw == "" || wrongRaw == "" {
		return model.ProgressEntry{}, fmt.Errorf("%s: %w", op, ErrIncomplete)
	}
	c, okC := scoring.ParseCount(correctRaw)
	w, okW := scoring.ParseCount(wrongRaw)
	if !okC || !okW || c < 0 || w < 0 {
		return model.ProgressEntry{}, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	entry := scoring.NewEntry(f.newID(), f.date, f.subject.Name, f.topic, c, w)
	if err := appender.Append(ctx, entry); err != nil {
		return model.ProgressEntry{}, fmt.Errorf("%s: %w", op, err)
	}
	f.entry = &entry
	f.step = StepCommitted
	return entry, nil
}

// Run drives a fresh flow through every step with in and submits it.
func (f *Flow) Run(ctx context.Context, in Input, appender Appender) (model.ProgressEntry, error) {
	if err := f.ChooseDate(in.Date); err != nil {
		return model.ProgressEntry{}, err
	}
	if err := f.ChooseSubject(in.Subject); err != nil {
		return model.ProgressEntry{}, err
	}
	if err := f.ChooseTopic(in.Topic); err != nil {
		return model.ProgressEntry{}, err
	}
	return f.Submit(ctx, in.Correct, in.Wrong, appender)
}

// Back returns to the previous step, keeping every selection.
func (f *Flow) Back() error {
	const op = "wizard.Back"
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.step {
	case StepCommitted:
		return fmt.Errorf("%s: %w", op, ErrCommitted)
	case StepDate:
		return fmt.Errorf("%s: %w", op, ErrNoPreviousStep)
	}
	f.step--
	return nil
}

// Snapshot returns a copy of the flow state.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := Snapshot{
		Step:       int(f.step),
		StepName:   f.step.String(),
		Date:       f.date,
		Subject:    f.subject.Name,
		Topic:      f.topic,
		Topics:     append([]string{}, f.subject.Topics...),
		CorrectRaw: f.correctRaw,
		WrongRaw:   f.wrongRaw,
		Preview:    preview(f.correctRaw, f.wrongRaw),
	}
	if f.entry != nil {
		e := *f.entry
		s.Entry = &e
	}
	return s
}

func (f *Flow) expect(step Step) error {
	if f.step == StepCommitted {
		return ErrCommitted
	}
	if f.step != step {
		return fmt.Errorf("%w: at %s, want %s", ErrWrongStep, f.step, step)
	}
	return nil
}

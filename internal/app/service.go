// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/okian/edutrack/internal/adapters/kvstore"
	"github.com/okian/edutrack/internal/adapters/repository"
	"github.com/okian/edutrack/internal/domain/analytics"
	"github.com/okian/edutrack/internal/domain/auth"
	"github.com/okian/edutrack/internal/domain/dashboard"
	"github.com/okian/edutrack/internal/domain/drafts"
	"github.com/okian/edutrack/internal/domain/history"
	"github.com/okian/edutrack/internal/domain/model"
	"github.com/okian/edutrack/internal/domain/wizard"
	"github.com/okian/edutrack/pkg/logger"
	"github.com/okian/edutrack/pkg/metrics"
)

// Service owns the key-value store and every component built on it.
type Service struct {
	mu sync.RWMutex

	// Core components
	kv        kvstore.Store
	ownsKV    bool
	entries   *repository.EntryStore
	sessions  *repository.SessionStore
	drafts    *drafts.Registry
	analytics *analytics.Engine

	authenticator auth.Authenticator

	// Configuration
	backend           string
	kvOptions         []kvstore.Option
	sampleFallback    bool
	loginDelay        time.Duration
	maxDrafts         int
	fixedTopPerformer string
	now               func() time.Time

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		backend:    kvstore.BackendMemory,
		loginDelay: time.Second,
		maxDrafts:  1024,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the store and builds the components.
func (s *Service) Start(ctx context.Context) error {
	const op = "service.Start"
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.kv == nil {
		kv, err := kvstore.Open(ctx, s.backend, append([]kvstore.Option{kvstore.WithLogger(s.logger.Named("kvstore"))}, s.kvOptions...)...)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.kv = kv
		s.ownsKV = true
	}

	entryOpts := []repository.Option{repository.WithLogger(s.logger.Named("repository"))}
	if s.sampleFallback {
		entryOpts = append(entryOpts, repository.WithSampleFallback())
	}
	s.entries = repository.NewEntryStore(s.kv, entryOpts...)
	s.sessions = repository.NewSessionStore(s.kv)
	s.drafts = drafts.NewRegistry(drafts.WithMaxSize(s.maxDrafts))
	s.analytics = analytics.NewEngine(analytics.WithFixedTopPerformer(s.fixedTopPerformer))
	if s.authenticator == nil {
		s.authenticator = auth.NewMockAuthenticator(auth.WithDelay(s.loginDelay))
	}

	s.started = true
	s.startedAt = s.now()
	metrics.UpdateEntriesTotal(s.entries.Count(ctx))
	metrics.UpdateDraftsOpen(0)
	s.logger.Info(ctx, "edutrack service started",
		logger.String("backend", s.kv.Backend()),
		logger.Bool("sampleFallback", s.sampleFallback),
		logger.Int("maxDrafts", s.maxDrafts),
	)
	return nil
}

// Stop releases the store if the service opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.ownsKV {
		if err := s.kv.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing store failed", logger.Error(err))
		}
		s.kv = nil
		s.ownsKV = false
	}
	s.started = false
	s.logger.Info(context.Background(), "edutrack service stopped")
}

// acquire holds the read lock for the duration of an operation so Stop waits
// for it. release must be called when err is nil. Operations holding the lock
// must not call other locking methods.
func (s *Service) acquire() (release func(), err error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return nil, ErrNotStarted
	}
	return s.mu.RUnlock, nil
}

// Login authenticates and stores the user as the current session.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	const op = "service.Login"
	release, err := s.acquire()
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	u, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		outcome := "rejected"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = "cancelled"
		}
		metrics.RecordLoginAttempt(outcome)
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.sessions.Save(ctx, u); err != nil {
		metrics.RecordLoginAttempt("error")
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	metrics.RecordLoginAttempt("success")
	s.logger.Info(ctx, "user signed in", logger.String("email", u.Email), logger.String("role", string(u.Role)))
	return u, nil
}

// Logout clears the current session.
func (s *Service) Logout(ctx context.Context) error {
	const op = "service.Logout"
	release, err := s.acquire()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CurrentUser returns the signed-in user or repository.ErrNoSession.
func (s *Service) CurrentUser(ctx context.Context) (model.User, error) {
	const op = "service.CurrentUser"
	release, err := s.acquire()
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	u, err := s.sessions.Current(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Catalog returns the subject catalog.
func (s *Service) Catalog() []model.Subject {
	return model.Catalog()
}

// Dashboard builds the dashboard view for the search term.
func (s *Service) Dashboard(ctx context.Context, term string) (dashboard.View, error) {
	const op = "service.Dashboard"
	release, err := s.acquire()
	if err != nil {
		return dashboard.View{}, fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	metrics.RecordDashboardView()
	return dashboard.Build(s.entries.Load(ctx), term), nil
}

// History returns the filtered and sorted history list.
func (s *Service) History(ctx context.Context, q history.Query) (history.View, error) {
	const op = "service.History"
	release, err := s.acquire()
	if err != nil {
		return history.View{}, fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	all := s.entries.Load(ctx)
	metrics.RecordHistoryQuery(q.SortBy)
	return history.View{
		Search:   q.Search,
		Subject:  q.Subject,
		SortBy:   q.SortBy,
		Subjects: history.Subjects(all),
		Entries:  dashboard.Rows(history.Apply(all, q)),
	}, nil
}

// ExportHistory writes the filtered and sorted history list as CSV.
func (s *Service) ExportHistory(ctx context.Context, w io.Writer, q history.Query) error {
	const op = "service.ExportHistory"
	release, err := s.acquire()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	if err := history.WriteCSV(w, history.Apply(s.entries.Load(ctx), q)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateEntry runs in one call through every step of the entry form.
func (s *Service) CreateEntry(ctx context.Context, in wizard.Input) (model.ProgressEntry, error) {
	const op = "service.CreateEntry"
	release, err := s.acquire()
	if err != nil {
		return model.ProgressEntry{}, fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	entry, err := wizard.New(wizard.WithClock(s.now)).Run(ctx, in, s.entries)
	if err != nil {
		metrics.RecordWizardTransition("create", "error")
		return model.ProgressEntry{}, fmt.Errorf("%s: %w", op, err)
	}
	metrics.RecordWizardTransition("create", "ok")
	s.logger.Debug(ctx, "entry created", logger.String("id", entry.ID), logger.String("subject", entry.Subject))
	return entry, nil
}

// OpenDraft starts a new entry form draft.
func (s *Service) OpenDraft(ctx context.Context) (drafts.Draft, error) {
	const op = "service.OpenDraft"
	release, err := s.acquire()
	if err != nil {
		return drafts.Draft{}, fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	flow := wizard.New(wizard.WithClock(s.now))
	id, evicted := s.drafts.Add(flow)
	if evicted {
		metrics.RecordDraftEvicted()
		s.logger.Debug(ctx, "oldest draft evicted", logger.Int("maxDrafts", s.maxDrafts))
	}
	metrics.UpdateDraftsOpen(s.drafts.Len())
	metrics.RecordWizardTransition("open", "ok")
	return drafts.Draft{ID: id, Snapshot: flow.Snapshot()}, nil
}

// GetDraft returns the state of a draft.
func (s *Service) GetDraft(_ context.Context, id string) (drafts.Draft, error) {
	const op = "service.GetDraft"
	release, err := s.acquire()
	if err != nil {
		return drafts.Draft{}, fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	flow, err := s.drafts.Get(id)
	if err != nil {
		return drafts.Draft{}, fmt.Errorf("%s: %w", op, err)
	}
	return drafts.Draft{ID: id, Snapshot: flow.Snapshot()}, nil
}

// ChooseDate sets the date of a draft.
func (s *Service) ChooseDate(ctx context.Context, id, date string) (drafts.Draft, error) {
	return s.advance(ctx, id, "date", func(f *wizard.Flow) error { return f.ChooseDate(date) })
}

// ChooseSubject sets the subject of a draft.
func (s *Service) ChooseSubject(ctx context.Context, id, subject string) (drafts.Draft, error) {
	return s.advance(ctx, id, "subject", func(f *wizard.Flow) error { return f.ChooseSubject(subject) })
}

// ChooseTopic sets the topic of a draft.
func (s *Service) ChooseTopic(ctx context.Context, id, topic string) (drafts.Draft, error) {
	return s.advance(ctx, id, "topic", func(f *wizard.Flow) error { return f.ChooseTopic(topic) })
}

// SetScores records raw counts on a draft for preview.
func (s *Service) SetScores(ctx context.Context, id, correct, wrong string) (drafts.Draft, error) {
	return s.advance(ctx, id, "scores", func(f *wizard.Flow) error { return f.SetScores(correct, wrong) })
}

// Back moves a draft to its previous step.
func (s *Service) Back(ctx context.Context, id string) (drafts.Draft, error) {
	return s.advance(ctx, id, "back", func(f *wizard.Flow) error { return f.Back() })
}

// SubmitDraft persists a draft's entry. A committed draft is removed from the
// registry; the returned state carries the entry.
func (s *Service) SubmitDraft(ctx context.Context, id, correct, wrong string) (drafts.Draft, error) {
	return s.advance(ctx, id, "submit", func(f *wizard.Flow) error {
		entry, err := f.Submit(ctx, correct, wrong, s.entries)
		if err != nil {
			return err
		}
		s.drafts.Remove(id)
		metrics.UpdateDraftsOpen(s.drafts.Len())
		s.logger.Debug(ctx, "draft submitted", logger.String("draft", id), logger.String("entry", entry.ID))
		return nil
	})
}

func (s *Service) advance(_ context.Context, id, action string, fn func(*wizard.Flow) error) (drafts.Draft, error) {
	op := "service." + action
	release, err := s.acquire()
	if err != nil {
		return drafts.Draft{}, fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	flow, err := s.drafts.Get(id)
	if err != nil {
		metrics.RecordWizardTransition(action, "not_found")
		return drafts.Draft{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := fn(flow); err != nil {
		metrics.RecordWizardTransition(action, "rejected")
		return drafts.Draft{}, fmt.Errorf("%s: %w", op, err)
	}
	metrics.RecordWizardTransition(action, "ok")
	return drafts.Draft{ID: id, Snapshot: flow.Snapshot()}, nil
}

// Analytics returns the teacher report. The current user must be a teacher.
func (s *Service) Analytics(ctx context.Context, f analytics.Filter) (analytics.Report, error) {
	const op = "service.Analytics"
	release, err := s.acquire()
	if err != nil {
		return analytics.Report{}, fmt.Errorf("%s: %w", op, err)
	}
	defer release()
	u, err := s.sessions.Current(ctx)
	if err != nil {
		return analytics.Report{}, fmt.Errorf("%s: %w", op, err)
	}
	if !u.IsTeacher() {
		return analytics.Report{}, fmt.Errorf("%s: %w", op, auth.ErrForbidden)
	}
	metrics.RecordAnalyticsReport(f.Scope())
	return s.analytics.Report(f), nil
}

// Students returns the analytics roster.
func (s *Service) Students() []model.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.analytics == nil {
		return nil
	}
	return s.analytics.Students()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"backend":        s.backend,
		"sampleFallback": s.sampleFallback,
		"maxDrafts":      s.maxDrafts,
	}
	if s.started {
		ctx := context.Background()
		count := s.entries.Count(ctx)
		stats["backend"] = s.kv.Backend()
		stats["totalEntries"] = count
		stats["openDrafts"] = s.drafts.Len()
		stats["evictedDrafts"] = s.drafts.Evicted()
		stats["uptimeSeconds"] = int64(s.now().Sub(s.startedAt).Seconds())

		metrics.UpdateEntriesTotal(count)
		metrics.UpdateDraftsOpen(s.drafts.Len())
	}
	return stats
}

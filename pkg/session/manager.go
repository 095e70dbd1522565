package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/permitpath/permitpath/internal/flow"
	"github.com/permitpath/permitpath/internal/logging"
	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates walkthrough sessions, ensuring safe concurrent
// operations. It uses reference counting to garbage collect unused locks.
type Manager struct {
	source ports.TreeSource
	store  ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	logger *slog.Logger
	newID  func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithIDGenerator overrides session ID generation, used by tests.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// NewManager creates a session Manager over a tree source and a store.
func NewManager(source ports.TreeSource, store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		source: source,
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a walkthrough for a project type and returns the new session
// ID together with the first question.
func (m *Manager) Create(ctx context.Context, projectType string) (string, *domain.Prompt, error) {
	eng, err := flow.New(projectType, m.source)
	if err != nil {
		return "", nil, err
	}

	sessionID := m.newID()
	prompt := eng.NextQuestion()

	if err := m.withLock(sessionID, func() error {
		return m.store.Save(ctx, sessionID, eng.Snapshot())
	}); err != nil {
		return "", nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	m.logger.Info("session created",
		"session_id", sessionID,
		"project_type", projectType,
	)
	return sessionID, prompt, nil
}

// Next returns the next applicable question for a session, or nil at the
// terminal state.
func (m *Manager) Next(ctx context.Context, sessionID string) (*domain.Prompt, error) {
	var prompt *domain.Prompt
	err := m.withEngine(ctx, sessionID, false, func(eng *flow.Engine) error {
		prompt = eng.NextQuestion()
		return nil
	})
	return prompt, err
}

// Answer validates and records a response. When validation fails, the
// failure is returned as a value, the session is not mutated, and the error
// is nil: the caller re-prompts.
func (m *Manager) Answer(ctx context.Context, sessionID, questionID string, value any) (*domain.Prompt, domain.Validation, error) {
	var (
		prompt     *domain.Prompt
		validation domain.Validation
	)

	err := m.withEngine(ctx, sessionID, true, func(eng *flow.Engine) error {
		validation = eng.ValidateAnswer(questionID, value)
		if !validation.Valid {
			return errSkipSave
		}
		prompt = eng.Answer(questionID, value)
		return nil
	})
	if err != nil {
		return nil, domain.Validation{}, err
	}

	return prompt, validation, nil
}

// Rewind discards history from a previously answered question onward so it
// can be re-answered. Returns domain.ErrNotInHistory when the question was
// never answered; the session is unchanged on failure.
func (m *Manager) Rewind(ctx context.Context, sessionID, questionID string) (*domain.Prompt, error) {
	var prompt *domain.Prompt
	err := m.withEngine(ctx, sessionID, true, func(eng *flow.Engine) error {
		var err error
		prompt, err = eng.GoBack(questionID)
		if err != nil {
			return err
		}
		return nil
	})
	return prompt, err
}

// Review returns the formatted answer history of a session.
func (m *Manager) Review(ctx context.Context, sessionID string) ([]domain.ReviewItem, error) {
	var items []domain.ReviewItem
	err := m.withEngine(ctx, sessionID, false, func(eng *flow.Engine) error {
		items = eng.Review()
		return nil
	})
	return items, err
}

// Summary returns the snapshot handed to downstream consumers.
func (m *Manager) Summary(ctx context.Context, sessionID string) (*domain.Summary, error) {
	var summary *domain.Summary
	err := m.withEngine(ctx, sessionID, false, func(eng *flow.Engine) error {
		summary = eng.Summary()
		return nil
	})
	return summary, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.withLock(sessionID, func() error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// errSkipSave aborts withEngine without persisting and without surfacing an
// error to the caller.
var errSkipSave = fmt.Errorf("skip save")

// withEngine loads a session, rebuilds its engine, runs fn, and persists the
// snapshot when mutate is set. All under the per-session lock.
func (m *Manager) withEngine(ctx context.Context, sessionID string, mutate bool, fn func(*flow.Engine) error) error {
	return m.withLock(sessionID, func() error {
		sess, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}

		eng, err := flow.Resume(sess, m.source)
		if err != nil {
			return fmt.Errorf("failed to resume session %s: %w", sessionID, err)
		}

		if err := fn(eng); err != nil {
			if err == errSkipSave {
				return nil
			}
			return err
		}

		if mutate {
			if err := m.store.Save(ctx, sessionID, eng.Snapshot()); err != nil {
				return fmt.Errorf("failed to persist session %s: %w", sessionID, err)
			}
		}
		return nil
	})
}

// acquire gets or creates a lock entry and increments its reference count.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// withLock executes fn while holding the lock for the session.
func (m *Manager) withLock(sessionID string, fn func() error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()
	return fn()
}

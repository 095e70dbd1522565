package permitpath

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/permitpath/permitpath/pkg/adapters/memory"
	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/ports"
	"github.com/permitpath/permitpath/pkg/registry"
	"github.com/permitpath/permitpath/pkg/session"
)

// App is the high-level entry point for the PermitPath library.
// It wraps the flow engine, tree registry, and session persistence behind a
// simplified walkthrough API.
type App struct {
	source   ports.TreeSource
	store    ports.SessionStore
	sessions *session.Manager
	logger   *slog.Logger
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithSource injects a custom tree source, bypassing the default YAML
// directory loading.
func WithSource(source ports.TreeSource) Option {
	return func(a *App) {
		a.source = source
	}
}

// WithStore sets the session store (default: in-memory).
func WithStore(store ports.SessionStore) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New initializes the PermitPath App.
// By default it loads question trees from YAML files in treesDir; when
// WithSource is provided, treesDir may be empty and is ignored.
func New(treesDir string, opts ...Option) (*App, error) {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.source == nil {
		if treesDir == "" {
			return nil, fmt.Errorf("treesDir is required when no custom source is provided")
		}
		reg := registry.New()
		if err := reg.LoadDir(treesDir); err != nil {
			return nil, fmt.Errorf("failed to load question trees: %w", err)
		}
		app.source = reg
	}

	if app.store == nil {
		app.store = memory.NewStore()
	}
	if app.logger == nil {
		app.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	app.sessions = session.NewManager(app.source, app.store,
		session.WithLogger(app.logger),
	)

	return app, nil
}

// ProjectTypes lists the registered project types.
func (a *App) ProjectTypes() ([]string, error) {
	return a.source.List()
}

// StartWalkthrough creates a session for a project type and returns its ID
// and the first question.
func (a *App) StartWalkthrough(ctx context.Context, projectType string) (string, *domain.Prompt, error) {
	return a.sessions.Create(ctx, projectType)
}

// NextQuestion returns the next applicable question, or nil at the terminal
// state.
func (a *App) NextQuestion(ctx context.Context, sessionID string) (*domain.Prompt, error) {
	return a.sessions.Next(ctx, sessionID)
}

// SubmitAnswer validates and records an answer. A failed validation is
// returned as a value with a nil error; the walkthrough state is unchanged.
func (a *App) SubmitAnswer(ctx context.Context, sessionID, questionID string, value any) (*domain.Prompt, domain.Validation, error) {
	return a.sessions.Answer(ctx, sessionID, questionID, value)
}

// Rewind re-opens a previously answered question, discarding it and every
// later answer.
func (a *App) Rewind(ctx context.Context, sessionID, questionID string) (*domain.Prompt, error) {
	return a.sessions.Rewind(ctx, sessionID, questionID)
}

// Review returns the formatted answer history.
func (a *App) Review(ctx context.Context, sessionID string) ([]domain.ReviewItem, error) {
	return a.sessions.Review(ctx, sessionID)
}

// Summary returns the walkthrough snapshot for downstream consumers.
func (a *App) Summary(ctx context.Context, sessionID string) (*domain.Summary, error) {
	return a.sessions.Summary(ctx, sessionID)
}

// EndWalkthrough discards a session.
func (a *App) EndWalkthrough(ctx context.Context, sessionID string) error {
	return a.sessions.Delete(ctx, sessionID)
}

// Sessions returns the underlying session manager, for adapters that need
// the full surface (e.g. the HTTP API).
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// Source returns the underlying tree source.
func (a *App) Source() ports.TreeSource {
	return a.source
}

// Watch returns a channel that signals when the underlying tree source
// changes. Returns an error if the source does not support watching.
func (a *App) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := a.source.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current tree source does not support watching")
}

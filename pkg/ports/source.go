package ports

import (
	"context"

	"github.com/permitpath/permitpath/pkg/domain"
)

// TreeSource defines how the engine resolves question trees.
// This allows the tree provider (YAML registry, embedded data, remote config)
// to be decoupled from the flow logic.
type TreeSource interface {
	// Get returns the tree registered for a project type.
	// Returns domain.ErrTreeNotFound when no tree is registered.
	Get(projectType string) (*domain.QuestionTree, error)

	// List returns the registered project types in deterministic order.
	List() ([]string, error)
}

// Watchable defines an interface for tree sources that can notify about
// backend changes. This is typically used for hot-reload in dev mode.
type Watchable interface {
	// Watch returns a channel that receives the project type of each tree
	// that changed. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}

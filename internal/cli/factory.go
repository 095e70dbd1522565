package cli

import (
	"fmt"
	"log/slog"

	backend "github.com/redis/go-redis/v9"

	"github.com/permitpath/permitpath"
	"github.com/permitpath/permitpath/pkg/adapters/file"
	"github.com/permitpath/permitpath/pkg/adapters/memory"
	redisstore "github.com/permitpath/permitpath/pkg/adapters/redis"
	"github.com/permitpath/permitpath/pkg/ports"
)

// createStore picks the session store backend from CLI options.
//
// Precedence: Redis when a URL is given, then the file store when a
// sessions directory is set, then in-memory (sessions die with the
// process).
func createStore(opts RunOptions) (ports.SessionStore, error) {
	if opts.RedisURL != "" {
		cfg, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return redisstore.NewFromClient(backend.NewClient(cfg)), nil
	}
	if opts.SessionsDir != "" {
		return file.New(opts.SessionsDir), nil
	}
	return memory.NewStore(), nil
}

// NewApp initializes a PermitPath app with standard CLI conventions.
func NewApp(opts RunOptions, logger *slog.Logger) (*permitpath.App, error) {
	store, err := createStore(opts)
	if err != nil {
		return nil, err
	}

	app, err := permitpath.New(opts.TreesDir,
		permitpath.WithStore(store),
		permitpath.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing permitpath: %w", err)
	}
	return app, nil
}

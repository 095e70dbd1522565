package cli

import (
	"fmt"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	TreesDir     string
	ProjectType  string
	SessionID    string
	Fresh        bool
	SessionsDir  string
	RedisURL     string
	FeesPath     string
	Jurisdiction string
	JSON         bool
	Debug        bool
}

// Execute handles the run command logic.
func Execute(opts RunOptions) error {
	if opts.ProjectType == "" {
		return fmt.Errorf("a project type is required (see 'permitpath trees list')")
	}
	return RunWalkthrough(opts)
}

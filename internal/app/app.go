// Package app wires the module together: configuration, logging, the example
// instance, the solver backend, the orchestrator and the report.
package app

import (
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/scenmip/scenmip/internal/config"
	"github.com/scenmip/scenmip/internal/orchestration"
	"github.com/scenmip/scenmip/internal/solver/bnb"
)

// Version is the application version, overridable at link time.
var Version = "dev"

// Application represents one configured scenmip invocation.
type Application struct {
	Config    *config.AppConfig
	ErrWriter io.Writer

	solver orchestration.Solver
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSolver substitutes the solver backend, mainly for tests.
func WithSolver(s orchestration.Solver) AppOption {
	return func(a *Application) { a.solver = s }
}

// New creates an Application by parsing command-line arguments. args is the
// full argv including the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	var cmdArgs []string
	if len(args) > 0 {
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseFlags(cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.solver == nil {
		app.solver = bnb.New()
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return app, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

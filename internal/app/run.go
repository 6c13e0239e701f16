package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scenmip/scenmip/internal/cli"
	apperrors "github.com/scenmip/scenmip/internal/errors"
	"github.com/scenmip/scenmip/internal/facility"
	"github.com/scenmip/scenmip/internal/logging"
	"github.com/scenmip/scenmip/internal/orchestration"
	"github.com/scenmip/scenmip/internal/report"
	"github.com/scenmip/scenmip/internal/server"
)

// shutdownGrace bounds the metrics server drain on exit.
const shutdownGrace = 2 * time.Second

// Run executes the solve run and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	logger := logging.NewLogger(a.ErrWriter, "app")

	instance := facility.Default()
	instance.Demand = a.Config.Demand

	handles, err := instance.Build()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error building model: %v\n", err)
		return apperrors.ExitErrorModel
	}
	registry, err := instance.Scenarios(handles)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error registering scenarios: %v\n", err)
		return apperrors.ExitErrorModel
	}

	if a.Config.LPExport != "" {
		if code := a.exportModel(handles, out); code != apperrors.ExitSuccess {
			return code
		}
	}

	// Lifecycle: run timeout plus SIGINT/SIGTERM.
	if a.Config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancelTimeout()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	recorder, stopMetrics := a.startMetrics(logger)
	defer stopMetrics()

	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
	}

	orch := orchestration.New(registry, a.solver,
		orchestration.WithLogger(logger),
		orchestration.WithRecorder(recorder),
		orchestration.WithProgress(cli.NewReporter(a.Config.Quiet), progressOut),
		orchestration.WithWarmStart(true),
		orchestration.WithMaxNodes(a.Config.MaxNodes),
	)

	results, err := orch.Run(ctx)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		switch {
		case apperrors.IsContextError(err):
			return apperrors.ExitErrorCanceled
		default:
			var solverErr apperrors.SolverFailureError
			if errors.As(err, &solverErr) {
				return apperrors.ExitErrorSolver
			}
			return apperrors.ExitErrorGeneric
		}
	}

	return a.writeReport(handles, results, out)
}

// exportModel writes the base model in LP format to the configured path.
func (a *Application) exportModel(handles facility.Handles, out io.Writer) int {
	dst := out
	if a.Config.LPExport != "-" {
		f, err := os.Create(a.Config.LPExport)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error opening LP export file: %v\n", err)
			return apperrors.ExitErrorConfig
		}
		defer f.Close()
		dst = f
	}
	if err := handles.Model.WriteLP(dst); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing LP export: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// startMetrics starts the metrics endpoint when configured. It returns the
// recorder to hand the orchestrator and a stop function for shutdown.
func (a *Application) startMetrics(logger logging.Logger) (orchestration.Recorder, func()) {
	if a.Config.MetricsAddr == "" {
		return orchestration.NopRecorder{}, func() {}
	}

	metrics := server.NewMetrics()
	srv := server.New(a.Config.MetricsAddr, metrics, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("metrics server failed", logging.Err(err))
		}
	}()

	return metrics, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", logging.Err(err))
		}
	}
}

// writeReport renders the classified results: every scenario's detail block
// plus the comparison table, or only the table in quiet mode.
func (a *Application) writeReport(handles facility.Handles, results []orchestration.SolveResult, out io.Writer) int {
	opts := []report.Option{}
	if a.Config.NoColor {
		opts = append(opts, report.WithStyles(report.PlainStyles()))
	}
	w := report.New(out, opts...)

	var err error
	if a.Config.Quiet {
		err = w.ComparisonTable(handles.Model, results)
	} else {
		err = w.Write(handles.Model, results)
	}
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing report: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

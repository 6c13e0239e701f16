package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/scenmip/scenmip/internal/errors"
	"github.com/scenmip/scenmip/internal/logging"
	"github.com/scenmip/scenmip/internal/scenario"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A buffered channel keeps the scenario loop from blocking
// when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// Orchestrator drives the solve of every scenario's effective model through
// the external Solver, strictly one scenario at a time, in ascending
// scenario-id order.
//
// An Orchestrator is not safe for concurrent use: the active-scenario cursor
// is shared mutable state, and queries for scenario k must never be issued
// while scenario j != k is still active. A future parallel extension must
// give each worker an independent Solver context rather than sharing this
// cursor.
type Orchestrator struct {
	registry  *scenario.Registry
	solver    Solver
	logger    logging.Logger
	recorder  Recorder
	reporter  ProgressReporter
	out       io.Writer
	tracer    trace.Tracer
	warmStart bool
	maxNodes  int

	// active is the currently selected scenario cursor, valid only while a
	// solve is in flight.
	active scenario.ID
}

// Option configures an Orchestrator during construction.
type Option func(*Orchestrator)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithRecorder sets the solve lifecycle recorder (e.g. the metrics backend).
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithProgress sets the progress reporter and its output writer.
func WithProgress(r ProgressReporter, out io.Writer) Option {
	return func(o *Orchestrator) {
		o.reporter = r
		o.out = out
	}
}

// WithWarmStart enables the greedy warm-start hint (see GreedyWarmStart).
func WithWarmStart(enabled bool) Option {
	return func(o *Orchestrator) { o.warmStart = enabled }
}

// WithMaxNodes bounds the per-scenario branch-and-bound node budget passed
// to the solver. Zero means unlimited.
func WithMaxNodes(n int) Option {
	return func(o *Orchestrator) { o.maxNodes = n }
}

// New creates an Orchestrator over the given registry and solver.
func New(registry *scenario.Registry, solver Solver, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: registry,
		solver:   solver,
		logger:   logging.NopLogger{},
		recorder: NopRecorder{},
		reporter: NullProgressReporter{},
		out:      io.Discard,
		tracer:   otel.Tracer("github.com/scenmip/scenmip/internal/orchestration"),
		active:   -1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ActiveScenario returns the scenario currently selected in the solver, or
// -1 when no solve is in flight.
func (o *Orchestrator) ActiveScenario() scenario.ID { return o.active }

// Run freezes the registry and solves every scenario in ascending id order.
// For each scenario it materializes the effective parameters, invokes the
// solver, classifies the raw output, and stores a SolveResult.
//
// Infeasibility and "no solution found" are captured as result statuses. A
// genuine solver failure aborts the run: the error wraps the failing
// scenario's id and the results solved so far are returned alongside it.
func (o *Orchestrator) Run(ctx context.Context) ([]SolveResult, error) {
	o.registry.Freeze()
	base := o.registry.Base()
	total := o.registry.Len()
	results := make([]SolveResult, 0, total)

	var hint []float64
	if o.warmStart {
		hint = GreedyWarmStart(base)
	}

	progressChan := make(chan ProgressUpdate, total*ProgressBufferMultiplier+1)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go o.reporter.DisplayProgress(&displayWg, progressChan, total, o.out)
	defer func() {
		close(progressChan)
		displayWg.Wait()
	}()

	o.logger.Info("starting scenario run",
		logging.Int("scenarios", total),
		logging.String("model", base.Name()),
	)

	for id := 0; id < total; id++ {
		sid := scenario.ID(id)
		s := o.registry.Scenario(sid)

		// Select the scenario: exactly one may be active in the solver.
		o.active = sid

		solveCtx, span := o.tracer.Start(ctx, "scenmip.solve",
			trace.WithAttributes(
				attribute.Int("scenario.id", id),
				attribute.String("scenario.name", s.Name()),
			),
		)

		params, err := o.registry.Materialize(sid)
		if err != nil {
			span.RecordError(err)
			span.End()
			o.active = -1
			return results, apperrors.WrapError(err, "materializing scenario %d", id)
		}

		o.recorder.SolveStarted(sid)
		start := time.Now()
		raw, err := o.solver.Solve(solveCtx, base, params, SolveOptions{
			WarmStart: hint,
			MaxNodes:  o.maxNodes,
		})
		elapsed := time.Since(start)

		if err != nil {
			span.RecordError(err)
			span.End()
			o.active = -1
			failure := apperrors.SolverFailureError{ScenarioID: id, Cause: err}
			o.logger.Error("aborting run", logging.Int("scenario", id), logging.Err(failure))
			return results, failure
		}

		status := Classify(raw, base.Sense())
		result := SolveResult{
			ScenarioID:   sid,
			ScenarioName: s.Name(),
			Status:       status,
			Objective:    raw.Objective,
			Bound:        raw.Bound,
			Duration:     elapsed,
		}
		if status == StatusOptimal {
			result.Values = raw.Values
		}
		results = append(results, result)

		o.recorder.SolveFinished(sid, status, elapsed)
		o.logger.Info("scenario solved",
			logging.Int("scenario", id),
			logging.String("name", s.Name()),
			logging.String("status", status.String()),
			logging.Float64("objective", raw.Objective),
			logging.Duration("elapsed", elapsed),
		)

		span.SetAttributes(attribute.String("scenario.status", status.String()))
		span.End()

		progressChan <- ProgressUpdate{
			ScenarioID:   sid,
			ScenarioName: s.Name(),
			Status:       status,
			Completed:    id + 1,
			Total:        total,
		}
	}

	o.active = -1
	return results, nil
}

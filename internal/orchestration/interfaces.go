//go:generate mockgen -source=interfaces.go -destination=mocks/mock_solver.go -package=mocks

package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/scenmip/scenmip/internal/model"
	"github.com/scenmip/scenmip/internal/scenario"
)

// RawSolution is the unclassified output of one solver invocation: the
// objective value and objective bound, either of which may carry the
// infinity sentinel when no finite value was found, plus the variable
// assignment indexed by variable identity.
type RawSolution struct {
	// Objective is the objective value, or a sentinel at or beyond ±Infinity.
	Objective float64
	// Bound is the proven objective bound, or a sentinel at or beyond ±Infinity.
	Bound float64
	// Values is the variable assignment indexed by variable identity. It is
	// meaningful only when the classifier reports an optimal solve.
	Values []float64
}

// SolveOptions carries per-invocation solver configuration.
type SolveOptions struct {
	// WarmStart is an optional initial assignment hint, indexed by variable
	// identity. Solvers may use it to seed their search; they must not
	// require it to be feasible.
	WarmStart []float64
	// MaxNodes bounds the branch-and-bound node budget. Zero means
	// unlimited. When the budget is exhausted before any solution is found,
	// the solve classifies as NO_SOLUTION rather than failing.
	MaxNodes int
}

// Solver is the external MILP solving capability. The structural skeleton
// (coefficient rows, operators, variable kinds) is read from the base model;
// the scenario-specific parameter vectors arrive already materialized.
//
// Solve blocks until a result or error is available. Infeasibility is not an
// error: it is encoded in the returned sentinels and classified by the
// caller. An error return means a non-recoverable solver failure and aborts
// the remaining run.
type Solver interface {
	Solve(ctx context.Context, base *model.Model, params scenario.EffectiveParameters, opts SolveOptions) (RawSolution, error)
}

// SolveResult is the classified outcome of one scenario's solve.
type SolveResult struct {
	// ScenarioID is the scenario this result belongs to.
	ScenarioID scenario.ID
	// ScenarioName is the human-readable scenario name.
	ScenarioName string
	// Status is the classified outcome.
	Status Status
	// Objective is the objective value (sentinel-valued unless OPTIMAL).
	Objective float64
	// Bound is the proven objective bound (sentinel-valued when the solver
	// proved infeasibility).
	Bound float64
	// Values is the variable assignment indexed by variable identity.
	// It is nil unless Status is StatusOptimal.
	Values []float64
	// Duration is the wall time the solver spent on this scenario.
	Duration time.Duration
}

// OpenThreshold is the cutoff above which a binary variable's assigned value
// is interpreted as logically true ("open").
const OpenThreshold = 0.5

// Open reports whether the binary variable with the given identity is open
// in this result. It returns false when no assignment is available.
func (r SolveResult) Open(id model.VariableID) bool {
	if r.Values == nil || int(id) >= len(r.Values) {
		return false
	}
	return r.Values[id] > OpenThreshold
}

// ProgressUpdate is one progress event emitted by the orchestrator while it
// walks the scenario list.
type ProgressUpdate struct {
	// ScenarioID is the scenario just solved.
	ScenarioID scenario.ID
	// ScenarioName is its human-readable name.
	ScenarioName string
	// Status is the classified outcome of that scenario.
	Status Status
	// Completed is the number of scenarios finished so far.
	Completed int
	// Total is the total number of scenarios in the run.
	Total int
}

// ProgressReporter defines the interface for displaying solve progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation (spinner, log
// lines) while the orchestrator focuses on driving the scenario loop.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and runs until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving per-scenario updates.
	//   - total: The number of scenarios being solved.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// Recorder receives solve lifecycle events, decoupling the orchestrator from
// the metrics backend.
type Recorder interface {
	// SolveStarted marks the given scenario as actively solving.
	SolveStarted(sid scenario.ID)
	// SolveFinished records the classified outcome and duration of one
	// scenario's solve.
	SolveFinished(sid scenario.ID, status Status, d time.Duration)
}

// NopRecorder is a Recorder that ignores all events.
type NopRecorder struct{}

// SolveStarted ignores the event.
func (NopRecorder) SolveStarted(scenario.ID) {}

// SolveFinished ignores the event.
func (NopRecorder) SolveFinished(scenario.ID, Status, time.Duration) {}

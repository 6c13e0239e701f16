package orchestration_test

import (
	"context"
	"errors"
	"io"
	"math"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"

	apperrors "github.com/scenmip/scenmip/internal/errors"
	"github.com/scenmip/scenmip/internal/model"
	"github.com/scenmip/scenmip/internal/orchestration"
	"github.com/scenmip/scenmip/internal/orchestration/mocks"
	"github.com/scenmip/scenmip/internal/scenario"
)

// newRegistry builds a tiny base model and a registry with the given number
// of override-free scenarios.
func newRegistry(t *testing.T, scenarios int) *scenario.Registry {
	t.Helper()
	m := model.New("tiny", model.Minimize)
	x, err := m.AddVariable(model.Binary, 100, 0, 1, "open0")
	if err != nil {
		t.Fatalf("AddVariable: %v", err)
	}
	if _, err := m.AddVariable(model.Continuous, 5, 0, math.Inf(1), "ship0"); err != nil {
		t.Fatalf("AddVariable: %v", err)
	}
	if _, err := m.AddConstraint(model.GE, 1, []model.Term{{Var: x, Coeff: 1}}, "force"); err != nil {
		t.Fatalf("AddConstraint: %v", err)
	}
	m.FinalizeStructure()

	r := scenario.NewRegistry(m)
	for i := 0; i < scenarios; i++ {
		if _, err := r.RegisterScenario(string(rune('a' + i))); err != nil {
			t.Fatalf("RegisterScenario: %v", err)
		}
	}
	return r
}

// FuncSolver adapts a function to the Solver interface for tests that need
// custom behavior without gomock expectations.
type FuncSolver func(ctx context.Context, base *model.Model, params scenario.EffectiveParameters, opts orchestration.SolveOptions) (orchestration.RawSolution, error)

// Solve invokes the underlying function.
func (f FuncSolver) Solve(ctx context.Context, base *model.Model, params scenario.EffectiveParameters, opts orchestration.SolveOptions) (orchestration.RawSolution, error) {
	return f(ctx, base, params, opts)
}

func TestRunSolvesScenariosInOrder(t *testing.T) {
	t.Parallel()
	r := newRegistry(t, 3)

	var seen []scenario.ID
	solver := FuncSolver(func(_ context.Context, _ *model.Model, params scenario.EffectiveParameters, _ orchestration.SolveOptions) (orchestration.RawSolution, error) {
		seen = append(seen, params.ScenarioID)
		return orchestration.RawSolution{Objective: float64(params.ScenarioID), Bound: float64(params.ScenarioID), Values: []float64{1, 0}}, nil
	})

	o := orchestration.New(r, solver)
	results, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, sid := range seen {
		if int(sid) != i {
			t.Errorf("solve order position %d saw scenario %d", i, sid)
		}
	}
	for i, res := range results {
		if int(res.ScenarioID) != i {
			t.Errorf("results[%d].ScenarioID = %d", i, res.ScenarioID)
		}
		if res.Status != orchestration.StatusOptimal {
			t.Errorf("results[%d].Status = %v, want OPTIMAL", i, res.Status)
		}
		if res.Values == nil {
			t.Errorf("results[%d].Values missing for optimal solve", i)
		}
	}

	t.Run("run freezes the registry", func(t *testing.T) {
		if _, err := r.RegisterScenario("late"); err == nil {
			t.Error("expected registration to be closed after Run")
		}
	})
}

func TestRunAbortsOnSolverFailure(t *testing.T) {
	t.Parallel()
	r := newRegistry(t, 3)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	solver := mocks.NewMockSolver(ctrl)

	boom := errors.New("numerical failure")
	gomock.InOrder(
		solver.EXPECT().Solve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(orchestration.RawSolution{Objective: 5, Bound: 5, Values: []float64{1, 0}}, nil),
		solver.EXPECT().Solve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(orchestration.RawSolution{}, boom),
	)

	o := orchestration.New(r, solver)
	results, err := o.Run(context.Background())

	var failure apperrors.SolverFailureError
	if !errors.As(err, &failure) {
		t.Fatalf("expected SolverFailureError, got %v", err)
	}
	if failure.ScenarioID != 1 {
		t.Errorf("failing scenario = %d, want 1", failure.ScenarioID)
	}
	if !errors.Is(err, boom) {
		t.Error("expected error chain to preserve the solver cause")
	}
	if len(results) != 1 {
		t.Errorf("expected the single completed result, got %d", len(results))
	}
}

func TestRunClassifiesOutcomesAsData(t *testing.T) {
	t.Parallel()
	r := newRegistry(t, 2)

	solver := FuncSolver(func(_ context.Context, _ *model.Model, params scenario.EffectiveParameters, _ orchestration.SolveOptions) (orchestration.RawSolution, error) {
		if params.ScenarioID == 0 {
			return orchestration.RawSolution{Objective: 42, Bound: 42, Values: []float64{1, 0}}, nil
		}
		// Scenario 1 is proven infeasible: both value and bound sentinel.
		return orchestration.RawSolution{Objective: orchestration.Infinity, Bound: orchestration.Infinity}, nil
	})

	o := orchestration.New(r, solver)
	results, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("infeasibility must not be an error, got %v", err)
	}
	if results[0].Status != orchestration.StatusOptimal {
		t.Errorf("results[0].Status = %v, want OPTIMAL", results[0].Status)
	}
	if results[1].Status != orchestration.StatusInfeasible {
		t.Errorf("results[1].Status = %v, want INFEASIBLE", results[1].Status)
	}
	if results[1].Values != nil {
		t.Error("infeasible result must not carry a variable assignment")
	}
}

func TestRunProvidesWarmStartHint(t *testing.T) {
	t.Parallel()
	r := newRegistry(t, 2)

	var hints [][]float64
	solver := FuncSolver(func(_ context.Context, _ *model.Model, _ scenario.EffectiveParameters, opts orchestration.SolveOptions) (orchestration.RawSolution, error) {
		hints = append(hints, opts.WarmStart)
		return orchestration.RawSolution{Objective: 1, Bound: 1, Values: []float64{1, 0}}, nil
	})

	o := orchestration.New(r, solver, orchestration.WithWarmStart(true))
	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(hints) != 2 {
		t.Fatalf("expected 2 solves, got %d", len(hints))
	}
	for i, h := range hints {
		if h == nil {
			t.Fatalf("solve %d received no warm-start hint", i)
		}
		// The single binary is its own maximum, so it is hinted closed.
		if h[0] != 0 {
			t.Errorf("solve %d hint[0] = %v, want 0", i, h[0])
		}
	}
	// The hint is derived once, before scenario 0, and reused as-is.
	if &hints[0][0] != &hints[1][0] {
		t.Error("expected the same hint slice across scenarios")
	}
}

func TestRunNotifiesRecorderAndProgress(t *testing.T) {
	t.Parallel()
	r := newRegistry(t, 2)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	recorder := mocks.NewMockRecorder(ctrl)
	gomock.InOrder(
		recorder.EXPECT().SolveStarted(scenario.ID(0)),
		recorder.EXPECT().SolveFinished(scenario.ID(0), orchestration.StatusOptimal, gomock.Any()),
		recorder.EXPECT().SolveStarted(scenario.ID(1)),
		recorder.EXPECT().SolveFinished(scenario.ID(1), orchestration.StatusOptimal, gomock.Any()),
	)

	solver := FuncSolver(func(_ context.Context, _ *model.Model, _ scenario.EffectiveParameters, _ orchestration.SolveOptions) (orchestration.RawSolution, error) {
		return orchestration.RawSolution{Objective: 1, Bound: 1, Values: []float64{1, 0}}, nil
	})

	var mu sync.Mutex
	var updates []orchestration.ProgressUpdate
	reporter := progressFunc(func(wg *sync.WaitGroup, ch <-chan orchestration.ProgressUpdate) {
		defer wg.Done()
		for u := range ch {
			mu.Lock()
			updates = append(updates, u)
			mu.Unlock()
		}
	})

	o := orchestration.New(r, solver,
		orchestration.WithRecorder(recorder),
		orchestration.WithProgress(reporter, nil),
	)
	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(updates) != 2 {
		t.Fatalf("expected 2 progress updates, got %d", len(updates))
	}
	if updates[1].Completed != 2 || updates[1].Total != 2 {
		t.Errorf("final update = %+v, want Completed=2 Total=2", updates[1])
	}
}

// progressFunc adapts a function to orchestration.ProgressReporter.
type progressFunc func(wg *sync.WaitGroup, ch <-chan orchestration.ProgressUpdate)

func (f progressFunc) DisplayProgress(wg *sync.WaitGroup, ch <-chan orchestration.ProgressUpdate, _ int, _ io.Writer) {
	f(wg, ch)
}

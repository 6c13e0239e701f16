package orchestration

import "github.com/scenmip/scenmip/internal/model"

// Infinity is the finite sentinel representing "no finite value was found".
// It follows the 1e30 convention used by LP solver libraries; any magnitude
// at or beyond it (including IEEE infinities) counts as the sentinel.
const Infinity = 1e30

// Status is the classified outcome of one scenario's solve.
type Status int

const (
	// StatusOptimal means the solver found a proven optimal solution.
	StatusOptimal Status = iota
	// StatusInfeasible means the solver proved that no feasible point
	// exists for the scenario's effective parameters.
	StatusInfeasible
	// StatusNoSolution means no feasible point was found within the
	// resources allowed, but infeasibility was not proven. Absent a
	// configured resource limit this outcome signals a solver or
	// configuration bug.
	StatusNoSolution
)

// String returns the status name used in logs and reports.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusNoSolution:
		return "NO_SOLUTION"
	}
	return "UNKNOWN"
}

// Classify interprets a raw solver output against the infinity sentinel.
// Objective value and bound are normalized by the objective sense, so the
// same rule covers minimization (failure sentinel +Infinity) and
// maximization (failure sentinel -Infinity):
//
//   - sense-normalized objective at or beyond Infinity and bound likewise
//     means the solver proved no feasible point exists: INFEASIBLE.
//   - sentinel objective with a finite bound means a feasible point may
//     exist but none was found within the allowed resources: NO_SOLUTION.
//   - anything else is a finite objective: OPTIMAL.
func Classify(raw RawSolution, sense model.Sense) Status {
	sign := sense.Sign()
	if sign*raw.Objective >= Infinity {
		if sign*raw.Bound >= Infinity {
			return StatusInfeasible
		}
		return StatusNoSolution
	}
	return StatusOptimal
}

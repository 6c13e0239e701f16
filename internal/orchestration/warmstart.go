package orchestration

import (
	"math"

	"github.com/scenmip/scenmip/internal/model"
)

// GreedyWarmStart constructs an initial assignment hint for facility-style
// models: every binary decision variable is set to 1 (open) except the one
// whose base objective coefficient is the maximum among the binaries, which
// is set to 0 (closed). Closing the most expensive option is typically close
// to optimal for fixed-charge problems and accelerates branch-and-bound.
//
// Continuous variables are seeded at their base lower bound (0 when the
// lower bound is -Inf). The hint is derived once from the base model, before
// scenario 0, and is not re-derived per scenario.
//
// The returned slice is indexed by variable identity. It is nil when the
// model has no binary variables, since there is nothing to guess.
func GreedyWarmStart(base *model.Model) []float64 {
	binaries := base.BinaryVariables()
	if len(binaries) == 0 {
		return nil
	}

	maxID := binaries[0]
	maxObj := base.Variable(maxID).Obj
	for _, id := range binaries[1:] {
		if obj := base.Variable(id).Obj; obj > maxObj {
			maxID, maxObj = id, obj
		}
	}

	hint := make([]float64, base.NumVariables())
	for _, v := range base.Variables() {
		switch {
		case v.Kind == model.Binary && v.ID == maxID:
			hint[v.ID] = 0
		case v.Kind == model.Binary:
			hint[v.ID] = 1
		case math.IsInf(v.Lower, -1):
			hint[v.ID] = 0
		default:
			hint[v.ID] = v.Lower
		}
	}
	return hint
}

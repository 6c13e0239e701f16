package scenario

import (
	apperrors "github.com/scenmip/scenmip/internal/errors"
)

// EffectiveParameters are the per-scenario parameter vectors obtained by
// merging base model values with one scenario's overrides. They hold only
// the small delta-resolved vectors; the constraint coefficient rows and
// operators stay in the base model and are referenced, never duplicated, so
// memory stays proportional to the scenario count rather than to scenario
// count times model size.
type EffectiveParameters struct {
	// ScenarioID is the scenario these parameters were materialized for.
	ScenarioID ID
	// Obj holds the effective objective coefficients indexed by variable id.
	Obj []float64
	// Lower holds the effective lower bounds indexed by variable id.
	Lower []float64
	// Upper holds the effective upper bounds indexed by variable id.
	Upper []float64
	// RHS holds the effective right-hand sides indexed by constraint id.
	RHS []float64
}

// Materialize produces the effective parameter vectors for one scenario. For
// every variable the base objective coefficient and bounds are taken, then
// replaced by the scenario's override when one is present; likewise for every
// constraint's right-hand side.
//
// Materialize is a pure function of (base model, scenario): it allocates
// fresh vectors on every call and is idempotent as long as no override
// changes in between.
func (r *Registry) Materialize(sid ID) (EffectiveParameters, error) {
	s := r.Scenario(sid)
	if s == nil {
		return EffectiveParameters{}, apperrors.InvalidReferenceError{Kind: "scenario", ID: int(sid)}
	}

	obj := r.base.BaseObjective()
	lower, upper := r.base.BaseBounds()
	rhs := r.base.BaseRHS()

	for vid, v := range s.obj {
		obj[vid] = v
	}
	for vid, b := range s.bounds {
		if b.hasLower {
			lower[vid] = b.lower
		}
		if b.hasUpper {
			upper[vid] = b.upper
		}
	}
	for cid, v := range s.rhs {
		rhs[cid] = v
	}

	return EffectiveParameters{
		ScenarioID: sid,
		Obj:        obj,
		Lower:      lower,
		Upper:      upper,
		RHS:        rhs,
	}, nil
}

// Package scenario holds the per-scenario parameter deltas against a base
// model and materializes effective parameter vectors for solving. A scenario
// is a sparse overlay: any field it does not override resolves to the base
// model's value, never to another scenario's override.
package scenario

import (
	apperrors "github.com/scenmip/scenmip/internal/errors"
	"github.com/scenmip/scenmip/internal/model"
)

// ID identifies a scenario within a registry. Identities are 0-based,
// contiguous, and assigned in registration order.
type ID int

// boundOverride is a sparse bound delta. Lower and upper are independent
// sub-fields: overriding one must not disturb the other.
type boundOverride struct {
	lower    float64
	upper    float64
	hasLower bool
	hasUpper bool
}

// Scenario is one named overlay of parameter overrides. Overrides are stored
// as maps keyed by identity with explicit presence, so "no override" stays
// distinguishable from "override to the base value".
type Scenario struct {
	id     ID
	name   string
	rhs    map[model.ConstraintID]float64
	obj    map[model.VariableID]float64
	bounds map[model.VariableID]boundOverride
}

// ID returns the scenario identity.
func (s *Scenario) ID() ID { return s.id }

// Name returns the human-readable scenario name.
func (s *Scenario) Name() string { return s.name }

// Registry is the fixed-size ordered collection of scenarios for one base
// model. Scenarios are registered and populated during the setup phase, then
// frozen before the solve phase begins.
type Registry struct {
	base      *model.Model
	scenarios []*Scenario
	frozen    bool
}

// NewRegistry creates an empty registry bound to the given base model.
func NewRegistry(base *model.Model) *Registry {
	return &Registry{base: base}
}

// Base returns the base model the registry validates against.
func (r *Registry) Base() *model.Model { return r.base }

// Len returns the number of registered scenarios.
func (r *Registry) Len() int { return len(r.scenarios) }

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool { return r.frozen }

// RegisterScenario appends a scenario with no overrides and returns its
// identity. Registration fails with a RegistrationClosedError once the
// registry is frozen: the scenario count is fixed before any solve begins.
func (r *Registry) RegisterScenario(name string) (ID, error) {
	if r.frozen {
		return 0, apperrors.RegistrationClosedError{Name: name}
	}
	id := ID(len(r.scenarios))
	r.scenarios = append(r.scenarios, &Scenario{
		id:     id,
		name:   name,
		rhs:    make(map[model.ConstraintID]float64),
		obj:    make(map[model.VariableID]float64),
		bounds: make(map[model.VariableID]boundOverride),
	})
	return id, nil
}

// Scenario returns the scenario with the given identity, or nil when the
// identity is out of range.
func (r *Registry) Scenario(id ID) *Scenario {
	if id < 0 || int(id) >= len(r.scenarios) {
		return nil
	}
	return r.scenarios[id]
}

// Names returns the scenario names in identity order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.scenarios))
	for i, s := range r.scenarios {
		names[i] = s.name
	}
	return names
}

// Freeze locks the scenario count and all overrides. Freezing twice is a
// no-op.
func (r *Registry) Freeze() {
	r.frozen = true
}

// checkScenario validates the scenario identity for a setter.
func (r *Registry) checkScenario(op string, sid ID) (*Scenario, error) {
	if r.frozen {
		return nil, apperrors.FrozenRegistryError{Operation: op}
	}
	s := r.Scenario(sid)
	if s == nil {
		return nil, apperrors.InvalidReferenceError{Kind: "scenario", ID: int(sid)}
	}
	return s, nil
}

// SetRHSOverride replaces the right-hand side of the given constraint in the
// given scenario. Setting the same constraint twice overwrites the prior
// value: overrides never accumulate.
func (r *Registry) SetRHSOverride(sid ID, cid model.ConstraintID, value float64) error {
	s, err := r.checkScenario("SetRHSOverride", sid)
	if err != nil {
		return err
	}
	if !r.base.HasConstraint(cid) {
		return apperrors.InvalidReferenceError{Kind: "constraint", ID: int(cid)}
	}
	s.rhs[cid] = value
	return nil
}

// SetObjOverride replaces the objective coefficient of the given variable in
// the given scenario. Last write wins.
func (r *Registry) SetObjOverride(sid ID, vid model.VariableID, value float64) error {
	s, err := r.checkScenario("SetObjOverride", sid)
	if err != nil {
		return err
	}
	if !r.base.HasVariable(vid) {
		return apperrors.InvalidReferenceError{Kind: "variable", ID: int(vid)}
	}
	s.obj[vid] = value
	return nil
}

// SetLowerBoundOverride replaces only the lower bound of the given variable
// in the given scenario. A previously overridden upper bound is preserved.
func (r *Registry) SetLowerBoundOverride(sid ID, vid model.VariableID, lb float64) error {
	s, err := r.checkScenario("SetLowerBoundOverride", sid)
	if err != nil {
		return err
	}
	if !r.base.HasVariable(vid) {
		return apperrors.InvalidReferenceError{Kind: "variable", ID: int(vid)}
	}
	b := s.bounds[vid]
	b.lower, b.hasLower = lb, true
	s.bounds[vid] = b
	return nil
}

// SetUpperBoundOverride replaces only the upper bound of the given variable
// in the given scenario. A previously overridden lower bound is preserved.
func (r *Registry) SetUpperBoundOverride(sid ID, vid model.VariableID, ub float64) error {
	s, err := r.checkScenario("SetUpperBoundOverride", sid)
	if err != nil {
		return err
	}
	if !r.base.HasVariable(vid) {
		return apperrors.InvalidReferenceError{Kind: "variable", ID: int(vid)}
	}
	b := s.bounds[vid]
	b.upper, b.hasUpper = ub, true
	s.bounds[vid] = b
	return nil
}

// SetBoundOverride replaces the lower and/or upper bound of the given
// variable. A nil pointer leaves the corresponding sub-field untouched, so
// overriding only the lower bound never resets the upper bound, and vice
// versa.
func (r *Registry) SetBoundOverride(sid ID, vid model.VariableID, lb, ub *float64) error {
	s, err := r.checkScenario("SetBoundOverride", sid)
	if err != nil {
		return err
	}
	if !r.base.HasVariable(vid) {
		return apperrors.InvalidReferenceError{Kind: "variable", ID: int(vid)}
	}

	b := s.bounds[vid]
	if lb != nil {
		b.lower, b.hasLower = *lb, true
	}
	if ub != nil {
		b.upper, b.hasUpper = *ub, true
	}
	s.bounds[vid] = b
	return nil
}

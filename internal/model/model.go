// Package model defines the structural skeleton of a mixed-integer linear
// program: variables, constraints, and the base parameter values every
// scenario inherits. The skeleton is built once, frozen, and shared by all
// scenarios; only right-hand sides, objective coefficients, and variable
// bounds may vary per scenario.
package model

import (
	"math"

	apperrors "github.com/scenmip/scenmip/internal/errors"
)

// VariableID identifies a variable within a base model. Identities are
// assigned in creation order, starting at 0, and are never reused.
type VariableID int

// ConstraintID identifies a constraint within a base model. Identities are
// assigned in creation order, starting at 0, and are never reused.
type ConstraintID int

// VarKind is the domain of a decision variable.
type VarKind int

const (
	// Continuous is a real-valued variable.
	Continuous VarKind = iota
	// Binary is an integer variable restricted to {0, 1}.
	Binary
)

// String returns the kind name.
func (k VarKind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Binary:
		return "binary"
	}
	return "unknown"
}

// RelOp is the relational operator of a linear constraint.
type RelOp int

const (
	// LE is the ≤ relation.
	LE RelOp = iota
	// EQ is the = relation.
	EQ
	// GE is the ≥ relation.
	GE
)

// String returns the operator in LP-format notation.
func (op RelOp) String() string {
	switch op {
	case LE:
		return "<="
	case EQ:
		return "="
	case GE:
		return ">="
	}
	return "?"
}

// Sense is the optimization direction of the objective.
type Sense int

const (
	// Minimize seeks the smallest objective value.
	Minimize Sense = iota
	// Maximize seeks the largest objective value.
	Maximize
)

// Sign returns +1 for minimization and -1 for maximization. Classification
// of infinity sentinels normalizes objective values by this sign.
func (s Sense) Sign() float64 {
	if s == Maximize {
		return -1
	}
	return 1
}

// String returns the sense name.
func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Variable is one column of the model: its kind, base objective coefficient,
// and base bounds. Bounds may be ±Inf for continuous variables.
type Variable struct {
	ID    VariableID
	Name  string
	Kind  VarKind
	Obj   float64
	Lower float64
	Upper float64
}

// Term is one (variable, coefficient) entry of a constraint row.
type Term struct {
	Var   VariableID
	Coeff float64
}

// Constraint is one row of the model. The coefficient row is part of the
// structural skeleton and is identical across all scenarios; only the
// right-hand side may be overridden per scenario.
type Constraint struct {
	ID    ConstraintID
	Name  string
	Op    RelOp
	RHS   float64
	Terms []Term
}

// Model is the structural skeleton plus base parameter values. It is built
// once during the setup phase and immutable after FinalizeStructure, except
// for solvers reading it.
type Model struct {
	name        string
	sense       Sense
	variables   []Variable
	constraints []Constraint
	varNames    map[string]VariableID
	consNames   map[string]ConstraintID
	frozen      bool
}

// New creates an empty model with the given name and objective sense.
func New(name string, sense Sense) *Model {
	return &Model{
		name:      name,
		sense:     sense,
		varNames:  make(map[string]VariableID),
		consNames: make(map[string]ConstraintID),
	}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Sense returns the objective sense.
func (m *Model) Sense() Sense { return m.sense }

// Frozen reports whether FinalizeStructure has been called.
func (m *Model) Frozen() bool { return m.frozen }

// NumVariables returns the number of variables.
func (m *Model) NumVariables() int { return len(m.variables) }

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int { return len(m.constraints) }

// AddVariable appends a variable and returns its identity.
//
// Binary variables are clamped into [0, 1]: a lower bound below 0 is raised
// to 0 and an upper bound above 1 is lowered to 1, matching the binary
// domain.
//
// Returns a StructureFrozenError after FinalizeStructure, and a
// DuplicateNameError when the name is already taken.
func (m *Model) AddVariable(kind VarKind, objCoeff, lb, ub float64, name string) (VariableID, error) {
	if m.frozen {
		return 0, apperrors.StructureFrozenError{Operation: "AddVariable"}
	}
	if _, exists := m.varNames[name]; exists {
		return 0, apperrors.DuplicateNameError{Kind: "variable", Name: name}
	}
	if kind == Binary {
		lb = math.Max(lb, 0)
		ub = math.Min(ub, 1)
	}
	id := VariableID(len(m.variables))
	m.variables = append(m.variables, Variable{
		ID:    id,
		Name:  name,
		Kind:  kind,
		Obj:   objCoeff,
		Lower: lb,
		Upper: ub,
	})
	m.varNames[name] = id
	return id, nil
}

// AddConstraint appends a constraint row and returns its identity. The terms
// slice is copied; the caller may reuse it.
//
// Returns a StructureFrozenError after FinalizeStructure, a
// DuplicateNameError when the name is already taken, and an
// InvalidReferenceError when a term names an unknown variable.
func (m *Model) AddConstraint(op RelOp, rhs float64, terms []Term, name string) (ConstraintID, error) {
	if m.frozen {
		return 0, apperrors.StructureFrozenError{Operation: "AddConstraint"}
	}
	if _, exists := m.consNames[name]; exists {
		return 0, apperrors.DuplicateNameError{Kind: "constraint", Name: name}
	}
	for _, t := range terms {
		if !m.HasVariable(t.Var) {
			return 0, apperrors.InvalidReferenceError{Kind: "variable", ID: int(t.Var)}
		}
	}
	id := ConstraintID(len(m.constraints))
	row := make([]Term, len(terms))
	copy(row, terms)
	m.constraints = append(m.constraints, Constraint{
		ID:    id,
		Name:  name,
		Op:    op,
		RHS:   rhs,
		Terms: row,
	})
	m.consNames[name] = id
	return id, nil
}

// FinalizeStructure locks the variable and constraint set. After this call
// any AddVariable or AddConstraint returns a StructureFrozenError.
// Finalizing twice is a no-op.
func (m *Model) FinalizeStructure() {
	m.frozen = true
}

// HasVariable reports whether id names an existing variable.
func (m *Model) HasVariable(id VariableID) bool {
	return id >= 0 && int(id) < len(m.variables)
}

// HasConstraint reports whether id names an existing constraint.
func (m *Model) HasConstraint(id ConstraintID) bool {
	return id >= 0 && int(id) < len(m.constraints)
}

// Variable returns the variable with the given identity. The returned value
// is a copy; the skeleton cannot be mutated through it.
func (m *Model) Variable(id VariableID) Variable {
	return m.variables[id]
}

// Constraint returns the constraint with the given identity. The Terms slice
// is the canonical row owned by the model and must not be modified.
func (m *Model) Constraint(id ConstraintID) Constraint {
	return m.constraints[id]
}

// Variables returns the variables in identity order. The slice is shared;
// callers must treat it as read-only.
func (m *Model) Variables() []Variable { return m.variables }

// Constraints returns the constraints in identity order. The slice is
// shared; callers must treat it as read-only.
func (m *Model) Constraints() []Constraint { return m.constraints }

// BinaryVariables returns the identities of all binary variables in
// identity order.
func (m *Model) BinaryVariables() []VariableID {
	var ids []VariableID
	for _, v := range m.variables {
		if v.Kind == Binary {
			ids = append(ids, v.ID)
		}
	}
	return ids
}

// BaseObjective returns a fresh slice of base objective coefficients indexed
// by variable identity.
func (m *Model) BaseObjective() []float64 {
	obj := make([]float64, len(m.variables))
	for i, v := range m.variables {
		obj[i] = v.Obj
	}
	return obj
}

// BaseRHS returns a fresh slice of base right-hand sides indexed by
// constraint identity.
func (m *Model) BaseRHS() []float64 {
	rhs := make([]float64, len(m.constraints))
	for i, c := range m.constraints {
		rhs[i] = c.RHS
	}
	return rhs
}

// BaseBounds returns fresh lower and upper bound slices indexed by variable
// identity.
func (m *Model) BaseBounds() (lower, upper []float64) {
	lower = make([]float64, len(m.variables))
	upper = make([]float64, len(m.variables))
	for i, v := range m.variables {
		lower[i] = v.Lower
		upper[i] = v.Upper
	}
	return lower, upper
}

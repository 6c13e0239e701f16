// Package bnb is the reference Solver backend: a branch-and-bound MILP
// solver over gonum's simplex LP implementation. Each node's LP relaxation
// is converted to standard equality form (shifted variables, slack columns)
// and solved with lp.Simplex; binary variables are driven to integrality by
// branching on the first fractional one.
//
// The backend reads the structural skeleton from the base model and the
// per-scenario parameter vectors from the materialized EffectiveParameters,
// so a single backend instance serves every scenario of a run.
package bnb

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/scenmip/scenmip/internal/logging"
	"github.com/scenmip/scenmip/internal/model"
	"github.com/scenmip/scenmip/internal/orchestration"
	"github.com/scenmip/scenmip/internal/scenario"
)

// DefaultTolerance is the integrality and feasibility tolerance.
const DefaultTolerance = 1e-6

// Backend implements orchestration.Solver.
type Backend struct {
	tol    float64
	logger logging.Logger
}

// Verify interface compliance.
var _ orchestration.Solver = (*Backend)(nil)

// Option configures a Backend during construction.
type Option func(*Backend)

// WithTolerance sets the integrality/feasibility tolerance.
func WithTolerance(tol float64) Option {
	return func(b *Backend) { b.tol = tol }
}

// WithLogger sets the structured logger used for node-level debug output.
func WithLogger(l logging.Logger) Option {
	return func(b *Backend) { b.logger = l }
}

// New creates a branch-and-bound backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		tol:    DefaultTolerance,
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// branchBound is one branching cut in shifted variable space:
// coeff * x'[varIdx] <= rhs.
type branchBound struct {
	varIdx int
	coeff  float64
	rhs    float64
}

// searchNode is an unexplored subproblem: its cut set plus the relaxation
// value of the node it was branched from, a valid lower bound on every
// solution below it.
type searchNode struct {
	cuts   []branchBound
	lowerZ float64
}

// problem is a scenario's model in internal minimization form over shifted
// variables x' = x - lower, x' >= 0.
type problem struct {
	n       int       // original variable count
	c       []float64 // internal objective (always minimized)
	shift   []float64 // per-variable lower bound used for shifting
	offset  float64   // sum of obj[j]*shift[j] in the original objective
	sign    float64   // +1 minimize, -1 maximize
	integer []bool    // integrality flags per original variable

	eqRows  [][]float64 // equality constraint rows
	eqRHS   []float64
	geRows  [][]float64 // inequality rows, all normalized to row·x' <= rhs
	geRHS   []float64
}

// Solve implements orchestration.Solver.
func (b *Backend) Solve(ctx context.Context, base *model.Model, params scenario.EffectiveParameters, opts orchestration.SolveOptions) (orchestration.RawSolution, error) {
	if err := ctx.Err(); err != nil {
		return orchestration.RawSolution{}, err
	}

	p, infeasible, err := buildProblem(base, params)
	if err != nil {
		return orchestration.RawSolution{}, err
	}
	if infeasible {
		// Crossed bounds: no LP needed to prove infeasibility.
		return infeasibleSolution(p.sign), nil
	}

	// Root relaxation.
	rootZ, rootX, err := p.solveRelaxation(nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return infeasibleSolution(p.sign), nil
	case err != nil:
		return orchestration.RawSolution{}, fmt.Errorf("root relaxation: %w", err)
	}

	if p.allIntegral(rootX, b.tol) {
		return p.finish(rootZ, rootX, rootZ), nil
	}

	// Seed the incumbent from the warm-start hint when it is feasible.
	var incumbentX []float64
	incumbentZ := math.Inf(1)
	if hint := p.shiftHint(opts.WarmStart); hint != nil && p.feasible(hint, b.tol) {
		incumbentX = hint
		incumbentZ = dot(p.c, hint)
	}

	left, right := p.branchOn(rootX, nil, b.tol)
	queue := []searchNode{
		{cuts: left, lowerZ: rootZ},
		{cuts: right, lowerZ: rootZ},
	}

	nodes := 0
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return orchestration.RawSolution{}, err
		}
		if opts.MaxNodes > 0 && nodes >= opts.MaxNodes {
			// Budget exhausted: report the best proven bound, which is the
			// weakest relaxation value still outstanding in the queue. With
			// an incumbent the gap stays visible to the caller; without one
			// the sentinel objective and finite bound classify as
			// NO_SOLUTION.
			boundZ := incumbentZ
			for _, n := range queue {
				if n.lowerZ < boundZ {
					boundZ = n.lowerZ
				}
			}
			if incumbentX != nil {
				return p.finish(incumbentZ, incumbentX, boundZ), nil
			}
			return orchestration.RawSolution{
				Objective: p.sign * orchestration.Infinity,
				Bound:     p.offset + p.sign*boundZ,
			}, nil
		}

		var node searchNode
		node, queue = queue[0], queue[1:]
		cuts := node.cuts
		nodes++

		z, x, err := p.solveRelaxation(cuts)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			continue
		case err != nil:
			return orchestration.RawSolution{}, fmt.Errorf("node %d: %w", nodes, err)
		}

		if z >= incumbentZ-b.tol {
			// The relaxation already matches or exceeds the incumbent;
			// no descendant can improve on it.
			continue
		}
		if p.allIntegral(x, b.tol) {
			incumbentZ = z
			incumbentX = x
			b.logger.Debug("incumbent improved",
				logging.Int("node", nodes),
				logging.Float64("objective", p.offset+p.sign*z),
			)
			continue
		}
		left, right := p.branchOn(x, cuts, b.tol)
		queue = append(queue,
			searchNode{cuts: left, lowerZ: z},
			searchNode{cuts: right, lowerZ: z},
		)
	}

	if incumbentX == nil {
		// The tree is exhausted: integer infeasibility is proven.
		return infeasibleSolution(p.sign), nil
	}
	return p.finish(incumbentZ, incumbentX, incumbentZ), nil
}

// infeasibleSolution returns the sentinel pair proving infeasibility for the
// given objective sign.
func infeasibleSolution(sign float64) orchestration.RawSolution {
	return orchestration.RawSolution{
		Objective: sign * orchestration.Infinity,
		Bound:     sign * orchestration.Infinity,
	}
}

// buildProblem converts a (base model, effective parameters) pair into the
// internal shifted minimization form. It reports infeasible=true when a
// variable's effective bounds cross.
func buildProblem(base *model.Model, params scenario.EffectiveParameters) (*problem, bool, error) {
	n := base.NumVariables()
	p := &problem{
		n:       n,
		c:       make([]float64, n),
		shift:   make([]float64, n),
		integer: make([]bool, n),
		sign:    base.Sense().Sign(),
	}

	for j := 0; j < n; j++ {
		lo, up := params.Lower[j], params.Upper[j]
		if math.IsInf(lo, -1) {
			return nil, false, fmt.Errorf("variable %q: lower bound -Inf is not supported by the simplex conversion", base.Variable(model.VariableID(j)).Name)
		}
		if up < lo {
			return p, true, nil
		}
		p.shift[j] = lo
		p.offset += params.Obj[j] * lo
		p.c[j] = p.sign * params.Obj[j]
		p.integer[j] = base.Variable(model.VariableID(j)).Kind == model.Binary
	}

	for _, cons := range base.Constraints() {
		row := make([]float64, n)
		adjusted := params.RHS[cons.ID]
		for _, t := range cons.Terms {
			row[t.Var] += t.Coeff
			adjusted -= t.Coeff * p.shift[t.Var]
		}
		switch cons.Op {
		case model.EQ:
			p.eqRows = append(p.eqRows, row)
			p.eqRHS = append(p.eqRHS, adjusted)
		case model.LE:
			p.geRows = append(p.geRows, row)
			p.geRHS = append(p.geRHS, adjusted)
		case model.GE:
			neg := make([]float64, n)
			for j, v := range row {
				neg[j] = -v
			}
			p.geRows = append(p.geRows, neg)
			p.geRHS = append(p.geRHS, -adjusted)
		}
	}

	// Finite upper bounds become single-variable inequality rows in the
	// shifted space: x'_j <= upper - lower.
	for j := 0; j < n; j++ {
		if up := params.Upper[j]; !math.IsInf(up, 1) {
			row := make([]float64, n)
			row[j] = 1
			p.geRows = append(p.geRows, row)
			p.geRHS = append(p.geRHS, up-p.shift[j])
		}
	}

	return p, false, nil
}

// solveRelaxation solves the LP relaxation with the given branching cuts
// appended, returning the internal objective value and the shifted solution
// restricted to the original variables.
func (p *problem) solveRelaxation(cuts []branchBound) (float64, []float64, error) {
	nIneq := len(p.geRows) + len(cuts)
	nEq := len(p.eqRows)
	rows := nEq + nIneq
	cols := p.n + nIneq

	if rows == 0 {
		// No constraints at all: each variable sits at zero unless its cost
		// is negative, in which case the relaxation is unbounded.
		for _, cj := range p.c {
			if cj < 0 {
				return 0, nil, lp.ErrUnbounded
			}
		}
		return 0, make([]float64, p.n), nil
	}

	a := mat.NewDense(rows, cols, nil)
	bvec := make([]float64, rows)
	for i, row := range p.eqRows {
		for j, v := range row {
			a.Set(i, j, v)
		}
		bvec[i] = p.eqRHS[i]
	}
	// Inequality rows get one slack column each: row·x' + s = rhs, s >= 0.
	for i, row := range p.geRows {
		r := nEq + i
		for j, v := range row {
			a.Set(r, j, v)
		}
		a.Set(r, p.n+i, 1)
		bvec[r] = p.geRHS[i]
	}
	for i, cut := range cuts {
		r := nEq + len(p.geRows) + i
		a.Set(r, cut.varIdx, cut.coeff)
		a.Set(r, p.n+len(p.geRows)+i, 1)
		bvec[r] = cut.rhs
	}

	c := make([]float64, cols)
	copy(c, p.c)

	z, x, err := lp.Simplex(c, a, bvec, 0, nil)
	if err != nil {
		return 0, nil, err
	}
	return z, x[:p.n], nil
}

// allIntegral reports whether every integer-constrained variable is within
// tol of an integer value.
func (p *problem) allIntegral(x []float64, tol float64) bool {
	for j, isInt := range p.integer {
		if !isInt {
			continue
		}
		if math.Abs(x[j]-math.Round(x[j])) > tol {
			return false
		}
	}
	return true
}

// branchOn picks the first fractional integer variable and produces the two
// child cut sets x'_j <= floor(v) and x'_j >= ceil(v).
func (p *problem) branchOn(x []float64, parent []branchBound, tol float64) (left, right []branchBound) {
	branchVar := -1
	for j, isInt := range p.integer {
		if isInt && math.Abs(x[j]-math.Round(x[j])) > tol {
			branchVar = j
			break
		}
	}
	if branchVar < 0 {
		// Callers only branch on fractional solutions.
		panic("bnb: branchOn called with integral solution")
	}

	v := x[branchVar]
	left = appendCut(parent, branchBound{varIdx: branchVar, coeff: 1, rhs: math.Floor(v)})
	right = appendCut(parent, branchBound{varIdx: branchVar, coeff: -1, rhs: -math.Ceil(v)})
	return left, right
}

// appendCut copies the parent cut set and appends one more cut.
func appendCut(parent []branchBound, cut branchBound) []branchBound {
	child := make([]branchBound, len(parent), len(parent)+1)
	copy(child, parent)
	return append(child, cut)
}

// shiftHint converts a warm-start hint from original variable space into
// shifted space, or returns nil when the hint is absent or ill-sized.
func (p *problem) shiftHint(hint []float64) []float64 {
	if len(hint) != p.n {
		return nil
	}
	shifted := make([]float64, p.n)
	for j, v := range hint {
		shifted[j] = v - p.shift[j]
	}
	return shifted
}

// feasible reports whether the shifted point satisfies nonnegativity, all
// constraint rows, and integrality within tol.
func (p *problem) feasible(x []float64, tol float64) bool {
	for j, v := range x {
		if v < -tol {
			return false
		}
		if p.integer[j] && math.Abs(v-math.Round(v)) > tol {
			return false
		}
	}
	for i, row := range p.eqRows {
		if math.Abs(dot(row, x)-p.eqRHS[i]) > tol {
			return false
		}
	}
	for i, row := range p.geRows {
		if dot(row, x) > p.geRHS[i]+tol {
			return false
		}
	}
	return true
}

// finish converts an internal incumbent back to original variable space and
// objective sense. boundZ is the internal value actually proven; it matches z
// on a completed search and lags it when the node budget ran out first.
func (p *problem) finish(z float64, x []float64, boundZ float64) orchestration.RawSolution {
	values := make([]float64, p.n)
	for j := 0; j < p.n; j++ {
		v := p.shift[j] + x[j]
		if p.integer[j] {
			v = math.Round(v)
		}
		values[j] = v
	}
	return orchestration.RawSolution{
		Objective: p.offset + p.sign*z,
		Bound:     p.offset + p.sign*boundZ,
		Values:    values,
	}
}

// dot returns the inner product of a and b.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

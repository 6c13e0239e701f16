// Package facility holds the example facility-location instance shipped with
// the scenmip binary: a set of plants with fixed opening costs, per-unit
// transport costs and capacities, serving a single warehouse demand. It also
// builds the canned scenario set the demo run walks through.
package facility

import (
	"fmt"
	"math"

	"github.com/scenmip/scenmip/internal/model"
	"github.com/scenmip/scenmip/internal/scenario"
)

// Plant is one candidate facility.
type Plant struct {
	Name      string
	FixedCost float64 // cost of opening the plant at all
	UnitCost  float64 // cost per unit shipped to the warehouse
	Capacity  float64 // maximum units the plant can ship when open
}

// Instance is a complete facility-location input.
type Instance struct {
	Name   string
	Plants []Plant
	Demand float64
}

// Handles exposes the variable and constraint identities of a built
// instance, so callers can address overrides and read solutions.
type Handles struct {
	Model  *model.Model
	Open   []model.VariableID // one binary per plant
	Ship   []model.VariableID // one continuous per plant
	Demand model.ConstraintID
}

// Default returns the two-plant demo instance. The cheap plant wins the base
// case: opening plant-b and shipping all 10 units through it costs
// 50 + 3*10 = 80.
func Default() Instance {
	return Instance{
		Name:   "two-plant demo",
		Demand: 10,
		Plants: []Plant{
			{Name: "plant-a", FixedCost: 100, UnitCost: 5, Capacity: 20},
			{Name: "plant-b", FixedCost: 50, UnitCost: 3, Capacity: 20},
		},
	}
}

// TotalCapacity sums the capacities of all plants.
func (in Instance) TotalCapacity() float64 {
	var total float64
	for _, p := range in.Plants {
		total += p.Capacity
	}
	return total
}

// Build converts the instance into a frozen base model:
//
//	min  sum_p fixed_p*open_p + unit_p*ship_p
//	s.t. sum_p ship_p              = demand
//	     ship_p - cap_p*open_p    <= 0        for each plant p
//	     open_p binary, ship_p >= 0
func (in Instance) Build() (Handles, error) {
	m := model.New(in.Name, model.Minimize)
	h := Handles{
		Model: m,
		Open:  make([]model.VariableID, len(in.Plants)),
		Ship:  make([]model.VariableID, len(in.Plants)),
	}

	for i, p := range in.Plants {
		open, err := m.AddVariable(model.Binary, p.FixedCost, 0, 1, "open_"+p.Name)
		if err != nil {
			return Handles{}, fmt.Errorf("adding open variable for %s: %w", p.Name, err)
		}
		ship, err := m.AddVariable(model.Continuous, p.UnitCost, 0, math.Inf(1), "ship_"+p.Name)
		if err != nil {
			return Handles{}, fmt.Errorf("adding ship variable for %s: %w", p.Name, err)
		}
		h.Open[i], h.Ship[i] = open, ship
	}

	demandTerms := make([]model.Term, len(in.Plants))
	for i := range in.Plants {
		demandTerms[i] = model.Term{Var: h.Ship[i], Coeff: 1}
	}
	demand, err := m.AddConstraint(model.EQ, in.Demand, demandTerms, "demand")
	if err != nil {
		return Handles{}, fmt.Errorf("adding demand constraint: %w", err)
	}
	h.Demand = demand

	for i, p := range in.Plants {
		terms := []model.Term{
			{Var: h.Ship[i], Coeff: 1},
			{Var: h.Open[i], Coeff: -p.Capacity},
		}
		if _, err := m.AddConstraint(model.LE, 0, terms, "link_"+p.Name); err != nil {
			return Handles{}, fmt.Errorf("adding link constraint for %s: %w", p.Name, err)
		}
	}

	m.FinalizeStructure()
	return h, nil
}

// Scenarios registers the canned demo scenario set against the built
// instance and freezes the registry:
//
//	0  base            no overrides
//	1  force plant-a   lower bound 1 on the first plant's open variable
//	2  demand surge    demand scaled by 1.5
//	3  demand spike    demand beyond total capacity (infeasible on purpose)
func (in Instance) Scenarios(h Handles) (*scenario.Registry, error) {
	reg := scenario.NewRegistry(h.Model)

	if _, err := reg.RegisterScenario("base"); err != nil {
		return nil, err
	}

	forced, err := reg.RegisterScenario("force " + in.Plants[0].Name)
	if err != nil {
		return nil, err
	}
	if err := reg.SetLowerBoundOverride(forced, h.Open[0], 1); err != nil {
		return nil, err
	}

	surge, err := reg.RegisterScenario("demand surge")
	if err != nil {
		return nil, err
	}
	if err := reg.SetRHSOverride(surge, h.Demand, in.Demand*1.5); err != nil {
		return nil, err
	}

	spike, err := reg.RegisterScenario("demand spike")
	if err != nil {
		return nil, err
	}
	if err := reg.SetRHSOverride(spike, h.Demand, in.TotalCapacity()+10); err != nil {
		return nil, err
	}

	reg.Freeze()
	return reg, nil
}

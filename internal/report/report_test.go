package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/scenmip/scenmip/internal/model"
	"github.com/scenmip/scenmip/internal/orchestration"
)

func buildModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("report-test", model.Minimize)

	mustVar := func(kind model.VarKind, obj float64, name string) model.VariableID {
		t.Helper()
		ub := math.Inf(1)
		if kind == model.Binary {
			ub = 1
		}
		id, err := m.AddVariable(kind, obj, 0, ub, name)
		if err != nil {
			t.Fatalf("AddVariable(%s): %v", name, err)
		}
		return id
	}
	mustVar(model.Binary, 100, "open_a")
	mustVar(model.Binary, 50, "open_b")
	mustVar(model.Continuous, 5, "ship_a")
	mustVar(model.Continuous, 3, "ship_b")

	m.FinalizeStructure()
	return m
}

func results() []orchestration.SolveResult {
	return []orchestration.SolveResult{
		{
			ScenarioID:   0,
			ScenarioName: "base",
			Status:       orchestration.StatusOptimal,
			Objective:    80,
			Bound:        80,
			Values:       []float64{0, 1, 0, 10},
			Duration:     3 * time.Millisecond,
		},
		{
			ScenarioID:   1,
			ScenarioName: "demand spike",
			Status:       orchestration.StatusInfeasible,
			Objective:    orchestration.Infinity,
			Bound:        orchestration.Infinity,
		},
		{
			ScenarioID:   2,
			ScenarioName: "budget run",
			Status:       orchestration.StatusNoSolution,
			Objective:    orchestration.Infinity,
			Bound:        55,
		},
	}
}

func TestScenarioDetail(t *testing.T) {
	t.Parallel()

	m := buildModel(t)
	var buf bytes.Buffer
	w := New(&buf, WithStyles(PlainStyles()))

	if err := w.ScenarioDetail(m, results()[0]); err != nil {
		t.Fatalf("ScenarioDetail: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"scenario 0: base",
		"total cost 80",
		"3ms",
		"open_a",
		"closed",
		"open_b",
		"open",
		"ship_b",
		"10",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("detail output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ship_a") {
		t.Errorf("detail output lists zero flow ship_a:\n%s", out)
	}
}

func TestScenarioDetailNonOptimal(t *testing.T) {
	t.Parallel()

	m := buildModel(t)
	testCases := []struct {
		name   string
		result orchestration.SolveResult
		want   string
	}{
		{"infeasible", results()[1], "infeasible"},
		{"no solution", results()[2], "no solution found"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			w := New(&buf, WithStyles(PlainStyles()))
			if err := w.ScenarioDetail(m, tc.result); err != nil {
				t.Fatalf("ScenarioDetail: %v", err)
			}
			if !strings.Contains(buf.String(), tc.want) {
				t.Errorf("output missing %q:\n%s", tc.want, buf.String())
			}
			if strings.Contains(buf.String(), "total cost") {
				t.Errorf("non-optimal output reports a cost:\n%s", buf.String())
			}
		})
	}
}

func TestComparisonTable(t *testing.T) {
	t.Parallel()

	m := buildModel(t)
	var buf bytes.Buffer
	w := New(&buf, WithStyles(PlainStyles()))

	if err := w.ComparisonTable(m, results()); err != nil {
		t.Fatalf("ComparisonTable: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("table has %d lines, want header plus 3 rows:\n%s", len(lines), buf.String())
	}

	header := lines[0]
	for _, col := range []string{"#", "open_a", "open_b", "cost", "scenario"} {
		if !strings.Contains(header, col) {
			t.Errorf("header missing column %q: %q", col, header)
		}
	}

	// Row 0: plant a closed gets a marker, plant b open stays blank.
	if !strings.Contains(lines[1], "x") {
		t.Errorf("row 0 missing closed marker: %q", lines[1])
	}
	if !strings.Contains(lines[1], "80") || !strings.Contains(lines[1], "base") {
		t.Errorf("row 0 missing cost or name: %q", lines[1])
	}

	if !strings.Contains(lines[2], "infeasible") {
		t.Errorf("row 1 missing infeasible text: %q", lines[2])
	}
	if !strings.Contains(lines[3], "no solution found") {
		t.Errorf("row 2 missing no-solution text: %q", lines[3])
	}

	// Rows are fixed width up to the scenario name column.
	nameIdx := strings.Index(header, "scenario")
	for i, line := range lines[1:] {
		if len(line) < nameIdx {
			t.Errorf("row %d shorter than the name column offset: %q", i, line)
		}
	}
}

// Package report renders classified solve results: a per-scenario detail
// listing and a fixed-width comparison table across all scenarios.
//
// The table carries one marker column per facility (binary variable): blank
// means the facility is open, "x" means closed. Scenarios without a usable
// assignment show their status text in the cost column instead.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/scenmip/scenmip/internal/format"
	"github.com/scenmip/scenmip/internal/model"
	"github.com/scenmip/scenmip/internal/orchestration"
)

// Styles groups the lipgloss styles applied to report output.
type Styles struct {
	Header     lipgloss.Style
	Optimal    lipgloss.Style
	Infeasible lipgloss.Style
	NoSolution lipgloss.Style
	Name       lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true),
		Optimal:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		Infeasible: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")),
		NoSolution: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
		Name:       lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

// PlainStyles returns styles that render text unmodified, for NO_COLOR
// terminals and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:     plain,
		Optimal:    plain,
		Infeasible: plain,
		NoSolution: plain,
		Name:       plain,
	}
}

// Writer renders reports to an output stream.
type Writer struct {
	out    io.Writer
	styles Styles
}

// Option configures a Writer.
type Option func(*Writer)

// WithStyles overrides the default styles.
func WithStyles(s Styles) Option {
	return func(w *Writer) { w.styles = s }
}

// New creates a report writer.
func New(out io.Writer, opts ...Option) *Writer {
	w := &Writer{
		out:    out,
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// statusText is the cost-column text for results without a finite cost.
func statusText(s orchestration.Status) string {
	switch s {
	case orchestration.StatusInfeasible:
		return "infeasible"
	case orchestration.StatusNoSolution:
		return "no solution found"
	default:
		return s.String()
	}
}

func (w *Writer) statusStyle(s orchestration.Status) lipgloss.Style {
	switch s {
	case orchestration.StatusOptimal:
		return w.styles.Optimal
	case orchestration.StatusInfeasible:
		return w.styles.Infeasible
	default:
		return w.styles.NoSolution
	}
}

// ScenarioDetail writes the full detail block for one result: status, total
// cost, open/closed decision per binary variable and every nonzero flow.
func (w *Writer) ScenarioDetail(base *model.Model, r orchestration.SolveResult) error {
	header := fmt.Sprintf("scenario %d: %s", r.ScenarioID, r.ScenarioName)
	if _, err := fmt.Fprintln(w.out, w.styles.Header.Render(header)); err != nil {
		return err
	}

	if r.Status != orchestration.StatusOptimal {
		_, err := fmt.Fprintf(w.out, "  %s\n\n", w.statusStyle(r.Status).Render(statusText(r.Status)))
		return err
	}

	if _, err := fmt.Fprintf(w.out, "  total cost %s (%s)\n",
		format.FormatCost(r.Objective),
		format.FormatExecutionDuration(r.Duration),
	); err != nil {
		return err
	}

	for _, id := range base.BinaryVariables() {
		state := "closed"
		if r.Open(id) {
			state = "open"
		}
		if _, err := fmt.Fprintf(w.out, "  %-20s %s\n", base.Variable(id).Name, state); err != nil {
			return err
		}
	}

	for _, v := range base.Variables() {
		if v.Kind == model.Binary {
			continue
		}
		val := r.Values[v.ID]
		if val == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w.out, "  %-20s %s\n", v.Name, format.FormatValue(val)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w.out)
	return err
}

// ComparisonTable writes one fixed-width row per scenario: index, a marker
// column per facility (blank when open, "x" when closed), the total cost or
// status text, and the scenario name.
func (w *Writer) ComparisonTable(base *model.Model, results []orchestration.SolveResult) error {
	facilities := base.BinaryVariables()

	markerWidths := make([]int, len(facilities))
	headerCells := make([]string, len(facilities))
	for i, id := range facilities {
		name := base.Variable(id).Name
		markerWidths[i] = len(name)
		headerCells[i] = name
	}

	const costWidth = 18

	header := fmt.Sprintf("%4s", "#")
	for i, cell := range headerCells {
		header += fmt.Sprintf("  %-*s", markerWidths[i], cell)
	}
	header += fmt.Sprintf("  %*s  %s", costWidth, "cost", "scenario")
	if _, err := fmt.Fprintln(w.out, w.styles.Header.Render(header)); err != nil {
		return err
	}

	for _, r := range results {
		row := fmt.Sprintf("%4d", r.ScenarioID)
		for i, id := range facilities {
			marker := ""
			if r.Status == orchestration.StatusOptimal && !r.Open(id) {
				marker = "x"
			}
			row += fmt.Sprintf("  %-*s", markerWidths[i], marker)
		}

		cost := statusText(r.Status)
		if r.Status == orchestration.StatusOptimal {
			cost = format.FormatCost(r.Objective)
		}
		row += fmt.Sprintf("  %s  %s",
			w.statusStyle(r.Status).Render(fmt.Sprintf("%*s", costWidth, cost)),
			w.styles.Name.Render(r.ScenarioName),
		)
		if _, err := fmt.Fprintln(w.out, row); err != nil {
			return err
		}
	}
	return nil
}

// Write renders every scenario's detail block followed by the comparison
// table.
func (w *Writer) Write(base *model.Model, results []orchestration.SolveResult) error {
	for _, r := range results {
		if err := w.ScenarioDetail(base, r); err != nil {
			return err
		}
	}
	return w.ComparisonTable(base, results)
}

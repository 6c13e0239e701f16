package model

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// WriteLP dumps the model in CPLEX LP interchange format for inspection and
// debugging with external tools. The dump reflects the base parameter
// values; scenario overrides are not applied here.
func (m *Model) WriteLP(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\\ model %s\n", m.name)
	if m.sense == Maximize {
		b.WriteString("Maximize\n")
	} else {
		b.WriteString("Minimize\n")
	}
	b.WriteString(" obj:")
	first := true
	for _, v := range m.variables {
		if v.Obj == 0 {
			continue
		}
		writeTerm(&b, v.Obj, v.Name, first)
		first = false
	}
	if first {
		b.WriteString(" 0")
	}
	b.WriteString("\n")

	b.WriteString("Subject To\n")
	for _, c := range m.constraints {
		fmt.Fprintf(&b, " %s:", c.Name)
		firstTerm := true
		for _, t := range c.Terms {
			if t.Coeff == 0 {
				continue
			}
			writeTerm(&b, t.Coeff, m.variables[t.Var].Name, firstTerm)
			firstTerm = false
		}
		fmt.Fprintf(&b, " %s %s\n", c.Op, trimFloat(c.RHS))
	}

	b.WriteString("Bounds\n")
	for _, v := range m.variables {
		if v.Kind == Binary {
			continue
		}
		switch {
		case math.IsInf(v.Lower, -1) && math.IsInf(v.Upper, 1):
			fmt.Fprintf(&b, " %s free\n", v.Name)
		case math.IsInf(v.Upper, 1):
			fmt.Fprintf(&b, " %s >= %s\n", v.Name, trimFloat(v.Lower))
		case math.IsInf(v.Lower, -1):
			fmt.Fprintf(&b, " %s <= %s\n", v.Name, trimFloat(v.Upper))
		default:
			fmt.Fprintf(&b, " %s <= %s <= %s\n", trimFloat(v.Lower), v.Name, trimFloat(v.Upper))
		}
	}

	binaries := m.BinaryVariables()
	if len(binaries) > 0 {
		b.WriteString("Binaries\n")
		for _, id := range binaries {
			fmt.Fprintf(&b, " %s\n", m.variables[id].Name)
		}
	}
	b.WriteString("End\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// writeTerm appends "+ c name" or "- c name", omitting unit coefficients.
func writeTerm(b *strings.Builder, coeff float64, name string, first bool) {
	sign := "+"
	if coeff < 0 {
		sign = "-"
		coeff = -coeff
	}
	if first && sign == "+" {
		sign = ""
	}
	if sign != "" {
		b.WriteString(" " + sign)
	}
	if coeff == 1 {
		b.WriteString(" " + name)
	} else {
		fmt.Fprintf(b, " %s %s", trimFloat(coeff), name)
	}
}

// trimFloat renders a float without trailing zeros.
func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

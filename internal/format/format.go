// Package format provides display formatting helpers shared by the report
// and CLI layers.
package format

import (
	"fmt"
	"strings"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatCost renders a total cost with two decimals, dropping the decimal
// part entirely when the value is a whole number.
func FormatCost(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if strings.HasSuffix(s, ".00") {
		return s[:len(s)-3]
	}
	return s
}

// FormatValue renders a variable value compactly: whole numbers without a
// decimal part, everything else with up to four significant decimals.
func FormatValue(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

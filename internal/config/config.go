// Package config defines the application configuration and its three
// sources, in priority order: CLI flags, SCENMIP_* environment variables,
// built-in defaults.
package config

import (
	"errors"
	"flag"
	"io"
	"time"

	apperrors "github.com/scenmip/scenmip/internal/errors"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "SCENMIP_"

// Defaults.
const (
	DefaultDemand  = 10.0
	DefaultTimeout = 5 * time.Minute
)

// AppConfig holds the resolved runtime configuration.
type AppConfig struct {
	// Demand is the base warehouse demand of the example instance.
	Demand float64
	// Timeout bounds the whole solve run. Zero disables the timeout.
	Timeout time.Duration
	// MaxNodes bounds the branch-and-bound node budget per scenario.
	// Zero means unlimited.
	MaxNodes int
	// Quiet disables the progress spinner.
	Quiet bool
	// Verbose enables debug logging.
	Verbose bool
	// NoColor disables styled report output.
	NoColor bool
	// MetricsAddr is the listen address of the Prometheus endpoint.
	// Empty disables the metrics server.
	MetricsAddr string
	// LPExport is a file path receiving the base model in LP format.
	// Empty disables the export; "-" writes to standard output.
	LPExport string
}

// ParseFlags parses the command line into an AppConfig, applies environment
// overrides for flags not explicitly set, and validates the result. Usage
// and error output go to the given writer.
func ParseFlags(args []string, output io.Writer) (*AppConfig, error) {
	config := &AppConfig{}

	fs := flag.NewFlagSet("scenmip", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Float64Var(&config.Demand, "demand", DefaultDemand, "Base warehouse demand of the example instance")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Overall solve run timeout (0 disables)")
	fs.IntVar(&config.MaxNodes, "max-nodes", 0, "Branch-and-bound node budget per scenario (0 = unlimited)")
	fs.BoolVar(&config.Quiet, "quiet", false, "Disable the progress spinner")
	fs.BoolVar(&config.Quiet, "q", false, "Disable the progress spinner (shorthand)")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logging (shorthand)")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable styled report output")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Listen address for the Prometheus /metrics endpoint (empty disables)")
	fs.StringVar(&config.LPExport, "lp-export", "", "Write the base model in LP format to this file (\"-\" for stdout)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, apperrors.NewConfigError("%s", err.Error())
	}

	applyEnvOverrides(config, fs)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values no run could honor.
func (c *AppConfig) Validate() error {
	if c.Demand <= 0 {
		return apperrors.NewConfigError("demand must be positive, got %v", c.Demand)
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("timeout must not be negative, got %v", c.Timeout)
	}
	if c.MaxNodes < 0 {
		return apperrors.NewConfigError("max-nodes must not be negative, got %d", c.MaxNodes)
	}
	return nil
}

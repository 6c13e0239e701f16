//go:generate mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks

// Package cli provides the terminal presentation of a solve run: a spinner
// that tracks scenario progress while the orchestrator works through the
// registry.
package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/scenmip/scenmip/internal/orchestration"
)

// ProgressRefreshRate defines the refresh frequency of the spinner.
const ProgressRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows the progress reporter to be decoupled from a specific spinner
// implementation, facilitating easier testing. It defines the essential
// controls: starting, stopping, and updating the status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner wraps `spinner.Spinner` to implement the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

// newSpinner is a constructor hook replaced in tests.
var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerReporter renders per-scenario progress with a terminal spinner.
// It implements orchestration.ProgressReporter.
type SpinnerReporter struct{}

// Verify interface compliance.
var _ orchestration.ProgressReporter = SpinnerReporter{}

// DisplayProgress consumes updates until the channel closes, keeping the
// spinner suffix in sync with the latest solved scenario. It runs in its own
// goroutine and signals completion through wg.
func (SpinnerReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()

	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(fmt.Sprintf(" solving 0/%d scenarios", total))
	sp.Start()
	defer sp.Stop()

	for update := range progressChan {
		sp.UpdateSuffix(fmt.Sprintf(" solving %d/%d scenarios (last: %s %s)",
			update.Completed, update.Total, update.ScenarioName, update.Status))
	}
}

// NewReporter returns the progress reporter matching the quiet flag: a
// spinner for interactive runs, the orchestrator's silent drain otherwise.
func NewReporter(quiet bool) orchestration.ProgressReporter {
	if quiet {
		return orchestration.NullProgressReporter{}
	}
	return SpinnerReporter{}
}

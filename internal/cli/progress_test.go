package cli

import (
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/briandowns/spinner"

	"github.com/scenmip/scenmip/internal/orchestration"
)

// fakeSpinner records lifecycle calls and suffix updates.
type fakeSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (f *fakeSpinner) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
}

func (f *fakeSpinner) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeSpinner) UpdateSuffix(suffix string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suffixes = append(f.suffixes, suffix)
}

// swapSpinner installs a fake spinner constructor for the test's duration.
func swapSpinner(t *testing.T, fake *fakeSpinner) {
	t.Helper()
	orig := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return fake }
	t.Cleanup(func() { newSpinner = orig })
}

func TestSpinnerReporterDisplaysUpdates(t *testing.T) {
	fake := &fakeSpinner{}
	swapSpinner(t, fake)

	ch := make(chan orchestration.ProgressUpdate, 2)
	ch <- orchestration.ProgressUpdate{ScenarioName: "base", Status: orchestration.StatusOptimal, Completed: 1, Total: 2}
	ch <- orchestration.ProgressUpdate{ScenarioName: "spike", Status: orchestration.StatusInfeasible, Completed: 2, Total: 2}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	SpinnerReporter{}.DisplayProgress(&wg, ch, 2, io.Discard)
	wg.Wait()

	if !fake.started || !fake.stopped {
		t.Errorf("spinner lifecycle = (started=%v, stopped=%v), want both true", fake.started, fake.stopped)
	}
	if len(fake.suffixes) != 3 {
		t.Fatalf("got %d suffix updates, want 3 (initial plus one per scenario)", len(fake.suffixes))
	}
	if !strings.Contains(fake.suffixes[0], "0/2") {
		t.Errorf("initial suffix = %q, want it to mention 0/2", fake.suffixes[0])
	}
	if !strings.Contains(fake.suffixes[1], "base") || !strings.Contains(fake.suffixes[1], "OPTIMAL") {
		t.Errorf("first update suffix = %q, want scenario name and status", fake.suffixes[1])
	}
	if !strings.Contains(fake.suffixes[2], "2/2") {
		t.Errorf("final suffix = %q, want it to mention 2/2", fake.suffixes[2])
	}
}

func TestNewReporter(t *testing.T) {
	t.Parallel()

	if _, ok := NewReporter(true).(orchestration.NullProgressReporter); !ok {
		t.Error("NewReporter(true) is not the silent reporter")
	}
	if _, ok := NewReporter(false).(SpinnerReporter); !ok {
		t.Error("NewReporter(false) is not the spinner reporter")
	}
}

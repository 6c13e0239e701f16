// Package orchestration drives the sequential solve of every scenario's
// effective model and classifies the raw solver outcomes. It decouples
// business logic from presentation via the ProgressReporter and Recorder
// interfaces, and from the solving algorithm via the Solver interface.
package orchestration

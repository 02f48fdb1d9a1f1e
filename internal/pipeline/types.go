// Package pipeline describes the stages of a generation run and the
// progress events the driver emits while running them.
package pipeline

import (
	"sync"
	"time"
)

// Stage is one phase of processing a package.
type Stage string

const (
	StageLoad      Stage = "load"
	StageParse     Stage = "parse"
	StageTransform Stage = "transform"
	StageEmit      Stage = "emit"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageLoad, StageParse, StageTransform, StageEmit}

// Status is the progress state of a package within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusSkipped marks a package without contract declarations.
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Event reports progress for a package directory, or for the whole run
// when Package is empty.
type Event struct {
	Package string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; packages are processed in parallel.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings accumulates stage durations across packages.
type Timings struct {
	mu     sync.Mutex
	stages map[Stage]time.Duration
}

// Add records dur for stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

// Duration returns the recorded duration for stage.
func (t *Timings) Duration(stage Stage) time.Duration {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stages[stage]
}

// Sum returns the total over the given stages, or over all stages when
// none are given.
func (t *Timings) Sum(stages ...Stage) time.Duration {
	if len(stages) == 0 {
		stages = Stages
	}
	var total time.Duration
	for _, s := range stages {
		total += t.Duration(s)
	}
	return total
}

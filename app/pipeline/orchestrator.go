package pipeline

import (
	"context"
	"log/slog"
	"sync"
)

// Recorder receives every finished result, e.g. to keep a run history.
type Recorder interface {
	Record(ctx context.Context, result Result) error
}

// Orchestrator runs the primary pipeline to completion first, then every
// dependent concurrently. Dependents read the primary's artifacts, so they
// never start before it has finished. One failing pipeline does not stop the
// others.
type Orchestrator struct {
	primary    *Pipeline
	dependents []*Pipeline
	recorder   Recorder
}

// NewOrchestrator accepts a nil primary when only dependents are selected.
func NewOrchestrator(primary *Pipeline, dependents ...*Pipeline) *Orchestrator {
	return &Orchestrator{
		primary:    primary,
		dependents: dependents,
	}
}

func (o *Orchestrator) WithRecorder(recorder Recorder) *Orchestrator {
	o.recorder = recorder
	return o
}

// Run returns one result per pipeline, primary first, then dependents in
// declaration order.
func (o *Orchestrator) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(o.dependents)+1)

	if o.primary != nil {
		result := o.primary.Run(ctx)
		o.record(ctx, result)
		results = append(results, result)
	}

	dependentResults := make([]Result, len(o.dependents))
	var wg sync.WaitGroup
	for i, p := range o.dependents {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dependentResults[i] = p.Run(ctx)
			o.record(ctx, dependentResults[i])
		}()
	}
	wg.Wait()

	return append(results, dependentResults...)
}

func (o *Orchestrator) record(ctx context.Context, result Result) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.Record(ctx, result); err != nil {
		slog.Warn("Failed to record pipeline run", "set", result.Set, "error", err)
	}
}

// Failed returns the unsuccessful results.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}

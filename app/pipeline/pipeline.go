// Package pipeline runs icon sets through fetch, validation, normalization
// and persistence, and orders the runs of dependent sets.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/icon-lists/app/iconset"
	"github.com/lysyi3m/icon-lists/app/layout"
	"github.com/lysyi3m/icon-lists/app/schema"
)

type State string

const (
	StateIdle         State = "idle"
	StateFetching     State = "fetching"
	StateValidating   State = "validating"
	StateTransforming State = "transforming"
	StatePersisting   State = "persisting"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// Persister stores the bundle of one output and returns the written paths.
type Persister interface {
	Write(ctx context.Context, output string, bundle *layout.Bundle) ([]string, error)
}

// Output summarizes one persisted variant.
type Output struct {
	Name       string
	Icons      int
	Categories int
	Tags       int
	Files      []string
}

type Result struct {
	Set     string
	State   State
	Success bool
	// FailedAt is the step that was running when the pipeline failed.
	FailedAt    State
	Err         error
	Diagnostics []schema.Diagnostic
	Outputs     []Output
	Warnings    int
	StartedAt   time.Time
	Duration    time.Duration
}

type Pipeline struct {
	source    iconset.Source
	persister Persister
	state     State
	StartedAt *time.Time
}

func New(source iconset.Source, persister Persister) *Pipeline {
	return &Pipeline{
		source:    source,
		persister: persister,
		state:     StateIdle,
	}
}

func (p *Pipeline) Name() string {
	return p.source.Name()
}

func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) Start() {
	now := time.Now()
	p.StartedAt = &now
}

func (p *Pipeline) GetDuration() time.Duration {
	if p.StartedAt == nil {
		return 0
	}
	return time.Since(*p.StartedAt)
}

// Run executes every step of the pipeline. Errors and panics end up in the
// returned Result; Run itself never fails.
func (p *Pipeline) Run(ctx context.Context) (result Result) {
	p.Start()
	result = Result{Set: p.Name(), StartedAt: *p.StartedAt}

	defer func() {
		if r := recover(); r != nil {
			p.fail(&result, fmt.Errorf("panic during %s: %v", p.state, r))
		}
		result.Duration = p.GetDuration()
		p.log(result)
	}()

	p.state = StateFetching
	payload, err := p.source.FetchRaw(ctx)
	if err != nil {
		p.fail(&result, fmt.Errorf("failed to fetch %s: %w", p.Name(), err))
		return result
	}

	p.state = StateValidating
	if err := p.source.Validate(payload); err != nil {
		var validationErr *schema.ValidationError
		if errors.As(err, &validationErr) {
			result.Diagnostics = validationErr.Diagnostics
		}
		p.fail(&result, fmt.Errorf("failed to validate %s: %w", p.Name(), err))
		return result
	}

	p.state = StateTransforming
	normalized, err := p.source.Normalize(payload)
	if err != nil {
		p.fail(&result, fmt.Errorf("failed to transform %s: %w", p.Name(), err))
		return result
	}
	result.Warnings = normalized.Warnings

	p.state = StatePersisting
	for _, variant := range normalized.Variants {
		bundle := layout.Layout(variant.Records, variant.IncludePopularity)

		files, err := p.persister.Write(ctx, variant.Output, bundle)
		if err != nil {
			p.fail(&result, fmt.Errorf("failed to persist %s: %w", variant.Output, err))
			return result
		}

		result.Outputs = append(result.Outputs, Output{
			Name:       variant.Output,
			Icons:      bundle.Full.CountOfIcons,
			Categories: bundle.Full.CountOfCategories,
			Tags:       bundle.Full.CountOfTags,
			Files:      files,
		})
	}

	p.state = StateDone
	result.State = StateDone
	result.Success = true
	return result
}

func (p *Pipeline) fail(result *Result, err error) {
	result.FailedAt = p.state
	result.State = StateFailed
	result.Success = false
	result.Err = err
	p.state = StateFailed
}

func (p *Pipeline) log(result Result) {
	if !result.Success {
		slog.Error("Pipeline failed", "set", result.Set, "step", string(result.FailedAt), "duration", result.Duration, "error", result.Err)
		for _, d := range result.Diagnostics {
			slog.Debug("Validation diagnostic", "set", result.Set, "path", d.Path, "reason", d.Reason)
		}
		return
	}

	for _, output := range result.Outputs {
		slog.Info("Pipeline completed", "set", result.Set, "output", output.Name, "icons", output.Icons, "categories", output.Categories, "tags", output.Tags)
	}
	slog.Debug("Pipeline finished", "set", result.Set, "warnings", result.Warnings, "duration", result.Duration)
}

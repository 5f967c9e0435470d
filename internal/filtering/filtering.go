// Package filtering runs postings through an ordered list of named cleaning and tagging steps.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-shortlist/internal/categorize"
	"github.com/spigell/job-shortlist/internal/logger"
	"github.com/spigell/job-shortlist/internal/posting"
)

// Filter represents a single step applied to postings.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, v *posting.Postings) (*posting.Postings, Step, error)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger      *zap.Logger
	Categorizer *categorize.Categorizer
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains settings consumed by the steps.
type Config struct {
	// DedupThreshold is the title similarity ratio at which two postings collapse. Zero means the default.
	DedupThreshold float64
	Companies      []string
	ExcludeFile    string
	// Workers bounds the categorize fan-out. Zero means one per CPU.
	Workers int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// toggle carries the enabled state shared by every step.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

// Default returns the full pipeline in execution order.
func Default() []Filter {
	return []Filter{
		NewComplete(),
		NewNormalize(),
		NewDedup(),
		NewExcludeCompanies(),
		NewExcludeFile(),
		NewCategorize(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled step, then applies them in order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, v *posting.Postings) (*posting.Postings, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	deps.Logger = logger.WithFields(deps.Logger)

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Info("filter disabled", zap.String(logger.FieldFilter, step.Name()))
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, deps, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step", logger.StepFields(step.Name(), info.Initial, info.Dropped, info.Left)...)

		v = next
	}

	return v, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

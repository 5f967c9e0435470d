package filtering

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/job-shortlist/internal/logger"
	"github.com/spigell/job-shortlist/internal/posting"
)

type categorizeFilter struct {
	toggle
	workers int
}

// NewCategorize tags every posting with industry, role type, skill categories and work location.
func NewCategorize() Filter {
	return &categorizeFilter{}
}

func (f *categorizeFilter) Name() string { return "categorize" }

func (f *categorizeFilter) Validate(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	f.workers = cfg.Workers
	if f.workers == 0 {
		f.workers = runtime.NumCPU()
	}
	return nil
}

// Apply shares one categorizer across workers; results land at their input index so order is kept.
func (f *categorizeFilter) Apply(ctx context.Context, deps Deps, v *posting.Postings) (*posting.Postings, Step, error) {
	if deps.Categorizer == nil {
		return v, Step{}, errors.New("categorizer is required")
	}

	initial := v.Len()
	tagged := make([]*posting.JobPosting, initial)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(f.workers, 1))

	for i, p := range v.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tagged[i] = deps.Categorizer.Apply(p)
			deps.Logger.Debug("categorized posting",
				append(logger.PostingFields(p.ID, p.Company),
					zap.String("industry", tagged[i].Industry),
					zap.String("role_type", tagged[i].RoleType),
					zap.Strings("skill_categories", tagged[i].SkillCategories),
					zap.String("work_location", tagged[i].WorkLocation),
				)...,
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return v, Step{}, err
	}
	v.Items = tagged

	return v, Step{Initial: initial, Left: v.Len()}, nil
}

func (f *categorizeFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"workers": strconv.Itoa(f.workers)},
	}
}

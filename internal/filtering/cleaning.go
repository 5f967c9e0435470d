package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/job-shortlist/internal/cleaning"
	"github.com/spigell/job-shortlist/internal/logger"
	"github.com/spigell/job-shortlist/internal/posting"
)

type completeFilter struct {
	toggle
}

// NewComplete drops postings missing any required field.
func NewComplete() Filter {
	return &completeFilter{}
}

func (f *completeFilter) Name() string { return "complete" }

func (f *completeFilter) Validate(*Config) error { return nil }

func (f *completeFilter) Apply(_ context.Context, deps Deps, v *posting.Postings) (*posting.Postings, Step, error) {
	initial := v.Len()

	kept := make([]*posting.JobPosting, 0, initial)
	for _, p := range v.Items {
		if missing := cleaning.Missing(p); len(missing) > 0 {
			deps.Logger.Debug("dropping incomplete posting",
				append(logger.PostingFields(p.ID, p.Company), zap.Strings("missing", missing))...,
			)
			continue
		}
		kept = append(kept, p)
	}
	v.Items = kept

	return v, Step{Initial: initial, Dropped: initial - v.Len(), Left: v.Len()}, nil
}

func (f *completeFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type normalizeFilter struct {
	toggle
}

// NewNormalize canonicalizes title, company, location and tags.
func NewNormalize() Filter {
	return &normalizeFilter{}
}

func (f *normalizeFilter) Name() string { return "normalize" }

func (f *normalizeFilter) Validate(*Config) error { return nil }

func (f *normalizeFilter) Apply(_ context.Context, _ Deps, v *posting.Postings) (*posting.Postings, Step, error) {
	v.Items = cleaning.NormalizeAll(v.Items)
	return v, Step{Initial: v.Len(), Left: v.Len()}, nil
}

func (f *normalizeFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type dedupFilter struct {
	toggle
	threshold float64
}

// NewDedup collapses postings sharing company, location and a near-identical title.
func NewDedup() Filter {
	return &dedupFilter{}
}

func (f *dedupFilter) Name() string { return "dedup" }

func (f *dedupFilter) Validate(cfg *Config) error {
	f.threshold = cleaning.DefaultTitleThreshold
	if cfg.DedupThreshold != 0 {
		f.threshold = cfg.DedupThreshold
	}
	if f.threshold <= 0 || f.threshold > 1 {
		return fmt.Errorf("dedup threshold %v is outside (0, 1]", f.threshold)
	}
	return nil
}

func (f *dedupFilter) Apply(_ context.Context, deps Deps, v *posting.Postings) (*posting.Postings, Step, error) {
	initial := v.Len()

	unique, err := cleaning.Deduplicate(v.Items, f.threshold)
	if err != nil {
		return v, Step{}, err
	}

	if dropped := initial - len(unique); dropped > 0 {
		deps.Logger.Debug("collapsed duplicate postings",
			zap.Int("duplicates", dropped),
			zap.Float64("threshold", f.threshold),
		)
	}
	v.Items = unique

	return v, Step{Initial: initial, Dropped: initial - v.Len(), Left: v.Len()}, nil
}

func (f *dedupFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"threshold": strconv.FormatFloat(f.threshold, 'f', -1, 64)},
	}
}

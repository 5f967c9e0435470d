package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-shortlist/internal/posting"
)

type excludeCompaniesFilter struct {
	toggle
	companies []string
}

// NewExcludeCompanies removes postings from companies listed in the config.
func NewExcludeCompanies() Filter {
	return &excludeCompaniesFilter{}
}

func (f *excludeCompaniesFilter) Name() string { return "exclude_companies" }

func (f *excludeCompaniesFilter) Validate(cfg *Config) error {
	f.companies = append([]string(nil), cfg.Companies...)
	return nil
}

func (f *excludeCompaniesFilter) Apply(_ context.Context, deps Deps, v *posting.Postings) (*posting.Postings, Step, error) {
	initial := v.Len()
	if len(f.companies) == 0 {
		return v, Step{Initial: initial, Left: initial}, nil
	}

	excluded := v.Exclude(posting.PostingCompanyField, f.companies)
	if len(excluded) > 0 {
		deps.Logger.Info("excluding postings by companies",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", v.Len()),
		)
	}

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *excludeCompaniesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type excludeFileFilter struct {
	toggle
	path string
}

// NewExcludeFile removes postings already recorded in the exclude file, matched by id or apply link.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = strings.TrimSpace(cfg.ExcludeFile)
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, v *posting.Postings) (*posting.Postings, Step, error) {
	initial := v.Len()
	if f.path == "" {
		return v, Step{Initial: initial, Left: initial}, nil
	}

	excluded, err := posting.GetExcludedFromFile(f.path)
	if err != nil {
		return v, Step{}, fmt.Errorf("getting excluded postings from file: %w", err)
	}

	removed := v.Exclude(posting.PostingIDField, excluded.IDs())
	removed = append(removed, v.Exclude(posting.PostingApplyLinkField, excluded.ApplyLinks())...)
	if len(removed) > 0 {
		deps.Logger.Info("excluding postings based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_postings", removed),
			zap.Int("postings_left", v.Len()),
		)
	}

	return v, Step{Initial: initial, Dropped: len(removed), Left: v.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

// Package cleaning turns raw scraped postings into a complete, canonical and duplicate-free list.
package cleaning

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/job-shortlist/internal/posting"
)

// NormalizeText collapses whitespace runs into single spaces, trims and title-cases s.
func NormalizeText(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		return ""
	}
	// Casers keep state and must not be shared between goroutines.
	return cases.Title(language.Und).String(collapsed)
}

// Normalize returns a canonical copy of p. The input is left untouched.
func Normalize(p *posting.JobPosting) *posting.JobPosting {
	out := p.Clone()

	out.Title = NormalizeText(out.Title)
	out.Company = NormalizeText(out.Company)
	out.Location = NormalizeText(out.Location)

	tags := make([]string, 0, len(out.Tags))
	for _, tag := range out.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
	}
	out.Tags = tags

	return out
}

func NormalizeAll(items []*posting.JobPosting) []*posting.JobPosting {
	out := make([]*posting.JobPosting, 0, len(items))
	for _, p := range items {
		out = append(out, Normalize(p))
	}
	return out
}

package cleaning

import (
	"fmt"
	"strings"

	"github.com/spigell/job-shortlist/internal/posting"
)

// IsDuplicate reports whether a and b describe the same job: same company and location
// (case-insensitive) and titles at least threshold similar.
func IsDuplicate(a, b *posting.JobPosting, threshold float64) bool {
	return strings.EqualFold(a.Company, b.Company) &&
		strings.EqualFold(a.Location, b.Location) &&
		IsSimilar(a.Title, b.Title, threshold)
}

// Deduplicate drops near-duplicates, keeping the first occurrence and input order.
// Every posting is compared against all kept ones, so the cost is quadratic in len(items).
func Deduplicate(items []*posting.JobPosting, threshold float64) ([]*posting.JobPosting, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("title similarity threshold must be in (0, 1], got %v", threshold)
	}

	unique := make([]*posting.JobPosting, 0, len(items))
	for _, p := range items {
		duplicate := false
		for _, kept := range unique {
			if IsDuplicate(p, kept, threshold) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, p)
		}
	}

	return unique, nil
}

// Clean runs the completeness filter, normalization and deduplication in that order.
func Clean(items []*posting.JobPosting, threshold float64) ([]*posting.JobPosting, error) {
	return Deduplicate(NormalizeAll(FilterComplete(items)), threshold)
}

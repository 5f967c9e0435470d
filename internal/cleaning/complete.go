package cleaning

import (
	"strings"

	"github.com/spigell/job-shortlist/internal/posting"
)

// Missing lists the required fields p lacks. Whitespace-only values count as missing.
func Missing(p *posting.JobPosting) []string {
	values := map[string]string{
		"title":       p.Title,
		"company":     p.Company,
		"location":    p.Location,
		"description": p.Description,
		"apply_link":  p.ApplyLink,
	}

	var missing []string
	for _, field := range posting.RequiredFields {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func IsComplete(p *posting.JobPosting) bool {
	return p != nil && len(Missing(p)) == 0
}

// FilterComplete keeps the postings that carry every required field, in input order.
func FilterComplete(items []*posting.JobPosting) []*posting.JobPosting {
	out := make([]*posting.JobPosting, 0, len(items))
	for _, p := range items {
		if IsComplete(p) {
			out = append(out, p)
		}
	}
	return out
}

package posting

import (
	"encoding/json"
	"os"
	"time"
)

type ExcludedPostings struct {
	Items []*ExcludedPosting
}

type ExcludedPosting struct {
	ID         string
	ApplyLink  string
	Company    string
	Title      string
	ExcludedAt time.Time
}

func (v *Postings) ToExcluded(now time.Time) *ExcludedPostings {
	excluded := &ExcludedPostings{}
	for _, p := range v.Items {
		excluded.Items = append(excluded.Items, &ExcludedPosting{
			ID:         p.ID,
			ApplyLink:  p.ApplyLink,
			Company:    p.Company,
			Title:      p.Title,
			ExcludedAt: now.UTC(),
		})
	}
	return excluded
}

// GetExcludedFromFile reads an exclude file. A missing or empty file yields an empty list.
func GetExcludedFromFile(path string) (*ExcludedPostings, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ExcludedPostings{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedPostings{}, nil
	}

	var excluded ExcludedPostings
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Append adds entries not already present (matched by id).
func (v *ExcludedPostings) Append(s *ExcludedPostings) {
	seen := make(map[string]struct{}, len(v.Items))
	for _, item := range v.Items {
		seen[item.ID] = struct{}{}
	}
	for _, item := range s.Items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		v.Items = append(v.Items, item)
	}
}

func (v *ExcludedPostings) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, p := range v.Items {
		ids = append(ids, p.ID)
	}
	return ids
}

func (v *ExcludedPostings) ApplyLinks() []string {
	links := make([]string, 0, len(v.Items))
	for _, p := range v.Items {
		if p.ApplyLink != "" {
			links = append(links, p.ApplyLink)
		}
	}
	return links
}

func (v *ExcludedPostings) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package posting

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

const (
	PostingIDField        = "ID"
	PostingCompanyField   = "Company"
	PostingApplyLinkField = "ApplyLink"

	UnknownLabel     = "unknown"
	UnspecifiedLabel = "unspecified"
)

// RequiredFields lists the fields every posting must carry to enter categorization and ranking.
var RequiredFields = []string{"title", "company", "location", "description", "apply_link"}

type Postings struct {
	Items []*JobPosting
}

// SalaryRange is a closed interval. High <= 0 means the range has no upper bound.
type SalaryRange struct {
	Low  float64 `json:"low" mapstructure:"low" validate:"gte=0"`
	High float64 `json:"high" mapstructure:"high" validate:"gte=0"`
}

type JobPosting struct {
	ID          string       `json:"id,omitempty" mapstructure:"id"`
	Title       string       `json:"title" mapstructure:"title"`
	Company     string       `json:"company" mapstructure:"company"`
	Location    string       `json:"location" mapstructure:"location"`
	Description string       `json:"description" mapstructure:"description"`
	ApplyLink   string       `json:"apply_link" mapstructure:"apply_link"`
	Source      string       `json:"source,omitempty" mapstructure:"source"`
	SalaryRange *SalaryRange `json:"salary_range,omitempty" mapstructure:"salary_range"`
	Tags        []string     `json:"tags" mapstructure:"tags"`
	Skills      []string     `json:"skills,omitempty" mapstructure:"skills"`

	Industry        string   `json:"industry,omitempty" mapstructure:"industry"`
	RoleType        string   `json:"role_type,omitempty" mapstructure:"role_type"`
	SkillCategories []string `json:"skill_categories,omitempty" mapstructure:"skill_categories"`
	WorkLocation    string   `json:"work_location,omitempty" mapstructure:"work_location"`

	CompanySize     string   `json:"company_size,omitempty" mapstructure:"company_size"`
	GrowthPotential float64  `json:"growth_potential,omitempty" mapstructure:"growth_potential" validate:"gte=0,lte=1"`
	MissionKeywords []string `json:"mission_keywords,omitempty" mapstructure:"mission_keywords"`
}

// Bounds returns the salary interval, defaulting to [0, +Inf) when the posting has none.
// A zero high bound means the range is open ended; Decode rejects a range with both bounds zero.
func (p *JobPosting) Bounds() (float64, float64) {
	if p.SalaryRange == nil {
		return 0, math.Inf(1)
	}
	high := p.SalaryRange.High
	if high <= 0 {
		high = math.Inf(1)
	}
	return p.SalaryRange.Low, high
}

// Text is what the categorizer reads.
func (p *JobPosting) Text() string {
	return strings.TrimSpace(p.Title + "\n" + p.Description)
}

// Clone returns a deep copy of the posting.
func (p *JobPosting) Clone() *JobPosting {
	c := *p
	if p.SalaryRange != nil {
		r := *p.SalaryRange
		c.SalaryRange = &r
	}
	c.Tags = cloneStrings(p.Tags)
	c.Skills = cloneStrings(p.Skills)
	c.SkillCategories = cloneStrings(p.SkillCategories)
	c.MissionKeywords = cloneStrings(p.MissionKeywords)
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func (p *JobPosting) GetStringField(name string) string {
	switch name {
	case PostingIDField:
		return p.ID
	case PostingCompanyField:
		return p.Company
	case PostingApplyLinkField:
		return p.ApplyLink
	default:
		return ""
	}
}

func (v *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByCompany groups postings by company for a quick overview.
func (v *Postings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, p := range v.Items {
		entry := map[string]string{
			"title":         p.Title,
			"location":      p.Location,
			"apply_link":    p.ApplyLink,
			"industry":      p.Industry,
			"role_type":     p.RoleType,
			"work_location": p.WorkLocation,
		}
		if p.SalaryRange != nil {
			low, high := p.Bounds()
			entry["salary"] = formatSalary(low, high)
		}
		if len(p.SkillCategories) > 0 {
			entry["skill_categories"] = strings.Join(p.SkillCategories, ",")
		}
		report[p.Company] = append(report[p.Company], entry)
	}
	return report
}

func formatSalary(low, high float64) string {
	if math.IsInf(high, 1) {
		return fmt.Sprintf("%.0f+", low)
	}
	return fmt.Sprintf("%.0f-%.0f", low, high)
}

func (v *Postings) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Items)
}

// IDs returns posting ids in list order.
func (v *Postings) IDs() []string {
	ids := make([]string, 0, v.Len())
	for _, p := range v.Items {
		ids = append(ids, p.ID)
	}
	return ids
}

// Exclude removes every posting whose field (compared case-insensitively) is in targets.
// Order of the remaining postings is preserved. Returns the ids of removed postings.
func (v *Postings) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if key := strings.ToLower(strings.TrimSpace(t)); key != "" {
			set[key] = struct{}{}
		}
	}

	var excluded []string
	kept := v.Items[:0]
	for _, p := range v.Items {
		if _, ok := set[strings.ToLower(strings.TrimSpace(p.GetStringField(name)))]; ok {
			excluded = append(excluded, p.ID)
			continue
		}
		kept = append(kept, p)
	}
	v.Items = kept
	return excluded
}

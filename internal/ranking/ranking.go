// Package ranking orders postings by a weighted multi-criteria fit against a user profile.
package ranking

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/spigell/job-shortlist/internal/posting"
	"github.com/spigell/job-shortlist/internal/profile"
)

// ScoredJob is a posting decorated with its score and one reason per component.
type ScoredJob struct {
	Job     *posting.JobPosting `json:"job"`
	Score   int                 `json:"score"`
	Reasons []string            `json:"reasons"`
}

// Document is the ranked result handed to reporting and notification.
type Document struct {
	RankedJobs []ScoredJob `json:"ranked_jobs"`
}

func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Postings returns the ranked postings in rank order.
func (d *Document) Postings() *posting.Postings {
	out := &posting.Postings{Items: make([]*posting.JobPosting, 0, len(d.RankedJobs))}
	for _, r := range d.RankedJobs {
		out.Items = append(out.Items, r.Job)
	}
	return out
}

// Ranker holds its weights fixed after construction and is safe for concurrent use.
type Ranker struct {
	weights Weights
}

// New validates weights and returns a Ranker.
func New(weights Weights) (*Ranker, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Ranker{weights: weights}, nil
}

func (r *Ranker) Weights() Weights {
	return r.weights
}

// Rank scores every posting, sorts by score descending keeping input order among ties,
// and keeps the first topN when topN > 0.
func (r *Ranker) Rank(jobs []*posting.JobPosting, p *profile.Profile, topN int) []ScoredJob {
	if p == nil {
		p = &profile.Profile{}
	}

	ranked := make([]ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		ranked = append(ranked, r.Score(job, p))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Document ranks and wraps the result.
func (r *Ranker) Document(jobs []*posting.JobPosting, p *profile.Profile, topN int) *Document {
	return &Document{RankedJobs: r.Rank(jobs, p, topN)}
}

// Score computes a single posting's weighted score.
func (r *Ranker) Score(job *posting.JobPosting, p *profile.Profile) ScoredJob {
	components := map[string]float64{
		ComponentSkills:      scoreSkills(job, p),
		ComponentMission:     scoreMission(job, p),
		ComponentSalary:      scoreSalary(job, p),
		ComponentLocation:    scoreLocation(job, p),
		ComponentCompanySize: scoreCompanySize(job, p),
		ComponentGrowth:      job.GrowthPotential,
	}

	total := 0.0
	reasons := make([]string, 0, len(Components))
	for _, name := range Components {
		w := r.weights.Get(name)
		v := components[name]
		total += w * v
		reasons = append(reasons, fmt.Sprintf("%s: %.0f%% (weight %s)", name, v*100, strconv.FormatFloat(w, 'f', -1, 64)))
	}

	return ScoredJob{
		Job:     job,
		Score:   int(math.Round(total * 100)),
		Reasons: reasons,
	}
}

// overlapRatio is |have ∩ want| / max(|want|, 1), case-insensitive.
func overlapRatio(have, want []string) float64 {
	wantSet := lowerSet(want)
	if len(wantSet) == 0 {
		return 0
	}

	matched := 0
	for item := range lowerSet(have) {
		if _, ok := wantSet[item]; ok {
			matched++
		}
	}
	return float64(matched) / float64(max(len(wantSet), 1))
}

func scoreSkills(job *posting.JobPosting, p *profile.Profile) float64 {
	desired := p.DesiredSkills
	if len(desired) == 0 {
		desired = p.Skills
	}
	have := make([]string, 0, len(job.Skills)+len(job.Tags))
	have = append(have, job.Skills...)
	have = append(have, job.Tags...)
	return overlapRatio(have, desired)
}

func scoreMission(job *posting.JobPosting, p *profile.Profile) float64 {
	return overlapRatio(job.MissionKeywords, p.MissionKeywords)
}

// scoreSalary is 1 inside the posting's range and decays linearly with the relative gap outside it.
func scoreSalary(job *posting.JobPosting, p *profile.Profile) float64 {
	desired := p.DesiredSalary
	low, high := job.Bounds()

	if low <= desired && desired <= high {
		return 1
	}

	var diff float64
	if desired < low {
		diff = (low - desired) / math.Max(desired, 1)
	} else {
		diff = (desired - high) / math.Max(high, 1)
	}
	return math.Max(0, 1-diff)
}

func scoreLocation(job *posting.JobPosting, p *profile.Profile) float64 {
	jobLocation := strings.TrimSpace(job.WorkLocation)
	if jobLocation == "" {
		jobLocation = posting.UnspecifiedLabel
	}

	if p.LocationPreference == profile.LocationEither || jobLocation == posting.UnspecifiedLabel {
		return 1
	}
	if string(p.LocationPreference) == jobLocation {
		return 1
	}
	return 0
}

func scoreCompanySize(job *posting.JobPosting, p *profile.Profile) float64 {
	size := strings.ToLower(strings.TrimSpace(job.CompanySize))
	if size == "" {
		return 0
	}
	if _, ok := lowerSet(p.PreferredCompanySize)[size]; ok {
		return 1
	}
	return 0
}

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}

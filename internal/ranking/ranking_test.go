package ranking

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/job-shortlist/internal/posting"
	"github.com/spigell/job-shortlist/internal/profile"
)

func mustRanker(t *testing.T, w Weights) *Ranker {
	t.Helper()
	r, err := New(w)
	require.NoError(t, err)
	return r
}

func TestScoreSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		desired float64
		salary  *posting.SalaryRange
		expect  float64
	}{
		{name: "below range", desired: 100000, salary: &posting.SalaryRange{Low: 150000, High: 200000}, expect: 0.5},
		{name: "within range", desired: 100000, salary: &posting.SalaryRange{Low: 90000, High: 120000}, expect: 1},
		{name: "above range", desired: 150000, salary: &posting.SalaryRange{Low: 90000, High: 120000}, expect: 0.75},
		{name: "far below floors at zero", desired: 10000, salary: &posting.SalaryRange{Low: 90000, High: 120000}, expect: 0},
		{name: "no range", desired: 100000, salary: nil, expect: 1},
		{name: "zero desired guarded", desired: 0, salary: &posting.SalaryRange{Low: 0.5, High: 1}, expect: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			job := &posting.JobPosting{SalaryRange: tt.salary}
			assert.InDelta(t, tt.expect, scoreSalary(job, &profile.Profile{DesiredSalary: tt.desired}), 1e-9)
		})
	}
}

func TestScoreLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pref   profile.LocationPreference
		job    string
		expect float64
	}{
		{pref: profile.LocationEither, job: "on_site", expect: 1},
		{pref: profile.LocationRemote, job: "unspecified", expect: 1},
		{pref: profile.LocationRemote, job: "", expect: 1},
		{pref: profile.LocationRemote, job: "remote", expect: 1},
		{pref: profile.LocationRemote, job: "on_site", expect: 0},
		{pref: "", job: "remote", expect: 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.pref)+"/"+tt.job, func(t *testing.T) {
			t.Parallel()
			job := &posting.JobPosting{WorkLocation: tt.job}
			assert.Equal(t, tt.expect, scoreLocation(job, &profile.Profile{LocationPreference: tt.pref}))
		})
	}
}

func TestScoreLocationFromRemotePreference(t *testing.T) {
	t.Parallel()

	either, err := profile.Parse([]byte(`{"remote_preference": "either"}`))
	require.NoError(t, err)
	onSite, err := profile.Parse([]byte(`{"remote_preference": "on_site"}`))
	require.NoError(t, err)

	job := &posting.JobPosting{WorkLocation: "on_site"}
	assert.Equal(t, 1.0, scoreLocation(job, either))
	assert.Equal(t, 1.0, scoreLocation(job, onSite))
	assert.Equal(t, 0.0, scoreLocation(&posting.JobPosting{WorkLocation: "remote"}, onSite))
}

func TestRankTwoPostings(t *testing.T) {
	jobs := []*posting.JobPosting{
		{
			ID:              "2",
			Skills:          []string{"java", "aws", "microservices"},
			MissionKeywords: []string{"enterprise", "scalability"},
			SalaryRange:     &posting.SalaryRange{Low: 110000, High: 150000},
			WorkLocation:    "on_site",
			CompanySize:     "enterprise",
			GrowthPotential: 0.5,
		},
		{
			ID:              "1",
			Skills:          []string{"python", "docker", "kubernetes"},
			MissionKeywords: []string{"sustainability", "open source"},
			SalaryRange:     &posting.SalaryRange{Low: 90000, High: 120000},
			WorkLocation:    "remote",
			CompanySize:     "startup",
			GrowthPotential: 0.9,
		},
	}
	p := &profile.Profile{
		DesiredSkills:        []string{"python", "kubernetes", "ml"},
		MissionKeywords:      []string{"open source"},
		DesiredSalary:        100000,
		LocationPreference:   profile.LocationRemote,
		PreferredCompanySize: []string{"startup", "mid"},
	}

	ranked := mustRanker(t, DefaultWeights()).Rank(jobs, p, 0)

	require.Len(t, ranked, 2)
	assert.Equal(t, "1", ranked[0].Job.ID)
	assert.Equal(t, 90, ranked[0].Score)
	assert.Equal(t, []string{
		"skills: 67% (weight 0.25)",
		"mission: 100% (weight 0.15)",
		"salary: 100% (weight 0.2)",
		"location: 100% (weight 0.15)",
		"company_size: 100% (weight 0.1)",
		"growth: 90% (weight 0.15)",
	}, ranked[0].Reasons)
	assert.Equal(t, "2", ranked[1].Job.ID)
	assert.Equal(t, 26, ranked[1].Score)
}

func TestRankIsStableAndTruncates(t *testing.T) {
	jobs := []*posting.JobPosting{
		{ID: "a", GrowthPotential: 0.2},
		{ID: "b", GrowthPotential: 0.8},
		{ID: "c", GrowthPotential: 0.2},
		{ID: "d", GrowthPotential: 0.8},
		{ID: "e", GrowthPotential: 0.2},
	}
	r := mustRanker(t, Weights{Growth: 1})

	ids := func(ranked []ScoredJob) []string {
		out := make([]string, 0, len(ranked))
		for _, s := range ranked {
			out = append(out, s.Job.ID)
		}
		return out
	}

	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(r.Rank(jobs, nil, 0)))
	assert.Equal(t, []string{"b", "d", "a"}, ids(r.Rank(jobs, nil, 3)))
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(r.Rank(jobs, nil, 10)))
}

func TestRankScoreBounds(t *testing.T) {
	weights := Weights{Skills: 0.5, Mission: 0.5, Salary: 0.5, Location: 0.5, CompanySize: 0.5, Growth: 0.5}
	r := mustRanker(t, weights)

	jobs := []*posting.JobPosting{
		{Skills: []string{"Go"}, MissionKeywords: []string{"climate"}, WorkLocation: "remote", CompanySize: "Startup", GrowthPotential: 1},
		{SalaryRange: &posting.SalaryRange{Low: 1, High: 2}},
		{},
	}
	profiles := []*profile.Profile{
		nil,
		{DesiredSkills: []string{"go"}, MissionKeywords: []string{"Climate"}, DesiredSalary: 5, LocationPreference: profile.LocationRemote, PreferredCompanySize: []string{"startup"}},
	}

	for _, p := range profiles {
		ranked := r.Rank(jobs, p, 0)
		for i, s := range ranked {
			assert.GreaterOrEqual(t, s.Score, 0)
			assert.LessOrEqual(t, float64(s.Score), 100*weights.Sum())
			if i > 0 {
				assert.GreaterOrEqual(t, ranked[i-1].Score, s.Score)
			}
		}
	}

	top := r.Rank(jobs[:1], profiles[1], 0)[0]
	assert.Equal(t, 300, top.Score)
}

func TestSkillsFallBackToProfileSkillsAndJobTags(t *testing.T) {
	job := &posting.JobPosting{Tags: []string{"python"}, Skills: []string{"Docker"}}
	p := &profile.Profile{Skills: []string{"python", "docker", "rust", "go"}}

	assert.InDelta(t, 0.5, scoreSkills(job, p), 1e-9)
	assert.Equal(t, 0.0, scoreSkills(job, &profile.Profile{}))
}

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights(map[string]float64{"Skills": 0.5, "growth": 0})
	require.NoError(t, err)
	assert.Equal(t, 0.5, w.Skills)
	assert.Equal(t, 0.0, w.Growth)
	assert.Equal(t, DefaultWeights().Salary, w.Salary)

	_, err = ParseWeights(map[string]float64{"vibes": 1})
	require.ErrorIs(t, err, ErrInvalidWeight)

	_, err = ParseWeights(map[string]float64{"salary": -0.1})
	require.ErrorIs(t, err, ErrInvalidWeight)

	_, err = New(Weights{Mission: math.NaN()})
	require.ErrorIs(t, err, ErrInvalidWeight)

	_, err = New(Weights{Growth: math.Inf(1)})
	require.ErrorIs(t, err, ErrInvalidWeight)
}

func TestDocumentJSONShape(t *testing.T) {
	r := mustRanker(t, DefaultWeights())
	doc := r.Document([]*posting.JobPosting{{ID: "1", Title: "Go Developer", Tags: []string{}}}, &profile.Profile{}, 0)

	data, err := doc.JSON()
	require.NoError(t, err)

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	entries := decoded["ranked_jobs"]
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], "job")
	assert.Contains(t, entries[0], "score")
	assert.Len(t, entries[0]["reasons"], len(Components))
	assert.Equal(t, []string{"1"}, doc.Postings().IDs())
}

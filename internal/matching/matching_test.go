package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/job-shortlist/internal/profile"
	"github.com/spigell/job-shortlist/internal/sentiment"
)

var neutral = sentiment.AnalyzerFunc(func(string) float64 { return 0 })

func TestMatchKeywordsSaturate(t *testing.T) {
	scorer := New(neutral)
	description := "We use go, kafka, postgres, redis and grpc every day."
	p := &profile.Profile{Skills: []string{"Go", "Kafka", "Postgres", "Redis", "gRPC", "Rust"}}

	result := scorer.Match(description, p)

	// "go" is shorter than three letters, so only four keywords overlap.
	assert.Equal(t, "Found 4 overlapping keywords (80% of target).", result.Reasons[0])

	description = "Kafka, postgres, redis, grpc and rust in production."
	result = scorer.Match(description, p)

	assert.Equal(t, "Found 5 overlapping keywords (100% of target).", result.Reasons[0])
	assert.Equal(t, "Skill overlap score: 0% based on matched skills.", result.Reasons[1])
	// keyword 30 + skill 0 + tone 20 + remote 10
	assert.Equal(t, 60, result.Score)
}

func TestMatchCountsDesiredSkills(t *testing.T) {
	scorer := New(neutral)
	p := &profile.Profile{DesiredSkills: []string{"Kafka", "Postgres", "Redis", "gRPC", "Rust"}}

	result := scorer.Match("Kafka, postgres, redis, grpc and rust in production.", p)

	assert.Equal(t, "Found 5 overlapping keywords (100% of target).", result.Reasons[0])
	assert.Equal(t, 60, result.Score)

	p = &profile.Profile{Skills: []string{"Rust"}, DesiredSkills: []string{"Kafka"}}
	result = scorer.Match("Skills: Kafka, Rust", p)

	assert.Equal(t, "Found 2 overlapping keywords (40% of target).", result.Reasons[0])
	assert.Equal(t, "Skill overlap score: 100% based on matched skills.", result.Reasons[1])
	// keyword 12 + skill 40 + tone 20 + remote 10
	assert.Equal(t, 82, result.Score)
}

func TestMatchRemotePythonRole(t *testing.T) {
	scorer := New(nil)
	job := `
    We are looking for a collaborative and innovative software engineer.
    Skills:
    Python, Django, REST API, Docker, Kubernetes
    This role is remote and ideal for a motivated individual.
    `

	result, err := scorer.MatchJSON(job, []byte(`{
		"skills": ["Python", "Flask", "Docker"],
		"values": ["collaborative", "innovative"],
		"remote_preference": true
	}`))
	require.NoError(t, err)

	assert.Equal(t, 56, result.Score)
	assert.Equal(t, []string{
		"Found 2 overlapping keywords (40% of target).",
		"Skill overlap score: 40% based on matched skills.",
		"Tone compatibility: 90% (job sentiment 0.55 vs user sentiment 0.45).",
		"Remote fit: 100%.",
	}, result.Reasons)
}

func TestMatchJSONSurfacesParseErrors(t *testing.T) {
	_, err := New(neutral).MatchJSON("anything", []byte(`{"skills":`))
	require.ErrorIs(t, err, profile.ErrParse)
}

func TestMatchRemotePartialCredit(t *testing.T) {
	scorer := New(neutral)

	onsite := scorer.Match("Office based role", &profile.Profile{RemotePreference: true})
	assert.Equal(t, "Remote fit: 50%.", onsite.Reasons[3])
	assert.Equal(t, 25, onsite.Score)

	remote := scorer.Match("Fully REMOTE role", &profile.Profile{RemotePreference: true})
	assert.Equal(t, "Remote fit: 100%.", remote.Reasons[3])
	assert.Equal(t, 30, remote.Score)
}

func TestMatchToneUsesAnalyzer(t *testing.T) {
	analyzer := sentiment.AnalyzerFunc(func(text string) float64 {
		if text == "values" {
			return -0.5
		}
		return 0.5
	})

	result := New(analyzer).Match("job", &profile.Profile{Values: []string{"values"}})
	assert.Equal(t, "Tone compatibility: 0% (job sentiment 0.50 vs user sentiment -0.50).", result.Reasons[2])
}

func TestMatchScoreIsBounded(t *testing.T) {
	extreme := sentiment.AnalyzerFunc(func(text string) float64 {
		if text == "" {
			return -1
		}
		return 1
	})
	scorer := New(extreme)

	docs := []string{
		"",
		"Skills: ",
		"Skills: go, rust\nremote remote remote",
		"alpha beta gamma delta epsilon Skills: alpha, beta, gamma, delta, epsilon",
	}
	profiles := []*profile.Profile{
		nil,
		{},
		{Skills: []string{"alpha", "beta", "gamma", "delta", "epsilon", "go", "rust"}, RemotePreference: true},
	}

	for _, doc := range docs {
		for _, p := range profiles {
			result := scorer.Match(doc, p)
			assert.GreaterOrEqual(t, result.Score, 0)
			assert.LessOrEqual(t, result.Score, 100)
			assert.Len(t, result.Reasons, 4)
		}
	}
}

func TestSkillsSection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect []string
		found  bool
	}{
		{name: "inline", text: "Intro\nSkills: Go, SQL , ,Docker\nMore", expect: []string{"Go", "SQL", "Docker"}, found: true},
		{name: "next line", text: "Skills:\n\n  Python, Django\n", expect: []string{"Python", "Django"}, found: true},
		{name: "case insensitive first", text: "SKILLS: a\nskills: b", expect: []string{"a"}, found: true},
		{name: "absent", text: "No list here", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			skills, ok := SkillsSection(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expect, skills)
		})
	}
}

func TestTopKeywordsOrdersByFrequencyThenAppearance(t *testing.T) {
	got := TopKeywords("beta alpha beta gamma alpha beta an go delta", 3)
	assert.Equal(t, []string{"beta", "alpha", "gamma"}, got)
}

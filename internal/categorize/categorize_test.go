package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/job-shortlist/internal/posting"
)

func TestCategorize(t *testing.T) {
	t.Parallel()

	c := MustNew()

	tests := []struct {
		name   string
		text   string
		expect Tags
	}{
		{
			name: "manager for react frontend",
			text: "We need a Manager for our React frontend, remote OK",
			expect: Tags{
				Industry:        "unknown",
				RoleType:        "management",
				SkillCategories: []string{"frontend"},
				WorkLocation:    "remote",
			},
		},
		{
			name: "tech frontend engineer",
			text: "We are hiring a Senior Software Engineer (Frontend) in our tech team. " +
				"Must have 5+ years React and JavaScript experience. This is a remote-friendly position.",
			expect: Tags{
				Industry:        "tech",
				RoleType:        "individual_contributor",
				SkillCategories: []string{"frontend"},
				WorkLocation:    "remote",
			},
		},
		{
			name: "first declared industry wins",
			text: "Software team at an investment bank, work on-site. Python, Docker, Figma and pandas.",
			expect: Tags{
				Industry:        "finance",
				RoleType:        "unknown",
				SkillCategories: []string{"backend", "data_science", "devops", "design"},
				WorkLocation:    "on_site",
			},
		},
		{
			name: "nothing matches",
			text: "Great opportunity.",
			expect: Tags{
				Industry:        "unknown",
				RoleType:        "unknown",
				SkillCategories: []string{},
				WorkLocation:    "unspecified",
			},
		},
		{
			name: "dotnet",
			text: "Experience with .NET services",
			expect: Tags{
				Industry:        "unknown",
				RoleType:        "unknown",
				SkillCategories: []string{"backend"},
				WorkLocation:    "unspecified",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, c.Categorize(tt.text))
		})
	}
}

func TestCategorizeSkillCategoriesHaveNoDuplicates(t *testing.T) {
	c := MustNew()
	tags := c.Categorize("react vue angular html css javascript frontend docker docker kubernetes")

	seen := map[string]bool{}
	for _, s := range tags.SkillCategories {
		require.False(t, seen[s], "duplicate category %s", s)
		seen[s] = true
	}
	assert.Equal(t, []string{"frontend", "devops"}, tags.SkillCategories)
}

func TestApplyMergesTagsIntoCopy(t *testing.T) {
	c := MustNew()
	p := &posting.JobPosting{
		Title:       "Engineering Manager",
		Description: "Lead our healthcare platform team. Kubernetes. Work from home.",
	}

	tagged := c.Apply(p)

	assert.Equal(t, "healthcare", tagged.Industry)
	assert.Equal(t, "management", tagged.RoleType)
	assert.Equal(t, []string{"devops"}, tagged.SkillCategories)
	assert.Equal(t, "remote", tagged.WorkLocation)
	assert.Empty(t, p.Industry)
}

func TestNewOverridesTable(t *testing.T) {
	c, err := New(RuleTable{
		Name:    TableIndustry,
		Policy:  PolicyFirst,
		Default: "other",
		Rules: []Rule{
			{Label: "gaming", Patterns: []string{`\bgame(s|dev)?\b`}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "gaming", c.Categorize("GameDev studio").Industry)
	assert.Equal(t, "other", c.Categorize("bank").Industry)
	// Tables that are not overridden keep their defaults.
	assert.Equal(t, "management", c.Categorize("Engineering manager").RoleType)
	assert.Equal(t, "individual_contributor", c.Categorize("Backend developer").RoleType)
}

func TestNewFailsFast(t *testing.T) {
	t.Parallel()

	cases := map[string][]RuleTable{
		"bad pattern": {{Name: TableIndustry, Rules: []Rule{{Label: "x", Patterns: []string{`(`}}}}},
		"unknown table": {{Name: "seniority", Rules: []Rule{{Label: "x", Patterns: []string{`x`}}}}},
		"duplicate table": {
			{Name: TableIndustry, Rules: []Rule{{Label: "x", Patterns: []string{`x`}}}},
			{Name: TableIndustry, Rules: []Rule{{Label: "y", Patterns: []string{`y`}}}},
		},
		"no rules":         {{Name: TableIndustry}},
		"empty label":      {{Name: TableIndustry, Rules: []Rule{{Patterns: []string{`x`}}}}},
		"duplicate label":  {{Name: TableIndustry, Rules: []Rule{{Label: "x", Patterns: []string{`x`}}, {Label: "x", Patterns: []string{`y`}}}}},
		"no patterns":      {{Name: TableIndustry, Rules: []Rule{{Label: "x"}}}},
		"unknown policy":   {{Name: TableIndustry, Policy: "best", Rules: []Rule{{Label: "x", Patterns: []string{`x`}}}}},
		"wrong policy":     {{Name: TableSkillCategories, Policy: PolicyFirst, Rules: []Rule{{Label: "x", Patterns: []string{`x`}}}}},
		"accumulate first": {{Name: TableRoleType, Policy: PolicyAccumulate, Rules: []Rule{{Label: "x", Patterns: []string{`x`}}}}},
	}

	for name, tables := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tables...)
			require.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

// Package categorize tags postings with industry, role type, skill categories and work location
// using ordered keyword rule tables.
package categorize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spigell/job-shortlist/internal/posting"
)

// Policy decides how a table resolves when several of its rules match.
type Policy string

const (
	// PolicyFirst assigns the label of the first matching rule in declaration order.
	PolicyFirst Policy = "first"
	// PolicyAccumulate assigns every matching label in declaration order.
	PolicyAccumulate Policy = "accumulate"
)

var ErrInvalidTable = errors.New("invalid rule table")

type Rule struct {
	Label    string   `mapstructure:"label"`
	Patterns []string `mapstructure:"patterns"`
}

type RuleTable struct {
	Name    string `mapstructure:"name"`
	Policy  Policy `mapstructure:"policy"`
	Default string `mapstructure:"default"`
	Rules   []Rule `mapstructure:"rules"`
}

// Tags is the categorization result for a single posting.
type Tags struct {
	Industry        string   `json:"industry"`
	RoleType        string   `json:"role_type"`
	SkillCategories []string `json:"skill_categories"`
	WorkLocation    string   `json:"work_location"`
}

type compiledRule struct {
	label    string
	patterns []*regexp.Regexp
}

func (r compiledRule) matches(text string) bool {
	for _, re := range r.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

type compiledTable struct {
	name   string
	policy Policy
	def    string
	rules  []compiledRule
}

func (t *compiledTable) resolve(text string) []string {
	var labels []string
	for _, rule := range t.rules {
		if !rule.matches(text) {
			continue
		}
		labels = append(labels, rule.label)
		if t.policy == PolicyFirst {
			return labels
		}
	}
	return labels
}

func (t *compiledTable) first(text string) string {
	if labels := t.resolve(text); len(labels) > 0 {
		return labels[0]
	}
	return t.def
}

// Categorizer is immutable once built and safe for concurrent use.
type Categorizer struct {
	tables map[string]*compiledTable
}

// New compiles the default tables, replacing any of them by the given overrides.
// Any malformed table or pattern fails construction.
func New(overrides ...RuleTable) (*Categorizer, error) {
	selected := make(map[string]RuleTable, 4)
	for _, t := range DefaultTables() {
		selected[t.Name] = t
	}

	seen := make(map[string]struct{}, len(overrides))
	for _, t := range overrides {
		name := strings.TrimSpace(t.Name)
		if _, ok := selected[name]; !ok {
			return nil, fmt.Errorf("%w: unknown table %q", ErrInvalidTable, t.Name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: table %q given twice", ErrInvalidTable, name)
		}
		seen[name] = struct{}{}
		t.Name = name
		selected[name] = t
	}

	c := &Categorizer{tables: make(map[string]*compiledTable, len(selected))}
	for name, t := range selected {
		compiled, err := compile(t)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidTable, name, err)
		}
		c.tables[name] = compiled
	}

	if c.tables[TableSkillCategories].policy != PolicyAccumulate {
		return nil, fmt.Errorf("%w %q: policy must be %q", ErrInvalidTable, TableSkillCategories, PolicyAccumulate)
	}
	for _, name := range []string{TableIndustry, TableRoleType, TableWorkLocation} {
		if c.tables[name].policy != PolicyFirst {
			return nil, fmt.Errorf("%w %q: policy must be %q", ErrInvalidTable, name, PolicyFirst)
		}
	}

	return c, nil
}

// MustNew is New for tables known to be valid at compile time.
func MustNew(overrides ...RuleTable) *Categorizer {
	c, err := New(overrides...)
	if err != nil {
		panic(err)
	}
	return c
}

func compile(t RuleTable) (*compiledTable, error) {
	policy := t.Policy
	if policy == "" {
		policy = PolicyFirst
	}
	if policy != PolicyFirst && policy != PolicyAccumulate {
		return nil, fmt.Errorf("unknown policy %q", t.Policy)
	}
	if len(t.Rules) == 0 {
		return nil, errors.New("no rules")
	}

	out := &compiledTable{name: t.Name, policy: policy, def: t.Default}
	labels := make(map[string]struct{}, len(t.Rules))
	for _, rule := range t.Rules {
		label := strings.TrimSpace(rule.Label)
		if label == "" {
			return nil, errors.New("rule without label")
		}
		if _, dup := labels[label]; dup {
			return nil, fmt.Errorf("label %q declared twice", label)
		}
		labels[label] = struct{}{}

		if len(rule.Patterns) == 0 {
			return nil, fmt.Errorf("label %q has no patterns", label)
		}

		compiled := compiledRule{label: label}
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				return nil, fmt.Errorf("label %q: %w", label, err)
			}
			compiled.patterns = append(compiled.patterns, re)
		}
		out.rules = append(out.rules, compiled)
	}

	return out, nil
}

// Categorize tags text. Industry, role type and work location take the first matching label of
// their table; skill categories collect every matching label.
func (c *Categorizer) Categorize(text string) Tags {
	skills := c.tables[TableSkillCategories].resolve(text)
	if skills == nil {
		skills = []string{}
	}

	return Tags{
		Industry:        c.tables[TableIndustry].first(text),
		RoleType:        c.tables[TableRoleType].first(text),
		SkillCategories: skills,
		WorkLocation:    c.tables[TableWorkLocation].first(text),
	}
}

// Apply returns a copy of p with the tags of its title and description merged in.
func (c *Categorizer) Apply(p *posting.JobPosting) *posting.JobPosting {
	tags := c.Categorize(p.Text())

	out := p.Clone()
	out.Industry = tags.Industry
	out.RoleType = tags.RoleType
	out.SkillCategories = tags.SkillCategories
	out.WorkLocation = tags.WorkLocation
	return out
}

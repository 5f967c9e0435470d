package categorize

import "github.com/spigell/job-shortlist/internal/posting"

// Table names. A Categorizer always carries exactly these four tables.
const (
	TableIndustry        = "industry"
	TableRoleType        = "role_type"
	TableSkillCategories = "skill_categories"
	TableWorkLocation    = "work_location"
)

// DefaultTables returns the built-in rule tables. The returned slices are fresh on every call.
func DefaultTables() []RuleTable {
	return []RuleTable{
		{
			Name:    TableIndustry,
			Policy:  PolicyFirst,
			Default: posting.UnknownLabel,
			Rules: []Rule{
				{Label: "finance", Patterns: []string{`\bfinance\b`, `\bbanking\b`, `\binvestment\b`, `\bfintech\b`}},
				{Label: "healthcare", Patterns: []string{`\bhealthcare\b`, `\bmedical\b`, `\bpharma\b`}},
				{Label: "tech", Patterns: []string{`\bsoftware\b`, `\btechnology\b`, `\binformation technology\b`, `\btech\b`}},
				{Label: "education", Patterns: []string{`\beducation\b`, `\bschool\b`, `\bteaching\b`}},
				{Label: "retail", Patterns: []string{`\bretail\b`, `\be-commerce\b`, `\becommerce\b`}},
			},
		},
		{
			Name:    TableRoleType,
			Policy:  PolicyFirst,
			Default: posting.UnknownLabel,
			Rules: []Rule{
				{Label: "management", Patterns: []string{`\bmanager\b`, `\bdirector\b`, `\bhead of\b`, `\blead\b`, `\bsupervisor\b`}},
				{Label: "individual_contributor", Patterns: []string{`\bintern\b`, `\bengineer\b`, `\bdeveloper\b`, `\bspecialist\b`, `\banalyst\b`}},
			},
		},
		{
			Name:    TableSkillCategories,
			Policy:  PolicyAccumulate,
			Default: "",
			Rules: []Rule{
				{Label: "frontend", Patterns: []string{`\bfrontend\b`, `\breact\b`, `\bvue\b`, `\bangular\b`, `\bhtml\b`, `\bcss\b`, `\bjavascript\b`}},
				{Label: "backend", Patterns: []string{`\bbackend\b`, `\bpython\b`, `\bjava\b`, `\bnode\b`, `(?:^|\W)\.net\b`, `\bruby\b`, `\bgolang\b`}},
				{Label: "data_science", Patterns: []string{`\bdata science\b`, `\bmachine learning\b`, `\bdeep learning\b`, `\bpandas\b`, `\bscikit-learn\b`}},
				{Label: "devops", Patterns: []string{`\bdevops\b`, `\bci/cd\b`, `\bdocker\b`, `\bkubernetes\b`, `\bjenkins\b`}},
				{Label: "design", Patterns: []string{`\bux\b`, `\bui\b`, `\bdesigner\b`, `\bfigma\b`, `\bsketch\b`}},
			},
		},
		{
			Name:    TableWorkLocation,
			Policy:  PolicyFirst,
			Default: posting.UnspecifiedLabel,
			Rules: []Rule{
				{Label: "remote", Patterns: []string{`\bremote\b`, `\bwork from home\b`, `\btelecommute\b`}},
				{Label: "on_site", Patterns: []string{`\bon[- ]site\b`, `\bin[- ]office\b`, `\blocal\b`}},
			},
		},
	}
}

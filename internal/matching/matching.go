// Package matching scores a single job description against a user profile.
package matching

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/job-shortlist/internal/profile"
	"github.com/spigell/job-shortlist/internal/sentiment"
)

const (
	keywordWeight = 0.3
	skillWeight   = 0.4
	toneWeight    = 0.2
	remoteWeight  = 0.1

	topKeywords        = 20
	minKeywordLength   = 3
	keywordsToSaturate = 5
	remoteMismatch     = 0.5
)

// skillsSection captures the rest of the first "Skills:" line.
var skillsSection = regexp.MustCompile(`(?im)skills:[ \t]*(.*)$`)

// Result is the outcome of one match.
type Result struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Scorer is immutable and safe for concurrent use as long as its Analyzer is.
type Scorer struct {
	sentiment sentiment.Analyzer
}

// New returns a Scorer. A nil analyzer falls back to the built-in lexicon.
func New(analyzer sentiment.Analyzer) *Scorer {
	if analyzer == nil {
		analyzer = sentiment.NewLexicon(nil)
	}
	return &Scorer{sentiment: analyzer}
}

// MatchJSON parses a JSON profile document and matches against it.
func (s *Scorer) MatchJSON(description string, profileJSON []byte) (*Result, error) {
	p, err := profile.Parse(profileJSON)
	if err != nil {
		return nil, err
	}
	return s.Match(description, p), nil
}

// Match combines keyword, skill, tone and remote signals into a 0..100 score.
func (s *Scorer) Match(description string, p *profile.Profile) *Result {
	if p == nil {
		p = &profile.Profile{}
	}
	skills := lowerSet(p.AllSkills())

	overlap := 0
	for _, kw := range TopKeywords(description, topKeywords) {
		if _, ok := skills[kw]; ok {
			overlap++
		}
	}
	keywordScore := math.Min(1, float64(overlap)/keywordsToSaturate)

	skillScore := 0.0
	if jobSkills, ok := SkillsSection(description); ok {
		matched := 0
		for skill := range lowerSet(jobSkills) {
			if _, ok := skills[skill]; ok {
				matched++
			}
		}
		skillScore = math.Min(1, float64(matched)/float64(max(len(lowerSet(jobSkills)), 1)))
	}

	jobSentiment := s.sentiment.Polarity(description)
	userSentiment := s.sentiment.Polarity(strings.Join(p.Values, " "))
	toneScore := math.Max(0, 1-math.Abs(jobSentiment-userSentiment))

	remoteScore := remoteMismatch
	if strings.Contains(strings.ToLower(description), "remote") == p.RemotePreference {
		remoteScore = 1
	}

	raw := keywordWeight*keywordScore + skillWeight*skillScore + toneWeight*toneScore + remoteWeight*remoteScore

	return &Result{
		Score: int(math.Round(raw * 100)),
		Reasons: []string{
			fmt.Sprintf("Found %d overlapping keywords (%.0f%% of target).", overlap, keywordScore*100),
			fmt.Sprintf("Skill overlap score: %.0f%% based on matched skills.", skillScore*100),
			fmt.Sprintf("Tone compatibility: %.0f%% (job sentiment %.2f vs user sentiment %.2f).", toneScore*100, jobSentiment, userSentiment),
			fmt.Sprintf("Remote fit: %d%%.", int(remoteScore*100)),
		},
	}
}

// TopKeywords returns up to n most frequent lowercase tokens of at least three letters or digits.
// Ties keep the order of first appearance.
func TopKeywords(text string, n int) []string {
	counts := make(map[string]int)
	var order []string

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	for _, token := range tokens {
		if utf8.RuneCountInString(token) < minKeywordLength {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// SkillsSection extracts the comma separated list that follows the first "Skills:" label.
// When nothing follows the label on its line, the next non-empty line is used.
func SkillsSection(text string) ([]string, bool) {
	loc := skillsSection.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, false
	}

	list := strings.TrimSpace(text[loc[2]:loc[3]])
	if list == "" {
		for _, line := range strings.Split(text[loc[1]:], "\n") {
			if line = strings.TrimSpace(line); line != "" {
				list = line
				break
			}
		}
	}

	var skills []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			skills = append(skills, item)
		}
	}
	return skills, true
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

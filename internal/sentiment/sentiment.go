// Package sentiment provides text polarity estimation used for tone matching.
package sentiment

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Analyzer estimates the polarity of text in [-1, 1]: negative, neutral (0) or positive.
type Analyzer interface {
	Polarity(text string) float64
}

// AnalyzerFunc adapts a plain function to Analyzer.
type AnalyzerFunc func(text string) float64

func (f AnalyzerFunc) Polarity(text string) float64 { return f(text) }

// Lexicon scores text by averaging the polarity of known words. A negator flips and halves the
// next known word; an intensifier scales it. Safe for concurrent use.
type Lexicon struct {
	words        map[string]float64
	negators     map[string]struct{}
	intensifiers map[string]float64
}

// NewLexicon builds an analyzer over the built-in word list extended (or overridden) by extra.
func NewLexicon(extra map[string]float64) *Lexicon {
	words := make(map[string]float64, len(defaultWords)+len(extra))
	for w, p := range defaultWords {
		words[w] = p
	}
	for w, p := range extra {
		words[fold(w)] = Clamp(p)
	}

	return &Lexicon{
		words:        words,
		negators:     defaultNegators,
		intensifiers: defaultIntensifiers,
	}
}

func (l *Lexicon) Polarity(text string) float64 {
	var (
		sum    float64
		hits   int
		negate bool
		boost  = 1.0
	)

	for _, token := range tokenize(text) {
		if _, ok := l.negators[token]; ok || strings.HasSuffix(token, "n't") {
			negate = true
			continue
		}
		if k, ok := l.intensifiers[token]; ok {
			boost *= k
			continue
		}

		p, ok := l.words[token]
		if !ok {
			continue
		}

		p *= boost
		if negate {
			p *= -0.5
		}
		sum += Clamp(p)
		hits++
		negate, boost = false, 1.0
	}

	if hits == 0 {
		return 0
	}
	return Clamp(sum / float64(hits))
}

// Clamp limits p to [-1, 1].
func Clamp(p float64) float64 {
	switch {
	case p > 1:
		return 1
	case p < -1:
		return -1
	default:
		return p
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
}

// fold lowercases s and strips diacritics so "café" and "cafe" hit the same entry.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

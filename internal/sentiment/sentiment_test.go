package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexiconPolarity(t *testing.T) {
	t.Parallel()

	lex := NewLexicon(nil)

	tests := []struct {
		name   string
		text   string
		expect float64
	}{
		{name: "empty", text: "", expect: 0},
		{name: "no known words", text: "We ship Go services", expect: 0},
		{name: "single positive", text: "A great team", expect: 0.8},
		{name: "average", text: "great but boring", expect: -0.1},
		{name: "negated", text: "not good", expect: -0.35},
		{name: "contraction negates", text: "isn't good", expect: -0.35},
		{name: "intensified and clamped", text: "extremely excellent", expect: 1},
		{name: "case and accents", text: "EXCELLÉNT", expect: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expect, lex.Polarity(tt.text), 1e-9)
		})
	}
}

func TestLexiconPolarityIsBounded(t *testing.T) {
	lex := NewLexicon(map[string]float64{"stellar": 5, "dreadful": -5})

	assert.Equal(t, 1.0, lex.Polarity("stellar"))
	assert.Equal(t, -1.0, lex.Polarity("very very dreadful"))
}

func TestAnalyzerFunc(t *testing.T) {
	var a Analyzer = AnalyzerFunc(func(string) float64 { return 0.25 })
	assert.Equal(t, 0.25, a.Polarity("anything"))
}

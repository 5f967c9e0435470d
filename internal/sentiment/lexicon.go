package sentiment

var defaultNegators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "without": {}, "nor": {},
}

var defaultIntensifiers = map[string]float64{
	"very":       1.3,
	"extremely":  1.5,
	"highly":     1.3,
	"really":     1.2,
	"incredibly": 1.4,
	"truly":      1.2,
}

var defaultWords = map[string]float64{
	// positive
	"good":          0.7,
	"great":         0.8,
	"excellent":     1.0,
	"amazing":       0.6,
	"awesome":       1.0,
	"fantastic":     0.4,
	"exciting":      0.3,
	"excited":       0.375,
	"happy":         0.8,
	"friendly":      0.375,
	"supportive":    0.5,
	"collaborative": 0.4,
	"innovative":    0.5,
	"passionate":    0.5,
	"motivated":     0.4,
	"driven":        0.2,
	"inclusive":     0.4,
	"flexible":      0.3,
	"generous":      0.5,
	"competitive":   0.2,
	"rewarding":     0.5,
	"growth":        0.2,
	"fun":           0.3,
	"best":          1.0,
	"better":        0.5,
	"love":          0.5,
	"enjoy":         0.4,
	"welcoming":     0.5,
	"talented":      0.7,
	"creative":      0.5,
	"meaningful":    0.5,
	"impactful":     0.4,
	"respectful":    0.4,
	"transparent":   0.3,
	"diverse":       0.2,
	"empowering":    0.5,
	"curious":       0.2,
	"kind":          0.6,
	"positive":      0.2,
	"success":       0.3,
	"successful":    0.75,
	"strong":        0.4,
	"thriving":      0.6,
	"ideal":         0.9,
	"perfect":       1.0,

	// negative
	"bad":          -0.7,
	"poor":         -0.4,
	"terrible":     -1.0,
	"awful":        -1.0,
	"stressful":    -0.5,
	"demanding":    -0.3,
	"difficult":    -0.5,
	"hard":         -0.3,
	"boring":       -1.0,
	"toxic":        -0.8,
	"chaotic":      -0.5,
	"unpaid":       -0.4,
	"overtime":     -0.2,
	"pressure":     -0.3,
	"rigid":        -0.3,
	"tedious":      -0.6,
	"repetitive":   -0.3,
	"strict":       -0.2,
	"micromanaged": -0.6,
	"burnout":      -0.7,
	"unstable":     -0.5,
	"slow":         -0.3,
	"hate":         -0.8,
	"angry":        -0.5,
	"sad":          -0.5,
	"worst":        -1.0,
	"worse":        -0.4,
	"problem":      -0.2,
	"fail":         -0.5,
	"failure":      -0.3,
	"urgent":       -0.1,
}

package cleaning

import "strings"

// DefaultTitleThreshold is the similarity ratio at which two titles are considered the same job.
const DefaultTitleThreshold = 0.85

// Similarity returns the block-matching ratio 2*M/T of a and b after lowercasing, where T is the
// combined rune length and M the number of runes covered by matching blocks. The blocks come from
// repeatedly taking the longest common contiguous block and recursing on both sides of it. This
// is not an edit distance: repeated substrings are matched as blocks, not per character.
//
// Cost is O(len(a)*len(b)) per pair in the worst case. Returns 0 when either side is empty.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	total := len(ra) + len(rb)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	m := newBlockMatcher(ra, rb).matched()
	return 2 * float64(m) / float64(total)
}

// IsSimilar reports whether a and b reach threshold. Empty strings never match.
func IsSimilar(a, b string, threshold float64) bool {
	if a == "" || b == "" {
		return false
	}
	return Similarity(a, b) >= threshold
}

type blockMatcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newBlockMatcher(a, b []rune) *blockMatcher {
	b2j := make(map[rune][]int)
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}
	return &blockMatcher{a: a, b: b, b2j: b2j}
}

type span struct {
	alo, ahi, blo, bhi int
}

// matched sums the sizes of all matching blocks.
func (m *blockMatcher) matched() int {
	total := 0
	queue := []span{{0, len(m.a), 0, len(m.b)}}

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := m.longest(s)
		if k == 0 {
			continue
		}
		total += k

		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}

	return total
}

// longest finds the longest block a[i:i+k] == b[j:j+k] inside s. Ties go to the smallest i,
// then the smallest j.
func (m *blockMatcher) longest(s span) (int, int, int) {
	besti, bestj, bestk := s.alo, s.blo, 0

	j2len := map[int]int{}
	for i := s.alo; i < s.ahi; i++ {
		next := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}

	return besti, bestj, bestk
}

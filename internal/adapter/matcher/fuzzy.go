package matcher

import (
	"github.com/hbollon/go-edlib"

	"htmlsearch/internal/port"
)

var _ port.Scorer = (*SubstringScorer)(nil)

// SubstringScorer locates the span of a text closest to the query under
// optimal string alignment distance (Levenshtein plus adjacent
// transpositions), letting the span start and end anywhere in the text.
// The span is then scored with go-edlib's OSA similarity, so an exact
// substring always scores 1.
type SubstringScorer struct{}

func NewSubstringScorer() *SubstringScorer {
	return &SubstringScorer{}
}

// ScoreAndLocate reports the best span of text for query. Among spans with
// the minimal distance the highest similarity wins, then the one ending
// first.
func (s *SubstringScorer) ScoreAndLocate(query string, text []rune) (port.Location, bool) {
	q := []rune(query)
	m, n := len(q), len(text)
	if m == 0 || n == 0 {
		return port.Location{}, false
	}

	// dist[j] is the distance of q[:i] against the best span ending at
	// text[j]; start[j] is where that span begins.
	prev2, prev, cur := make([]int, n+1), make([]int, n+1), make([]int, n+1)
	sPrev2, sPrev, sCur := make([]int, n+1), make([]int, n+1), make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = 0
		sPrev[j] = j
	}

	for i := 1; i <= m; i++ {
		cur[0] = i
		sCur[0] = 0
		for j := 1; j <= n; j++ {
			cost := 1
			if q[i-1] == text[j-1] {
				cost = 0
			}

			best, start := prev[j-1]+cost, sPrev[j-1]
			if d := prev[j] + 1; d < best {
				best, start = d, sPrev[j]
			}
			if d := cur[j-1] + 1; d < best {
				best, start = d, sCur[j-1]
			}
			if i > 1 && j > 1 && q[i-1] == text[j-2] && q[i-2] == text[j-1] {
				if d := prev2[j-2] + 1; d < best {
					best, start = d, sPrev2[j-2]
				}
			}

			cur[j] = best
			sCur[j] = start
		}

		prev2, prev, cur = prev, cur, prev2
		sPrev2, sPrev, sCur = sPrev, sCur, sPrev2
	}

	dist := prev[1]
	for j := 2; j <= n; j++ {
		dist = min(dist, prev[j])
	}
	if dist >= m {
		return port.Location{}, false
	}

	// Several ends can share the minimal distance, and the shorter spans
	// among them are often truncated. Keep the best scoring span.
	var best port.Location
	for end := 1; end <= n; end++ {
		if prev[end] != dist {
			continue
		}
		begin := sPrev[end]
		if begin >= end {
			continue
		}
		if score := similarity(query, string(text[begin:end])); score > best.Score {
			best = port.Location{Offset: begin, Length: end - begin, Score: score}
		}
	}
	if best.Score <= 0 {
		return port.Location{}, false
	}

	return best, true
}

func similarity(query, span string) float64 {
	if query == span {
		return 1.0
	}
	score, err := edlib.StringsSimilarity(query, span, edlib.OSADamerauLevenshtein)
	if err != nil {
		return 0
	}
	return float64(score)
}

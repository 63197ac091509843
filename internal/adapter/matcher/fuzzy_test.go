package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstringScorer_ExactMatch(t *testing.T) {
	s := NewSubstringScorer()

	loc, ok := s.ScoreAndLocate("beta", []rune("alpha beta gamma"))
	require.True(t, ok)
	assert.Equal(t, 6, loc.Offset)
	assert.Equal(t, 4, loc.Length)
	assert.Equal(t, 1.0, loc.Score)
}

func TestSubstringScorer_FirstOccurrenceWins(t *testing.T) {
	loc, ok := NewSubstringScorer().ScoreAndLocate("beta", []rune("beta alpha beta"))
	require.True(t, ok)
	assert.Equal(t, 0, loc.Offset)
	assert.Equal(t, 4, loc.Length)
}

func TestSubstringScorer_NearMiss(t *testing.T) {
	s := NewSubstringScorer()

	tests := []struct {
		name   string
		text   string
		offset int
		length int
	}{
		{"substitution", "alpha bxta gamma", 6, 4},
		{"transposition", "alpha btea gamma", 6, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := s.ScoreAndLocate("beta", []rune(tt.text))
			require.True(t, ok)
			assert.Equal(t, tt.offset, loc.Offset)
			assert.Equal(t, tt.length, loc.Length)
			assert.InDelta(t, 0.75, loc.Score, 1e-6)
		})
	}
}

func TestSubstringScorer_InsertionKeepsWholeSpan(t *testing.T) {
	s := NewSubstringScorer()

	tests := []struct {
		query string
		text  string
		span  string
		score float64
	}{
		{"beta", "alpha betxa gamma", "betxa", 0.8},
		{"colour", "the colouur box", "colouur", 6.0 / 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			text := []rune(tt.text)
			loc, ok := s.ScoreAndLocate(tt.query, text)
			require.True(t, ok)
			assert.Equal(t, tt.span, string(text[loc.Offset:loc.Offset+loc.Length]))
			assert.InDelta(t, tt.score, loc.Score, 1e-6)
		})
	}
}

func TestSubstringScorer_ExactBeatsNearMiss(t *testing.T) {
	s := NewSubstringScorer()

	exact, ok := s.ScoreAndLocate("history", []rune("short history notes"))
	require.True(t, ok)
	near, ok := s.ScoreAndLocate("history", []rune("short histroy notes"))
	require.True(t, ok)
	far, ok := s.ScoreAndLocate("history", []rune("short hostory notes"))
	require.True(t, ok)

	assert.Greater(t, exact.Score, near.Score)
	assert.Greater(t, exact.Score, far.Score)
}

func TestSubstringScorer_RuneOffsets(t *testing.T) {
	loc, ok := NewSubstringScorer().ScoreAndLocate("beta", []rune("año señal beta"))
	require.True(t, ok)
	assert.Equal(t, 10, loc.Offset)
	assert.Equal(t, 4, loc.Length)
}

func TestSubstringScorer_NoMatch(t *testing.T) {
	s := NewSubstringScorer()

	_, ok := s.ScoreAndLocate("zzzz", []rune("abc"))
	assert.False(t, ok)

	_, ok = s.ScoreAndLocate("", []rune("abc"))
	assert.False(t, ok)

	_, ok = s.ScoreAndLocate("abc", nil)
	assert.False(t, ok)
}

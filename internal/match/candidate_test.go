package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fieldKeywords = []string{"cloned", "default", "expr", "into", "iter"}

func TestRankCandidates(t *testing.T) {
	candidates := RankCandidates("clone", fieldKeywords)
	require.Len(t, candidates, len(fieldKeywords))

	assert.Equal(t, "cloned", candidates[0].Word)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score)
	}
}

func TestRankCandidates_TieBreaksByWord(t *testing.T) {
	candidates := RankCandidates("zzzz", []string{"iter", "expr", "into"})

	require.Len(t, candidates, 3)
	assert.Equal(t, []string{"expr", "into", "iter"}, []string{
		candidates[0].Word, candidates[1].Word, candidates[2].Word,
	})
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"clone", "cloned", true},
		{"defualt", "default", true},
		{"Into", "into", true},
		{"itr", "iter", true},
		{"bogus", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Suggest(tt.input, fieldKeywords)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCandidateList_HighConfidence(t *testing.T) {
	_, ok := CandidateList{}.HighConfidence(DefaultMinScore, DefaultMinGap)
	assert.False(t, ok)

	_, ok = CandidateList{{Word: "a", Score: 0.2}}.HighConfidence(DefaultMinScore, DefaultMinGap)
	assert.False(t, ok)

	_, ok = CandidateList{{Word: "a", Score: 0.8}, {Word: "b", Score: 0.79}}.HighConfidence(DefaultMinScore, DefaultMinGap)
	assert.False(t, ok)

	best, ok := CandidateList{{Word: "a", Score: 0.8}, {Word: "b", Score: 0.2}}.HighConfidence(DefaultMinScore, DefaultMinGap)
	require.True(t, ok)
	assert.Equal(t, "a", best.Word)
}

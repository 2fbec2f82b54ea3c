package match

import (
	"cmp"
	"slices"
)

// Confidence thresholds for offering a suggestion.
const (
	// DefaultMinScore is the minimum score for a suggestion.
	DefaultMinScore = 0.5
	// DefaultMinGap is the minimum score gap between the top two candidates.
	DefaultMinGap = 0.1
)

// Candidate is a known word ranked against a misspelled input.
type Candidate struct {
	Word string
	// Score is the Similarity of the normalized input and word.
	Score float64
}

// CandidateList is ordered best first.
type CandidateList []Candidate

// RankCandidates scores every word against input, best first. Equal scores
// are ordered by word.
func RankCandidates(input string, words []string) CandidateList {
	norm := NormalizeIdent(input)

	candidates := make(CandidateList, 0, len(words))
	for _, w := range words {
		candidates = append(candidates, Candidate{Word: w, Score: Similarity(norm, NormalizeIdent(w))})
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Word, b.Word)
	})

	return candidates
}

// HighConfidence returns the best candidate when it scores at least minScore
// and beats the runner-up by minGap.
func (c CandidateList) HighConfidence(minScore, minGap float64) (Candidate, bool) {
	if len(c) == 0 || c[0].Score < minScore {
		return Candidate{}, false
	}

	if len(c) > 1 && c[0].Score-c[1].Score < minGap {
		return Candidate{}, false
	}

	return c[0], true
}

// Suggest returns the closest known word to input, if one is similar enough
// to be offered as a "did you mean" hint.
func Suggest(input string, words []string) (string, bool) {
	best, ok := RankCandidates(input, words).HighConfidence(DefaultMinScore, DefaultMinGap)
	return best.Word, ok
}

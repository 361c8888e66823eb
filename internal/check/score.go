package check

import "math"

// Per-issue penalty weights. Grammar problems hurt more than spelling,
// spelling more than punctuation.
const (
	grammarWeight     = 5.0
	spellingWeight    = 3.0
	punctuationWeight = 2.0
)

// baselineLength is the text length (in runes) at which penalties apply at
// full weight. Longer texts scale each penalty down proportionally, so the
// same absolute issue count does not punish a long text more harshly than
// a short one.
const baselineLength = 100

// NeutralScore is the fixed score of a degraded result: when no remote
// model is reachable the text cannot be verified, so the service assumes
// it is acceptable rather than failing the request.
const NeutralScore = 100

// Score computes a 0-100 grammar score from an issue list and the rune
// length of the checked text. It is a pure function: identical inputs
// always yield identical output.
func Score(issues []Issue, textLength int) int {
	scale := 1.0
	if textLength > baselineLength {
		scale = float64(baselineLength) / float64(textLength)
	}

	penalty := 0.0
	for _, issue := range issues {
		penalty += issueWeight(issue.Type) * scale
	}

	score := int(math.Round(100 - penalty))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func issueWeight(t IssueType) float64 {
	switch t {
	case IssueGrammar:
		return grammarWeight
	case IssueSpelling:
		return spellingWeight
	case IssuePunctuation:
		return punctuationWeight
	default:
		return grammarWeight
	}
}

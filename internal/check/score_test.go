package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_NoIssues(t *testing.T) {
	assert.Equal(t, 100, Score([]Issue{}, 50))
	assert.Equal(t, 100, Score(nil, 50))
}

func TestScore_WeightsByType(t *testing.T) {
	grammar := []Issue{{Type: IssueGrammar}}
	spelling := []Issue{{Type: IssueSpelling}}
	punctuation := []Issue{{Type: IssuePunctuation}}

	assert.Equal(t, 95, Score(grammar, 50))
	assert.Equal(t, 97, Score(spelling, 50))
	assert.Equal(t, 98, Score(punctuation, 50))
}

func TestScore_SeverityOrdering(t *testing.T) {
	// Grammar penalizes harder than spelling, spelling harder than punctuation.
	g := Score([]Issue{{Type: IssueGrammar}}, 50)
	s := Score([]Issue{{Type: IssueSpelling}}, 50)
	p := Score([]Issue{{Type: IssuePunctuation}}, 50)

	assert.Less(t, g, s)
	assert.Less(t, s, p)
}

func TestScore_MoreIssuesLowerScore(t *testing.T) {
	one := []Issue{{Type: IssueGrammar}}
	three := []Issue{{Type: IssueGrammar}, {Type: IssueGrammar}, {Type: IssueGrammar}}

	assert.Greater(t, Score(one, 50), Score(three, 50))
}

func TestScore_LongTextPenalizedLess(t *testing.T) {
	issues := []Issue{{Type: IssueGrammar}, {Type: IssueSpelling}}

	short := Score(issues, 50)
	long := Score(issues, 1000)

	assert.Greater(t, long, short)
}

func TestScore_ClampedToZero(t *testing.T) {
	issues := make([]Issue, 50)
	for i := range issues {
		issues[i] = Issue{Type: IssueGrammar}
	}

	score := Score(issues, 50)
	assert.Equal(t, 0, score)
}

func TestScore_AlwaysInRange(t *testing.T) {
	for count := 0; count <= 40; count++ {
		issues := make([]Issue, count)
		for i := range issues {
			issues[i] = Issue{Type: IssueGrammar}
		}
		for _, length := range []int{1, 10, 100, 10000} {
			score := Score(issues, length)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestScore_Pure(t *testing.T) {
	issues := []Issue{
		{Type: IssueGrammar, StartIndex: 0, EndIndex: 5},
		{Type: IssuePunctuation, StartIndex: 10, EndIndex: 11},
	}

	first := Score(issues, 120)
	second := Score(issues, 120)

	assert.Equal(t, first, second)
}

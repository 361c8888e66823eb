// Package check implements the grammar check pipeline: fallback
// orchestration between remote models, normalization of provider-specific
// responses into a uniform issue list, and score computation.
package check

// IssueType classifies a flagged problem.
type IssueType string

// Issue type constants, ordered by severity (grammar weighs heaviest).
const (
	IssueGrammar     IssueType = "grammar"
	IssueSpelling    IssueType = "spelling"
	IssuePunctuation IssueType = "punctuation"
)

// Issue is a single flagged grammar, spelling, or punctuation problem with
// its location in the original text and a suggested fix. StartIndex and
// EndIndex are rune offsets into the original text; EndIndex >= StartIndex.
type Issue struct {
	Original    string    `json:"original"`
	Suggestion  string    `json:"suggestion"`
	Type        IssueType `json:"type"`
	Explanation string    `json:"explanation"`
	StartIndex  int       `json:"startIndex"`
	EndIndex    int       `json:"endIndex"`
}

// Result is the outcome of one grammar check. Issues are sorted ascending
// by StartIndex (ties by EndIndex) and contain no duplicates. Result is not
// mutated after creation.
type Result struct {
	CorrectedText string  `json:"correctedText"`
	Issues        []Issue `json:"issues"`
	Score         int     `json:"score"`
}

// ModelKind selects the parsing rules for a provider response.
type ModelKind string

// Supported model response shapes.
const (
	// KindAcceptability is a text-classification response: a ranked list
	// of labels with probabilities, no rewritten text.
	KindAcceptability ModelKind = "acceptability"
	// KindCorrection is a text2text response carrying generated corrected
	// text.
	KindCorrection ModelKind = "correction"
)

// Normalized is the uniform form of a provider response.
type Normalized struct {
	CorrectedText string
	Issues        []Issue
	// Confidence is the probability the provider assigned to its winning
	// classification label. Correction responses carry no such signal and
	// report 1.
	Confidence float64
}

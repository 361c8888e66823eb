package check

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// opTag marks one region of a token-level edit script.
type opTag int

const (
	opEqual opTag = iota
	opReplace
	opDelete
	opInsert
)

// opcode describes one contiguous region of the edit script: tokens
// a[i1:i2] correspond to tokens b[j1:j2].
type opcode struct {
	tag            opTag
	i1, i2, j1, j2 int
}

// DiffIssues compares the original text against the model's corrected text
// and produces one Issue per contiguous token-level edit. Offsets are rune
// offsets into the original text.
func DiffIssues(original, corrected string) []Issue {
	if original == corrected {
		return []Issue{}
	}

	origTokens, origStarts := tokenize(original)
	corrTokens, _ := tokenize(corrected)
	textLen := utf8.RuneCountInString(original)

	issues := make([]Issue, 0)
	for _, op := range diffOpcodes(origTokens, corrTokens) {
		if op.tag == opEqual {
			continue
		}

		origPhrase := strings.Join(origTokens[op.i1:op.i2], " ")
		suggestion := strings.Join(corrTokens[op.j1:op.j2], " ")

		var start, end int
		if op.i1 < op.i2 {
			start = origStarts[op.i1]
			end = origStarts[op.i2-1] + utf8.RuneCountInString(origTokens[op.i2-1])
		} else if op.i1 < len(origStarts) {
			// Pure insertion: anchor at the token it precedes.
			start = origStarts[op.i1]
			end = start
		} else {
			start = textLen
			end = textLen
		}

		issues = append(issues, Issue{
			Original:    origPhrase,
			Suggestion:  suggestion,
			Type:        classifyIssue(origPhrase, suggestion),
			Explanation: explainEdit(origPhrase, suggestion),
			StartIndex:  start,
			EndIndex:    end,
		})
	}
	return issues
}

// tokenize splits text on whitespace and records the rune offset of each
// token in the source.
func tokenize(text string) (tokens []string, starts []int) {
	var current strings.Builder
	start := 0
	offset := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				starts = append(starts, start)
				current.Reset()
			}
		} else {
			if current.Len() == 0 {
				start = offset
			}
			current.WriteRune(r)
		}
		offset++
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
		starts = append(starts, start)
	}
	return tokens, starts
}

// diffOpcodes computes a token-level edit script between a and b using a
// longest-common-subsequence alignment. Adjacent non-matching tokens are
// grouped into single replace/delete/insert regions.
func diffOpcodes(a, b []string) []opcode {
	n, m := len(a), len(b)

	// lcs[i][j] holds the LCS length of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []opcode
	i, j := 0, 0
	for i < n || j < m {
		if i < n && j < m && a[i] == b[j] {
			i1, j1 := i, j
			for i < n && j < m && a[i] == b[j] {
				i++
				j++
			}
			ops = append(ops, opcode{opEqual, i1, i, j1, j})
			continue
		}

		i1, j1 := i, j
		for i < n || j < m {
			if i < n && j < m && a[i] == b[j] {
				break
			}
			if i < n && (j >= m || lcs[i+1][j] >= lcs[i][j+1]) {
				i++
			} else {
				j++
			}
		}
		tag := opReplace
		if j == j1 {
			tag = opDelete
		} else if i == i1 {
			tag = opInsert
		}
		ops = append(ops, opcode{tag, i1, i, j1, j})
	}
	return ops
}

// classifyIssue assigns an issue type with a deterministic rule: edits
// that only touch punctuation are punctuation issues, case-only or
// near-identical single-word edits are spelling, everything else is
// grammar.
func classifyIssue(original, suggestion string) IssueType {
	if original == "" || suggestion == "" {
		return IssueGrammar
	}
	if strings.EqualFold(original, suggestion) {
		return IssueSpelling
	}
	if strings.EqualFold(stripPunct(original), stripPunct(suggestion)) {
		return IssuePunctuation
	}
	singleWords := !strings.Contains(original, " ") && !strings.Contains(suggestion, " ")
	if singleWords && editDistance(strings.ToLower(original), strings.ToLower(suggestion)) <= 2 {
		return IssueSpelling
	}
	return IssueGrammar
}

func explainEdit(original, suggestion string) string {
	switch {
	case original != "" && suggestion != "":
		return fmt.Sprintf("'%s' should be '%s'", original, suggestion)
	case original != "":
		return fmt.Sprintf("Remove '%s'", original)
	default:
		return fmt.Sprintf("Add '%s'", suggestion)
	}
}

func stripPunct(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

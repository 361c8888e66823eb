package check

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"
)

// labelScore is one entry of a text-classification response.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// generation is one entry of a text2text-generation response.
type generation struct {
	GeneratedText string `json:"generated_text"`
}

// Normalize converts a raw provider response into the uniform issue form.
// text is the original input the model was called with. It returns a
// MalformedResponseError when the payload does not match the expected
// shape for the model kind.
func Normalize(text string, raw []byte, kind ModelKind) (*Normalized, error) {
	if err := validatePayload(raw, kind); err != nil {
		return nil, err
	}

	switch kind {
	case KindAcceptability:
		return normalizeAcceptability(text, raw)
	case KindCorrection:
		return normalizeCorrection(text, raw)
	default:
		return nil, &MalformedResponseError{Kind: kind, Message: "unknown model kind"}
	}
}

// normalizeAcceptability interprets a classification response. The model
// does not rewrite text, so an unacceptable classification becomes a
// single whole-text grammar issue.
func normalizeAcceptability(text string, raw []byte) (*Normalized, error) {
	labels, err := parseLabels(raw)
	if err != nil {
		return nil, err
	}

	best := labels[0]
	for _, l := range labels[1:] {
		if l.Score > best.Score {
			best = l
		}
	}

	if acceptableLabel(best.Label) {
		return &Normalized{CorrectedText: text, Issues: []Issue{}, Confidence: best.Score}, nil
	}

	issue := Issue{
		Original:    text,
		Suggestion:  "",
		Type:        IssueGrammar,
		Explanation: "The text may contain grammatical errors.",
		StartIndex:  0,
		EndIndex:    utf8.RuneCountInString(text),
	}
	return &Normalized{CorrectedText: text, Issues: []Issue{issue}, Confidence: best.Score}, nil
}

// normalizeCorrection interprets a generation response by diffing the
// original text against the generated corrected text.
func normalizeCorrection(text string, raw []byte) (*Normalized, error) {
	corrected, err := parseGeneratedText(raw)
	if err != nil {
		return nil, err
	}
	return NormalizedFromCorrected(text, corrected), nil
}

// NormalizedFromCorrected builds the uniform form from a plain corrected
// string, for providers that return rewritten text directly.
func NormalizedFromCorrected(text, corrected string) *Normalized {
	return &Normalized{
		CorrectedText: corrected,
		Issues:        finalizeIssues(DiffIssues(text, corrected)),
		Confidence:    1,
	}
}

func parseLabels(raw []byte) ([]labelScore, error) {
	// Single inputs come back as [[{label,score}...]], some deployments
	// flatten to [{label,score}...].
	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}
	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	return nil, &MalformedResponseError{Kind: KindAcceptability, Message: "no classification labels in payload"}
}

func parseGeneratedText(raw []byte) (string, error) {
	var list []generation
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		if text := strings.TrimSpace(list[0].GeneratedText); text != "" {
			return text, nil
		}
	}
	var single generation
	if err := json.Unmarshal(raw, &single); err == nil {
		if text := strings.TrimSpace(single.GeneratedText); text != "" {
			return text, nil
		}
	}
	return "", &MalformedResponseError{Kind: KindCorrection, Message: "no generated text in payload"}
}

// acceptableLabel reports whether a classification label means the text is
// grammatically acceptable. CoLA-style classifiers use LABEL_1 for the
// acceptable class.
func acceptableLabel(label string) bool {
	return strings.EqualFold(label, "LABEL_1") || strings.EqualFold(label, "acceptable")
}

// finalizeIssues sorts issues ascending by StartIndex (ties by EndIndex)
// and drops duplicates sharing an identical span and suggestion.
func finalizeIssues(issues []Issue) []Issue {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].StartIndex != issues[j].StartIndex {
			return issues[i].StartIndex < issues[j].StartIndex
		}
		return issues[i].EndIndex < issues[j].EndIndex
	})

	deduped := make([]Issue, 0, len(issues))
	type span struct {
		start, end int
		suggestion string
	}
	seen := make(map[span]bool)
	for _, issue := range issues {
		key := span{issue.StartIndex, issue.EndIndex, issue.Suggestion}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, issue)
	}
	return deduped
}

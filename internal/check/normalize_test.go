package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_AcceptableClassification(t *testing.T) {
	raw := []byte(`[[{"label":"LABEL_1","score":0.98},{"label":"LABEL_0","score":0.02}]]`)

	n, err := Normalize("This sentence is fine.", raw, KindAcceptability)

	require.NoError(t, err)
	assert.Equal(t, "This sentence is fine.", n.CorrectedText)
	assert.Empty(t, n.Issues)
	assert.InDelta(t, 0.98, n.Confidence, 0.001)
}

func TestNormalize_UnacceptableClassification(t *testing.T) {
	text := "Me goes store"
	raw := []byte(`[[{"label":"LABEL_0","score":0.91},{"label":"LABEL_1","score":0.09}]]`)

	n, err := Normalize(text, raw, KindAcceptability)

	require.NoError(t, err)
	assert.Equal(t, text, n.CorrectedText)
	require.Len(t, n.Issues, 1)
	assert.Equal(t, IssueGrammar, n.Issues[0].Type)
	assert.Equal(t, text, n.Issues[0].Original)
	assert.Equal(t, 0, n.Issues[0].StartIndex)
	assert.Equal(t, len([]rune(text)), n.Issues[0].EndIndex)
	assert.InDelta(t, 0.91, n.Confidence, 0.001)
}

func TestNormalize_FlatClassificationPayload(t *testing.T) {
	raw := []byte(`[{"label":"acceptable","score":0.8},{"label":"unacceptable","score":0.2}]`)

	n, err := Normalize("Fine text.", raw, KindAcceptability)

	require.NoError(t, err)
	assert.Empty(t, n.Issues)
	assert.InDelta(t, 0.8, n.Confidence, 0.001)
}

func TestNormalize_MalformedClassificationPayload(t *testing.T) {
	cases := map[string]string{
		"object":        `{"error":"model loading"}`,
		"empty array":   `[]`,
		"wrong fields":  `[[{"generated_text":"oops"}]]`,
		"not json":      `<html>bad gateway</html>`,
		"string values": `[[{"label":"LABEL_1","score":"high"}]]`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize("text", []byte(payload), KindAcceptability)
			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, KindAcceptability, malformed.Kind)
		})
	}
}

func TestNormalize_CorrectionPayload(t *testing.T) {
	raw := []byte(`[{"generated_text":"They're going to the store"}]`)

	n, err := Normalize("Their going to the store", raw, KindCorrection)

	require.NoError(t, err)
	assert.Equal(t, "They're going to the store", n.CorrectedText)
	require.Len(t, n.Issues, 1)
	assert.Equal(t, "They're", n.Issues[0].Suggestion)
	assert.Equal(t, float64(1), n.Confidence)
}

func TestNormalize_CorrectionObjectPayload(t *testing.T) {
	raw := []byte(`{"generated_text":"No change."}`)

	n, err := Normalize("No change.", raw, KindCorrection)

	require.NoError(t, err)
	assert.Equal(t, "No change.", n.CorrectedText)
	assert.Empty(t, n.Issues)
}

func TestNormalize_MalformedCorrectionPayload(t *testing.T) {
	cases := map[string]string{
		"missing field": `[{"label":"LABEL_1","score":0.5}]`,
		"empty text":    `[{"generated_text":"  "}]`,
		"not json":      `oops`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize("text", []byte(payload), KindCorrection)
			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, KindCorrection, malformed.Kind)
		})
	}
}

func TestFinalizeIssues_SortsAndDedupes(t *testing.T) {
	issues := []Issue{
		{StartIndex: 10, EndIndex: 12, Suggestion: "b"},
		{StartIndex: 0, EndIndex: 5, Suggestion: "a"},
		{StartIndex: 10, EndIndex: 12, Suggestion: "b"},
		{StartIndex: 10, EndIndex: 11, Suggestion: "c"},
	}

	final := finalizeIssues(issues)

	require.Len(t, final, 3)
	assert.Equal(t, 0, final[0].StartIndex)
	assert.Equal(t, 10, final[1].StartIndex)
	assert.Equal(t, 11, final[1].EndIndex)
	assert.Equal(t, 12, final[2].EndIndex)
}

package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/grammar-checker/internal/check"
)

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &check.Result{
		CorrectedText: "They're going to the store.",
		Issues: []check.Issue{{
			Original:    "Their",
			Suggestion:  "They're",
			Type:        check.IssueGrammar,
			Explanation: "'Their' should be 'They're'",
			StartIndex:  0,
			EndIndex:    5,
		}},
		Score: 95,
	}

	p.PrintResult(result)

	output := buf.String()
	assert.Contains(t, output, "GRAMMAR CHECK")
	assert.Contains(t, output, "Score:  95/100")
	assert.Contains(t, output, "Issues: 1")
	assert.Contains(t, output, "[grammar]")
	assert.Contains(t, output, "They're")
}

func TestPrintResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResult_ManyIssuesTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &check.Result{Score: 40}
	for i := 0; i < 8; i++ {
		result.Issues = append(result.Issues, check.Issue{
			Type:        check.IssueSpelling,
			Explanation: "'teh' should be 'the'",
			StartIndex:  i * 4,
			EndIndex:    i*4 + 3,
		})
	}

	p.PrintResult(result)

	output := buf.String()
	assert.Contains(t, output, "Issues: 8")
	assert.Contains(t, output, "... and 3 more issues")
}

func TestPrintCorrectedText_WrapsLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCorrectedText(strings.Repeat("correctness ", 20))

	output := buf.String()
	assert.Contains(t, output, "CORRECTED TEXT")
	for _, line := range strings.Split(output, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}

func TestPrintCorrectedText_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCorrectedText("")
	assert.Empty(t, buf.String())
}

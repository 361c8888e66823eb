// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/grammar-checker/internal/check"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of issues to display
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs a human-readable summary of a grammar check.
func (p *Printer) PrintResult(result *check.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:  %d/100\n", result.Score))
	sb.WriteString(fmt.Sprintf("Issues: %d\n", len(result.Issues)))

	if len(result.Issues) > 0 {
		sb.WriteString("\n")
		count := min(len(result.Issues), maxItemsToShow)
		for i := 0; i < count; i++ {
			issue := result.Issues[i]
			sb.WriteString(fmt.Sprintf("#%d  [%s] %s\n", i+1, issue.Type, issue.Explanation))
			sb.WriteString(fmt.Sprintf("    at %d-%d", issue.StartIndex, issue.EndIndex))
			if issue.Suggestion != "" {
				suggestion := issue.Suggestion
				if len(suggestion) > 30 {
					suggestion = suggestion[:27] + "..."
				}
				sb.WriteString(fmt.Sprintf("  → %s", suggestion))
			}
			sb.WriteString("\n")
			if i < count-1 {
				sb.WriteString("\n")
			}
		}
		if len(result.Issues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n... and %d more issues", len(result.Issues)-maxItemsToShow))
		}
	}

	p.printBox("GRAMMAR CHECK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCorrectedText outputs the corrected text, wrapped to the box width.
func (p *Printer) PrintCorrectedText(corrected string) {
	if corrected == "" {
		return
	}
	p.printBox("CORRECTED TEXT", wrapText(corrected, boxWidth-4))
}

// wrapText breaks text into lines no longer than width, splitting on
// word boundaries where possible.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}

package review

import (
	"fmt"
	"strings"

	"review-analyzer/internal/services/llm"
)

// ReportFilename is the suggested filename for a downloaded report.
const ReportFilename = "review_analysis.txt"

// noneIdentified stands in for an empty pros or cons list in the report.
const noneIdentified = "None identified"

// Report renders the flat-text export of an analysis. The layout matches the
// downloadable report of the original demo.
func Report(a *llm.Analysis) string {
	var b strings.Builder
	b.WriteString("Review Analysis Results\n")
	b.WriteString("=====================\n\n")
	fmt.Fprintf(&b, "Sentiment: %s\n\n", titleCase(a.Sentiment))
	fmt.Fprintf(&b, "Summary:\n%s\n\n", a.Summary)
	fmt.Fprintf(&b, "Key Themes:\n%s\n\n", strings.Join(a.KeyThemes, ", "))
	fmt.Fprintf(&b, "Pros:\n%s\n\n", bulleted(a.Pros))
	fmt.Fprintf(&b, "Cons:\n%s\n", bulleted(a.Cons))
	return b.String()
}

func bulleted(items []string) string {
	if len(items) == 0 {
		return noneIdentified
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

// titleCase uppercases the first letter. Sentiment values are lowercase ASCII
// after normalization, so this is all the title-casing the report needs.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

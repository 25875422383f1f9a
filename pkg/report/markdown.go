// Package report renders deal, venture, and VC fund-seat evaluations into
// Markdown memos, and validates that the rendered output actually parses as
// Markdown before it is handed to a caller.
package report

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// Validate reports whether input parses as well-formed Markdown. Goldmark's
// parser is permissive, so this only catches the nil-document case — it is
// a sanity check, not a lint pass.
func Validate(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	return parser.Parse(reader) != nil
}

// Section is one labeled block of a memo.
type Section struct {
	Heading string
	Lines   []string
}

// Memo is a correlation-tagged collection of sections rendered to Markdown.
type Memo struct {
	Title          string
	CorrelationID  string
	Sections       []Section
}

// Render produces the Markdown text for a memo. It always calls Validate
// before returning, and fmt.Errorf-wraps a failure so a caller never ships
// malformed output silently.
func (m Memo) Render() (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	if m.CorrelationID != "" {
		fmt.Fprintf(&b, "_Correlation ID: %s_\n\n", m.CorrelationID)
	}
	for _, s := range m.Sections {
		fmt.Fprintf(&b, "## %s\n\n", s.Heading)
		for _, line := range s.Lines {
			fmt.Fprintf(&b, "%s\n", line)
		}
		b.WriteString("\n")
	}
	out := b.String()
	if !Validate(out) {
		return "", fmt.Errorf("report: rendered memo for %q failed markdown validation", m.Title)
	}
	return out, nil
}

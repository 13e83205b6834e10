// Package report renders paragraph summaries for a case study.
package report

import (
	"fmt"
	"io"
	"strings"
)

const (
	// DefaultCount is how many paragraphs are previewed.
	DefaultCount = 3
	// DefaultLimit is the preview length in characters.
	DefaultLimit = 200
	// Ellipsis marks a truncated preview.
	Ellipsis = "..."
)

// Options controls how many paragraphs are previewed and how long each preview is.
type Options struct {
	Count int
	Limit int
}

// DefaultOptions returns the standard three previews of 200 characters.
func DefaultOptions() Options {
	return Options{Count: DefaultCount, Limit: DefaultLimit}
}

// Preview returns p unchanged when it has at most limit characters, otherwise
// its first limit characters followed by an ellipsis. Characters are Unicode
// code points.
func Preview(p string, limit int) string {
	runes := []rune(p)
	if len(runes) <= limit {
		return p
	}
	return string(runes[:limit]) + Ellipsis
}

// Render formats the paragraph report.
func Render(paragraphs []string, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Number of paragraphs: %d\n", len(paragraphs))
	fmt.Fprintf(&b, "\nFirst %d paragraphs:\n", opts.Count)

	n := opts.Count
	if n > len(paragraphs) {
		n = len(paragraphs)
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "\n--- Paragraph %d ---\n", i+1)
		b.WriteString(Preview(paragraphs[i], opts.Limit))
		b.WriteString("\n")
	}

	return b.String()
}

// Write renders the report to w in a single write.
func Write(w io.Writer, paragraphs []string, opts Options) error {
	_, err := io.WriteString(w, Render(paragraphs, opts))
	return err
}

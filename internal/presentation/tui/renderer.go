package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It falls back to the raw text if the renderer cannot be built.
func NewRenderer(wordWrap int) func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if wordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(wordWrap))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// TurtleMarkdown wraps a Turtle document in a fenced block for highlighting.
func TurtleMarkdown(title, turtle string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("# " + title + "\n\n")
	}
	b.WriteString("```turtle\n")
	b.WriteString(turtle)
	if !strings.HasSuffix(turtle, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

// Package render: terminal renderer.
// Styles the Markdown rendering for a terminal with glamour.
package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/selffix-ai/repairguide/core"
)

const defaultWordWrap = 80

// TerminalRenderer renders a guide as styled terminal text.
type TerminalRenderer struct {
	Style    string // glamour standard style; "auto" detects the terminal
	WordWrap int
}

// NewTerminalRenderer creates a TerminalRenderer. An empty style means
// "auto"; a non-positive width falls back to 80 columns.
func NewTerminalRenderer(style string, wordWrap int) *TerminalRenderer {
	if style == "" {
		style = "auto"
	}
	if wordWrap <= 0 {
		wordWrap = defaultWordWrap
	}
	return &TerminalRenderer{Style: style, WordWrap: wordWrap}
}

// Render styles the guide's Markdown for the terminal.
func (r *TerminalRenderer) Render(guide core.Guide) ([]byte, error) {
	styleOpt := glamour.WithStandardStyle(r.Style)
	if r.Style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(r.WordWrap))
	if err != nil {
		return nil, fmt.Errorf("creating terminal renderer: %w", err)
	}

	out, err := tr.Render(Markdown(guide))
	if err != nil {
		return nil, fmt.Errorf("styling markdown: %w", err)
	}
	return []byte(out), nil
}

// Extension returns the file extension for terminal output.
func (r *TerminalRenderer) Extension() string {
	return ".txt"
}

// Package render provides output renderers for repair guides.
// This file implements the Markdown renderer, which re-emits the parsed
// blocks as clean Markdown with the missing breaks put back.
package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/selffix-ai/repairguide/core"
)

// MarkdownRenderer writes a guide as canonical Markdown.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the guide as Markdown bytes.
func (r *MarkdownRenderer) Render(guide core.Guide) ([]byte, error) {
	return []byte(Markdown(guide)), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// Markdown renders guide as a Markdown document.
func Markdown(guide core.Guide) string {
	var parts []string
	if header := metaMarkdown(guide.Meta); header != "" {
		parts = append(parts, header)
	}
	for _, b := range guide.Blocks {
		parts = append(parts, blockMarkdown(b))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func blockMarkdown(b core.Block) string {
	switch b := b.(type) {
	case *core.Heading:
		return strings.Repeat("#", b.Level) + " " + spansMarkdown(b.Text)
	case *core.BoldHeading:
		return "**" + core.PlainText(b.Text) + "**"
	case *core.Step:
		return fmt.Sprintf("**Step %d:** %s", b.Number, spansMarkdown(b.Text))
	case *core.BulletList:
		lines := make([]string, len(b.Items))
		for i, item := range b.Items {
			lines[i] = "- " + spansMarkdown(item)
		}
		return strings.Join(lines, "\n")
	case *core.NumberedList:
		lines := make([]string, len(b.Items))
		for i, item := range b.Items {
			lines[i] = fmt.Sprintf("%d. %s", i+1, spansMarkdown(item))
		}
		return strings.Join(lines, "\n")
	case *core.Paragraph:
		lines := make([]string, len(b.Lines))
		for i, line := range b.Lines {
			lines[i] = spansMarkdown(line)
		}
		// Two trailing spaces keep each line break.
		return strings.Join(lines, "  \n")
	default:
		return ""
	}
}

func spansMarkdown(spans []core.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Strong {
			sb.WriteString("**" + s.Text + "**")
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// metaMarkdown renders the diagnosis summary that heads the guide.
func metaMarkdown(meta core.GuideMetadata) string {
	var lines []string
	for _, f := range summaryFields(meta) {
		lines = append(lines, fmt.Sprintf("- **%s:** %s", f.label, f.value))
	}
	title := guideTitle(meta)
	if title == "" && len(lines) == 0 {
		return ""
	}
	if title == "" {
		return strings.Join(lines, "\n")
	}
	if len(lines) == 0 {
		return "# " + title
	}
	return "# " + title + "\n\n" + strings.Join(lines, "\n")
}

type summaryField struct {
	label string
	value string
}

// guideTitle names the guide after the appliance.
func guideTitle(meta core.GuideMetadata) string {
	if meta.Appliance == "" {
		return ""
	}
	return "Repair guide: " + meta.Appliance
}

// summaryFields lists the non-empty metadata fields in display order.
func summaryFields(meta core.GuideMetadata) []summaryField {
	var fields []summaryField
	if meta.Issue != "" {
		v := meta.Issue
		if meta.Confidence > 0 {
			v += fmt.Sprintf(" (%d%% confidence)", meta.Confidence)
		}
		fields = append(fields, summaryField{"Diagnosis", v})
	}
	if meta.Severity != "" {
		fields = append(fields, summaryField{"Severity", meta.Severity})
	}
	if meta.Difficulty != "" {
		fields = append(fields, summaryField{"Difficulty", meta.Difficulty})
	}
	if meta.RepairCost > 0 {
		fields = append(fields, summaryField{"Repair cost", money(meta.RepairCost)})
	}
	if meta.ReplacementCost > 0 {
		fields = append(fields, summaryField{"Replacement cost", money(meta.ReplacementCost)})
	}
	if meta.Savings > 0 {
		fields = append(fields, summaryField{"Savings", money(meta.Savings)})
	}
	if meta.CarbonSavedKg > 0 {
		fields = append(fields, summaryField{"CO₂ saved", humanize.CommafWithDigits(meta.CarbonSavedKg, 1) + " kg"})
	}
	return fields
}

func money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

// Package inline resolves inline emphasis in repair-guide text.
package inline

import (
	"regexp"

	"github.com/selffix-ai/repairguide/core"
)

// Decorative markers prefixed to vocabulary triggers.
const (
	SafetyMarker = "⚠️"
	InfoMarker   = "💡"
	ToolsMarker  = "🧰"
)

type trigger struct {
	re     *regexp.Regexp
	marker string
}

var triggers = []trigger{
	{regexp.MustCompile(`(?i)\b(Warning|Caution|Danger)\b`), SafetyMarker},
	{regexp.MustCompile(`(?i)\b(Note|Tip)\b`), InfoMarker},
	{regexp.MustCompile(`(?i)\b(Tools? Required)\b`), ToolsMarker},
}

// strongRegex matches a "**" pair and everything between, newlines included.
var strongRegex = regexp.MustCompile(`(?s)\*\*.*?\*\*`)

// Decorate prefixes every whole-word vocabulary trigger with its marker.
func Decorate(text string) string {
	for _, t := range triggers {
		text = t.re.ReplaceAllString(text, t.marker+" ${1}")
	}
	return text
}

// Resolve decorates text and splits it into plain and strong spans.
// Only "**" pairs with both ends present become strong; an unterminated
// marker stays in the plain text. Empty spans are omitted.
func Resolve(text string) []core.Span {
	text = Decorate(text)

	var spans []core.Span
	last := 0
	for _, loc := range strongRegex.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, core.Span{Text: text[last:loc[0]]})
		}
		if inner := text[loc[0]+2 : loc[1]-2]; inner != "" {
			spans = append(spans, core.Span{Text: inner, Strong: true})
		}
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, core.Span{Text: text[last:]})
	}
	return spans
}

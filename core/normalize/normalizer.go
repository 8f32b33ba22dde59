// Package normalize implements the Normalizer interface.
// It repairs the paragraph breaks AI services leave out of repair text,
// converting HTML responses to Markdown first. The repaired Markdown is
// the canonical intermediate format for all downstream stages.
package normalize

import (
	"fmt"
	"regexp"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// repairRule is one global substitution of the repair pass.
type repairRule struct {
	name string
	re   *regexp.Regexp
	repl string
}

// repairRules run in order, each over the output of the previous one.
// Every pattern needs a non-newline character right before the whitespace
// run, so a second pass finds nothing new to rewrite. The run also takes
// Unicode spaces such as NBSP, which RE2's \s leaves out.
var repairRules = []repairRule{
	// "Header * Bullet" -> "Header\n* Bullet"
	{"bullet", regexp.MustCompile(`([^\n])[\s\p{Zs}]+([*-]\s)`), "${1}\n${2}"},
	// "Text **Step 1:**" -> "Text\n\n**Step 1:**"
	{"bold_step", regexp.MustCompile(`(?i)([^\n])[\s\p{Zs}]+(\*\*?Step\s+\d+)`), "${1}\n\n${2}"},
	// "Text Step 1:" -> "Text\n\nStep 1:"
	{"step", regexp.MustCompile(`(?i)([^\n])[\s\p{Zs}]+(Step\s+\d+[:.])`), "${1}\n\n${2}"},
	// "Text ### Header" -> "Text\n\n### Header"
	{"heading", regexp.MustCompile(`([^\n])[\s\p{Zs}]+(#{1,6}\s)`), "${1}\n\n${2}"},
}

// markdownEscapeRegex matches the backslash escapes the HTML converter puts
// in front of literal markdown punctuation.
var markdownEscapeRegex = regexp.MustCompile(`\\([\\*_{}\[\]()#+\-.!|~<>=` + "`" + `])`)

// htmlTagRegex detects repair text that arrived as HTML rather than Markdown.
var htmlTagRegex = regexp.MustCompile(`(?i)<(p|br|ul|ol|li|h[1-6]|div|strong|b|em|section|article|body|html)(\s[^>]*)?/?>`)

// Repair inserts the newlines missing before bullets, steps and headings.
// It never fails and is idempotent.
func Repair(raw string) string {
	text := raw
	for _, rule := range repairRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}
	return text
}

// LooksLikeHTML reports whether text contains HTML markup.
func LooksLikeHTML(text string) bool {
	return htmlTagRegex.MatchString(text)
}

// TextNormalizer repairs repair text, converting HTML to Markdown when needed.
type TextNormalizer struct {
	// ForceHTML converts every input from HTML, even without detected tags.
	ForceHTML bool
}

// New creates a TextNormalizer.
func New() *TextNormalizer {
	return &TextNormalizer{}
}

// Normalize returns the repaired Markdown for raw. Plain text input never
// produces an error; only HTML conversion can fail.
func (n *TextNormalizer) Normalize(raw string) (string, error) {
	text := raw
	if n.ForceHTML || LooksLikeHTML(raw) {
		markdown, err := htmltomarkdown.ConvertString(raw)
		if err != nil {
			return "", fmt.Errorf("converting HTML to markdown: %w", err)
		}
		text = Unescape(markdown)
	}
	return Repair(text), nil
}

// Unescape removes the backslash escapes from converted markdown so that
// "1\. Drain" reads as a numbered item and "2\*3" as plain text again.
func Unescape(markdown string) string {
	return markdownEscapeRegex.ReplaceAllString(markdown, "$1")
}

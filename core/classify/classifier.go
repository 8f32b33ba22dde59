// Package classify maps segmented blocks to their block kind.
//
// Rules are tried in a fixed order and the first match wins:
// heading, bold heading, step, bullet list, numbered list, paragraph.
// Nothing here fails; text that fits no rule becomes a paragraph.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/selffix-ai/repairguide/core"
	"github.com/selffix-ai/repairguide/core/inline"
)

var (
	headingRegex      = regexp.MustCompile(`^(#{1,6})\s`)
	stepRegex         = regexp.MustCompile(`(?i)^Step\s*(\d+)\b[:.]?`)
	bulletLineRegex   = regexp.MustCompile(`^[*-]\s`)
	numberedLineRegex = regexp.MustCompile(`^\d+\.\s`)
)

// All classifies blocks in order.
func All(blocks []string) []core.Block {
	var out []core.Block
	for _, b := range blocks {
		out = append(out, Block(b)...)
	}
	return out
}

// Block classifies a single segmented block. It usually returns one block;
// a leading bold line or leading prose before a list is split off into
// its own block ahead of the rest.
func Block(text string) []core.Block {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if m := headingRegex.FindStringSubmatch(text); m != nil {
		return []core.Block{&core.Heading{
			Level: len(m[1]),
			Text:  inline.Resolve(text[len(m[0]):]),
		}}
	}

	// A bold pair never spans lines; multi-line blocks go through the
	// first-line split below.
	if !strings.Contains(strings.TrimSpace(text), "\n") {
		if inner, ok := boldHeading(text); ok {
			return []core.Block{&core.BoldHeading{Text: inline.Resolve(inner)}}
		}
	}

	if first, rest, ok := strings.Cut(text, "\n"); ok && strings.TrimSpace(rest) != "" {
		if inner, ok := boldHeading(first); ok {
			out := []core.Block{&core.BoldHeading{Text: inline.Resolve(inner)}}
			return append(out, Block(rest)...)
		}
	}

	if m := stepRegex.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return []core.Block{&core.Step{
				Number: n,
				Text:   inline.Resolve(strings.TrimSpace(text[len(m[0]):])),
			}}
		}
	}

	lines := strings.Split(text, "\n")

	if i := firstMatch(lines, bulletLineRegex); i >= 0 {
		// Numbered lines ahead of the first bullet stay in the bullet list.
		if firstMatch(lines[:i], numberedLineRegex) >= 0 {
			i = 0
		}
		return withLead(lines[:i], &core.BulletList{Items: listItems(lines[i:], bulletLineRegex)})
	}

	if i := firstMatch(lines, numberedLineRegex); i >= 0 {
		return withLead(lines[:i], &core.NumberedList{Items: listItems(lines[i:], numberedLineRegex)})
	}

	return []core.Block{paragraph(lines)}
}

// boldHeading reports whether trimmed text is wrapped in "**" pairs with
// something non-blank between them, and returns that inner text.
func boldHeading(text string) (string, bool) {
	t := strings.TrimSpace(text)
	if len(t) < 5 || !strings.HasPrefix(t, "**") || !strings.HasSuffix(t, "**") {
		return "", false
	}
	inner := t[2 : len(t)-2]
	if strings.TrimSpace(inner) == "" {
		return "", false
	}
	return inner, true
}

func firstMatch(lines []string, re *regexp.Regexp) int {
	for i, line := range lines {
		if re.MatchString(line) {
			return i
		}
	}
	return -1
}

// listItems turns every non-blank line into an item, with its list marker
// stripped when present. Continuation lines without a marker are kept as
// items of their own.
func listItems(lines []string, marker *regexp.Regexp) [][]core.Span {
	var items [][]core.Span
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		item := strings.TrimSpace(marker.ReplaceAllString(line, ""))
		items = append(items, inline.Resolve(item))
	}
	return items
}

// withLead classifies the lines that precede a list on their own and puts
// them in front of it. An empty lead adds nothing.
func withLead(lead []string, list core.Block) []core.Block {
	return append(Block(strings.Join(lead, "\n")), list)
}

func paragraph(lines []string) *core.Paragraph {
	p := &core.Paragraph{Lines: make([][]core.Span, 0, len(lines))}
	for _, line := range lines {
		p.Lines = append(p.Lines, inline.Resolve(line))
	}
	return p
}

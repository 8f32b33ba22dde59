// Package segment splits repaired Markdown into paragraph-scale blocks.
// A block ends at any run of two or more newlines; single newlines stay
// inside the block.
package segment

import (
	"regexp"
	"strings"
)

var blankLineRun = regexp.MustCompile(`\n\n+`)

// Split returns the non-blank blocks of text in input order.
// Block text is kept verbatim; blocks that are only whitespace are dropped.
func Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := blankLineRun.Split(text, -1)
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		blocks = append(blocks, p)
	}
	return blocks
}

// Package transcript reads speech-to-text output recorded outside the CLI
// and folds it into the diagnosis description.
package transcript

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/selffix-ai/repairguide/core"
)

const (
	finalPrefix   = "final:"
	interimPrefix = "interim:"
)

// FileSource reads transcript segments from a text file, one per line.
// Lines start with "final:" or "interim:"; unprefixed lines are final.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path. "-" reads standard input.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Segments reads every non-blank line of the file.
func (s *FileSource) Segments(ctx context.Context) ([]core.TranscriptSegment, error) {
	var r io.Reader = os.Stdin
	if s.Path != "-" {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, fmt.Errorf("opening transcript: %w", err)
		}
		defer f.Close()
		r = f
	}
	return Parse(ctx, r)
}

// Parse reads transcript segments from r.
func Parse(ctx context.Context, r io.Reader) ([]core.TranscriptSegment, error) {
	var segments []core.TranscriptSegment
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		seg := core.TranscriptSegment{Text: line, Final: true}
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, finalPrefix):
			seg.Text = strings.TrimSpace(line[len(finalPrefix):])
		case strings.HasPrefix(lower, interimPrefix):
			seg.Text = strings.TrimSpace(line[len(interimPrefix):])
			seg.Final = false
		}
		segments = append(segments, seg)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	return segments, nil
}

// AppendFinal appends the final segments to description, separated by a
// single space. Interim segments are previews and are skipped.
func AppendFinal(description string, segments []core.TranscriptSegment) string {
	for _, seg := range segments {
		if !seg.Final || seg.Text == "" {
			continue
		}
		if description != "" {
			description += " "
		}
		description += seg.Text
	}
	return description
}

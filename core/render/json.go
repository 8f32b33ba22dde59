// Package render: JSON renderer.
// Emits the block sequence with an explicit kind tag on every block, for
// presentation layers that lay the guide out themselves.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/selffix-ai/repairguide/core"
)

// JSONRenderer produces kind-tagged JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// guideJSON is the complete JSON output for one guide.
type guideJSON struct {
	Meta   core.GuideMetadata `json:"meta"`
	Blocks []blockJSON        `json:"blocks"`
}

// blockJSON flattens every block kind into one tagged shape.
type blockJSON struct {
	Kind   core.BlockKind `json:"kind"`
	Level  int            `json:"level,omitempty"`
	Number int            `json:"number,omitempty"`
	Text   []core.Span    `json:"text,omitempty"`
	Items  [][]core.Span  `json:"items,omitempty"`
	Lines  [][]core.Span  `json:"lines,omitempty"`
}

// Render converts the guide into indented JSON.
func (r *JSONRenderer) Render(guide core.Guide) ([]byte, error) {
	out := guideJSON{
		Meta:   guide.Meta,
		Blocks: make([]blockJSON, 0, len(guide.Blocks)),
	}
	for _, b := range guide.Blocks {
		out.Blocks = append(out.Blocks, toBlockJSON(b))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func toBlockJSON(b core.Block) blockJSON {
	out := blockJSON{Kind: b.Kind()}
	switch b := b.(type) {
	case *core.Heading:
		out.Level = b.Level
		out.Text = b.Text
	case *core.BoldHeading:
		out.Text = b.Text
	case *core.Step:
		out.Number = b.Number
		out.Text = b.Text
	case *core.BulletList:
		out.Items = b.Items
	case *core.NumberedList:
		out.Items = b.Items
	case *core.Paragraph:
		out.Lines = b.Lines
	}
	return out
}

// Package guide turns raw repair text into an ordered block sequence.
// It runs the normalize, segment and classify stages in that order.
package guide

import (
	"fmt"

	"github.com/selffix-ai/repairguide/core"
	"github.com/selffix-ai/repairguide/core/classify"
	"github.com/selffix-ai/repairguide/core/normalize"
	"github.com/selffix-ai/repairguide/core/segment"
)

// Parse repairs, segments and classifies plain repair text.
// Empty input yields no blocks.
func Parse(raw string) []core.Block {
	return classify.All(segment.Split(normalize.Repair(raw)))
}

// Build runs raw text through the given normalizer before segmenting and
// classifying it. Use it when the text may need more than the repair pass,
// such as HTML conversion.
func Build(raw string, normalizer core.Normalizer) ([]core.Block, error) {
	markdown, err := normalizer.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return classify.All(segment.Split(markdown)), nil
}

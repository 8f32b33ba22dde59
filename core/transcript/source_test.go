package transcript

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selffix-ai/repairguide/core"
)

func TestParse(t *testing.T) {
	in := "interim: the fridge\nFINAL: the fridge is warm\n\n  plain line  \ninterim:"
	got, err := Parse(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []core.TranscriptSegment{
		{Text: "the fridge", Final: false},
		{Text: "the fridge is warm", Final: true},
		{Text: "plain line", Final: true},
		{Text: "", Final: false},
	}, got)
}

func TestParse_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, strings.NewReader("final: x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice.txt")
	require.NoError(t, os.WriteFile(path, []byte("final: it leaks\n"), 0o644))

	got, err := NewFileSource(path).Segments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.TranscriptSegment{{Text: "it leaks", Final: true}}, got)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.txt")).Segments(context.Background())
	assert.Error(t, err)
}

func TestAppendFinal(t *testing.T) {
	segs := []core.TranscriptSegment{
		{Text: "it", Final: false},
		{Text: "it makes noise", Final: true},
		{Text: "at night", Final: true},
	}
	assert.Equal(t, "Fridge warm it makes noise at night", AppendFinal("Fridge warm", segs))
	assert.Equal(t, "it makes noise at night", AppendFinal("", segs))
	assert.Equal(t, "as typed", AppendFinal("as typed", nil))
}

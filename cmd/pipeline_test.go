package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selffix-ai/repairguide/config"
	"github.com/selffix-ai/repairguide/core"
	"github.com/selffix-ai/repairguide/core/render"
)

func TestOutputOptions_Resolve(t *testing.T) {
	c := config.Default()
	c.Format = config.FormatHTML
	c.OutputDir = "guides"

	got, err := outputOptions{}.resolve(c)
	require.NoError(t, err)
	assert.Equal(t, config.FormatHTML, got.format)
	assert.Equal(t, "guides", got.outputDir)

	got, err = outputOptions{format: config.FormatPDF, outputDir: "out"}.resolve(c)
	require.NoError(t, err)
	assert.Equal(t, config.FormatPDF, got.format)
	assert.Equal(t, "out", got.outputDir)

	_, err = outputOptions{format: "docx"}.resolve(c)
	assert.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestSelectRenderer(t *testing.T) {
	c := config.Default()
	want := map[string]string{
		config.FormatTerminal: ".txt",
		config.FormatMarkdown: ".md",
		config.FormatHTML:     ".html",
		config.FormatJSON:     ".json",
		config.FormatPDF:      ".pdf",
	}
	for format, ext := range want {
		r, err := selectRenderer(format, c)
		require.NoError(t, err, format)
		assert.Equal(t, ext, r.Extension(), format)
	}

	_, err := selectRenderer("rtf", c)
	assert.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestBuildGuide(t *testing.T) {
	g, err := buildGuide("Intro text. Step 1: Unplug it. Step 2: Wait.", false, core.GuideMetadata{Appliance: "Oven"})
	require.NoError(t, err)
	assert.Equal(t, "Oven", g.Meta.Appliance)
	require.Len(t, g.Blocks, 3)
	assert.Equal(t, core.KindParagraph, g.Blocks[0].Kind())
	assert.Equal(t, core.KindStep, g.Blocks[1].Kind())
	assert.Equal(t, core.KindStep, g.Blocks[2].Kind())
}

func TestBuildGuide_HTMLDropsNoise(t *testing.T) {
	raw := `<html><body><nav>Menu</nav><main><h2>Fix</h2><p>Unplug first.</p></main></body></html>`
	g, err := buildGuide(raw, false, core.GuideMetadata{})
	require.NoError(t, err)
	require.Len(t, g.Blocks, 2)
	assert.Equal(t, core.KindHeading, g.Blocks[0].Kind())
	assert.Equal(t, "Unplug first.", core.PlainText(g.Blocks[1].(*core.Paragraph).Lines[0]))
}

func TestBuildGuide_RenderedHTMLRoundTrip(t *testing.T) {
	in := core.Guide{
		Meta: core.GuideMetadata{Appliance: "Oven", Issue: "Igniter"},
		Blocks: []core.Block{
			&core.Step{Number: 2, Text: []core.Span{{Text: "Unplug"}}},
		},
	}
	data, err := render.NewHTMLRenderer().Render(in)
	require.NoError(t, err)

	g, err := buildGuide(string(data), false, core.GuideMetadata{})
	require.NoError(t, err)
	assert.Equal(t, in.Blocks, g.Blocks)
}

func TestEmit_Stdout(t *testing.T) {
	cfg = config.Default()
	g, err := buildGuide("Step 1: Unplug the fridge.", false, core.GuideMetadata{})
	require.NoError(t, err)

	var out bytes.Buffer
	err = emit(g, "guide", outputOptions{format: config.FormatMarkdown, stdout: true}, &out)
	require.NoError(t, err)
	assert.Equal(t, "**Step 1:** Unplug the fridge.\n", out.String())
}

func TestEmit_File(t *testing.T) {
	cfg = config.Default()
	dir := t.TempDir()
	g, err := buildGuide("Step 1: Unplug the fridge.", false, core.GuideMetadata{})
	require.NoError(t, err)

	var out bytes.Buffer
	err = emit(g, "Fridge", outputOptions{format: config.FormatMarkdown, outputDir: dir}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ Written:")

	matches, err := filepath.Glob(filepath.Join(dir, "fridge_*.md"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "**Step 1:** Unplug the fridge.\n", string(data))
}

// runCLI executes the root command with a clean environment and flag state.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	setupCLI(t)
	return execCLI(t, stdin, args...)
}

func setupCLI(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvEndpoint, "http://127.0.0.1:1")
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvTimeout, "5s")
	t.Setenv(config.EnvFormat, config.FormatMarkdown)
	t.Setenv(config.EnvOutputDir, "")
}

func execCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	flagConfig, flagVerbose = "", false
	flagAppliance, flagDescription, flagTranscript, flagImage, flagMock = "", "", "", "", false
	renderOpts, diagnoseOpts = outputOptions{}, outputOptions{}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderCommand_Stdin(t *testing.T) {
	out, err := runCLI(t, "Checks: * Check fan * Check motor", "render", "--stdout")
	require.NoError(t, err)
	assert.Equal(t, "Checks:\n\n- Check fan\n- Check motor\n", out)
}

func TestRenderCommand_FlagOverridesInvalidEnvFormat(t *testing.T) {
	setupCLI(t)
	t.Setenv(config.EnvFormat, "docx")

	out, err := execCLI(t, "Step 1: Unplug", "render", "--stdout", "--format", "markdown")
	require.NoError(t, err)
	assert.Equal(t, "**Step 1:** Unplug\n", out)

	_, err = execCLI(t, "Step 1: Unplug", "render", "--stdout")
	assert.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestRenderCommand_MissingFile(t *testing.T) {
	_, err := runCLI(t, "", "render", "does-not-exist.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiagnoseCommand_Mock(t *testing.T) {
	out, err := runCLI(t, "", "diagnose", "--appliance", "Refrigerator", "--mock", "--stdout")
	require.NoError(t, err)
	assert.Contains(t, out, "# Repair guide: Refrigerator")
	assert.Contains(t, out, "Evaporator Fan Motor Failure (74% confidence)")
	assert.Contains(t, out, "**Step 1:** Unplug refrigerator from power outlet")
	assert.Contains(t, out, "**Step 5:** Reassemble the panel and test for proper operation")
}

func TestDiagnoseCommand_MissingAppliance(t *testing.T) {
	_, err := runCLI(t, "", "diagnose", "--mock", "--stdout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--appliance")
}

func TestBuildRequest_TranscriptAndImage(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := filepath.Join(dir, "voice.txt")
	imagePath := filepath.Join(dir, "door.jpg")
	require.NoError(t, os.WriteFile(transcriptPath, []byte("interim: it is\nfinal: it is noisy\n"), 0o644))
	require.NoError(t, os.WriteFile(imagePath, []byte{0xff, 0xd8}, 0o644))

	flagAppliance, flagDescription = " Dishwasher ", "Door leaks."
	flagTranscript, flagImage = transcriptPath, imagePath
	t.Cleanup(func() {
		flagAppliance, flagDescription, flagTranscript, flagImage = "", "", "", ""
	})

	req, err := buildRequest(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Dishwasher", req.ApplianceType)
	assert.Equal(t, "Door leaks. it is noisy", req.Description)
	require.NotNil(t, req.Image)
	assert.Equal(t, "door.jpg", req.Image.Name)
	assert.Equal(t, []byte{0xff, 0xd8}, req.Image.Data)
}

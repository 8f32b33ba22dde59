// Package cmd: pipeline helpers shared by the render and diagnose commands
// (normalize → segment → classify → render → write).
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/selffix-ai/repairguide/config"
	"github.com/selffix-ai/repairguide/core"
	"github.com/selffix-ai/repairguide/core/extract"
	"github.com/selffix-ai/repairguide/core/guide"
	"github.com/selffix-ai/repairguide/core/normalize"
	"github.com/selffix-ai/repairguide/core/output"
	"github.com/selffix-ai/repairguide/core/render"
)

// outputOptions are the flags both commands share.
type outputOptions struct {
	format    string
	outputDir string
	stdout    bool
	htmlInput bool
}

// resolve fills unset flags from the configuration.
func (o outputOptions) resolve(c config.Config) (outputOptions, error) {
	if o.format == "" {
		o.format = c.Format
	}
	if o.outputDir == "" {
		o.outputDir = c.OutputDir
	}
	effective := c
	effective.Format = o.format
	if err := effective.Validate(); err != nil {
		return o, err
	}
	return o, nil
}

// selectRenderer creates the Renderer for a format.
func selectRenderer(format string, c config.Config) (core.Renderer, error) {
	switch format {
	case config.FormatTerminal:
		return render.NewTerminalRenderer(c.Terminal.Style, c.Terminal.WordWrap), nil
	case config.FormatMarkdown:
		return render.NewMarkdownRenderer(), nil
	case config.FormatHTML:
		return render.NewHTMLRenderer(), nil
	case config.FormatJSON:
		return render.NewJSONRenderer(), nil
	case config.FormatPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrInvalidFormat, format)
	}
}

// buildGuide turns raw repair text into blocks. HTML input is cleaned of
// noise before it is converted and repaired.
func buildGuide(raw string, forceHTML bool, meta core.GuideMetadata) (core.Guide, error) {
	isHTML := forceHTML || normalize.LooksLikeHTML(raw)
	if isHTML {
		cleaned, err := extract.New().Extract(raw)
		if err != nil {
			return core.Guide{}, fmt.Errorf("extract: %w", err)
		}
		raw = cleaned
	}

	normalizer := normalize.New()
	normalizer.ForceHTML = isHTML
	blocks, err := guide.Build(raw, normalizer)
	if err != nil {
		return core.Guide{}, err
	}

	logger.Debug("Guide parsed", zap.Bool("html", isHTML), zap.Int("blocks", len(blocks)))
	return core.Guide{Meta: meta, Blocks: blocks}, nil
}

// emit renders the guide and writes it to stdout or a file named after label.
func emit(g core.Guide, label string, opts outputOptions, stdout io.Writer) error {
	renderer, err := selectRenderer(opts.format, cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	data, err := renderer.Render(g)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logger.Debug("Guide rendered",
		zap.String("format", opts.format),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	// Terminal output is meant to be read, not stored.
	if opts.stdout || opts.format == config.FormatTerminal {
		_, err := stdout.Write(data)
		return err
	}

	writer, err := output.New(opts.outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(label, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "✓ Written: %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
	return nil
}

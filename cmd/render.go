// Package cmd: render command.
// Formats repair text that was saved from a diagnosis (or typed by hand)
// without calling the diagnosis service.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/selffix-ai/repairguide/core"
)

var renderOpts outputOptions

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Format repair text from a file or stdin",
	Long: `Render reads loosely formatted repair text, repairs its missing line
breaks, classifies it into headings, steps and lists, and renders it.

Reads standard input when no file is given or the file is "-".

Examples:
  selffix render steps.txt
  selffix render steps.txt --format html --output_dir ./out
  curl -s .../api/diagnose | jq -r .response | selffix render --format markdown --stdout`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addOutputFlags(renderCmd, &renderOpts)
}

// addOutputFlags registers the output flags shared by commands.
func addOutputFlags(c *cobra.Command, opts *outputOptions) {
	c.Flags().StringVar(&opts.format, "format", "", "Output format: terminal, markdown, html, json or pdf (default from config)")
	c.Flags().StringVar(&opts.outputDir, "output_dir", "", "Output directory (default: current directory)")
	c.Flags().BoolVar(&opts.stdout, "stdout", false, "Write to stdout instead of a file")
	c.Flags().BoolVar(&opts.htmlInput, "html-input", false, "Treat the repair text as HTML")
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := renderOpts.resolve(cfg)
	if err != nil {
		return err
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	raw, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	logger.Debug("Repair text read", zap.String("path", path), zap.Int("bytes", len(raw)))

	g, err := buildGuide(raw, opts.htmlInput, core.GuideMetadata{})
	if err != nil {
		return err
	}
	return emit(g, "guide", opts, cmd.OutOrStdout())
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Package cmd: diagnose command.
// Builds a diagnosis request from flags, voice transcript and photo, asks
// the Diagnosis Service, and renders the returned repair steps.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/selffix-ai/repairguide/core"
	"github.com/selffix-ai/repairguide/core/diagnose"
	"github.com/selffix-ai/repairguide/core/transcript"
)

// Flag variables.
var (
	flagAppliance   string
	flagDescription string
	flagTranscript  string
	flagImage       string
	flagMock        bool
	diagnoseOpts    outputOptions
)

// newDiagnoser is swapped out in tests.
var newDiagnoser = func() core.Diagnoser {
	if flagMock {
		return diagnose.NewMock()
	}
	return diagnose.New(cfg.Endpoint,
		diagnose.WithAPIKey(cfg.APIKey),
		diagnose.WithTimeout(cfg.Timeout),
		diagnose.WithLogger(logger))
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Diagnose an appliance fault and render the repair guide",
	Long: `Diagnose sends the appliance type, a description of the fault and an
optional photo to the diagnosis service, then renders the repair guide it
returns.

A voice transcript file can extend the description: each line is
"final: <text>" or "interim: <text>", and final segments are appended.

Examples:
  selffix diagnose --appliance Refrigerator --description "not cooling, fan noisy"
  selffix diagnose --appliance Dishwasher --transcript voice.txt --image door.jpg --format pdf
  selffix diagnose --appliance Refrigerator --mock --format html --stdout`,
	Args: cobra.NoArgs,
	RunE: runDiagnose,
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)

	diagnoseCmd.Flags().StringVar(&flagAppliance, "appliance", "", "Appliance type, e.g. Refrigerator (required)")
	diagnoseCmd.Flags().StringVar(&flagDescription, "description", "", "Free-text description of the fault")
	diagnoseCmd.Flags().StringVar(&flagTranscript, "transcript", "", "Speech-to-text transcript file to append to the description")
	diagnoseCmd.Flags().StringVar(&flagImage, "image", "", "Photo of the appliance or fault")
	diagnoseCmd.Flags().BoolVar(&flagMock, "mock", false, "Use the built-in sample diagnosis instead of the service")
	addOutputFlags(diagnoseCmd, &diagnoseOpts)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	opts, err := diagnoseOpts.resolve(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return err
	}

	logger.Info("Diagnosing", zap.String("appliance", req.ApplianceType), zap.Bool("mock", flagMock))
	result, err := newDiagnoser().Diagnose(ctx, req)
	if err != nil {
		if errors.Is(err, diagnose.ErrMissingAppliance) {
			return fmt.Errorf("%w (use --appliance)", err)
		}
		return fmt.Errorf("diagnose: %w", err)
	}

	meta := result.Metadata(req.ApplianceType, time.Now())
	g, err := buildGuide(result.RepairText(), opts.htmlInput, meta)
	if err != nil {
		return err
	}
	return emit(g, req.ApplianceType, opts, cmd.OutOrStdout())
}

// buildRequest assembles the request from flags, transcript and image.
func buildRequest(ctx context.Context) (core.DiagnosisRequest, error) {
	req := core.DiagnosisRequest{
		ApplianceType: strings.TrimSpace(flagAppliance),
		Description:   strings.TrimSpace(flagDescription),
	}

	if flagTranscript != "" {
		var src core.TranscriptSource = transcript.NewFileSource(flagTranscript)
		segments, err := src.Segments(ctx)
		if err != nil {
			return req, err
		}
		req.Description = transcript.AppendFinal(req.Description, segments)
	}

	if flagImage != "" {
		data, err := os.ReadFile(flagImage)
		if err != nil {
			return req, fmt.Errorf("reading image: %w", err)
		}
		req.Image = &core.Attachment{Name: filepath.Base(flagImage), Data: data}
	}
	return req, nil
}

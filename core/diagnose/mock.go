package diagnose

import (
	"context"

	"github.com/selffix-ai/repairguide/core"
)

// MockDiagnoser answers every request with the same refrigerator diagnosis.
// It lets the CLI run without a Diagnosis Service.
type MockDiagnoser struct{}

// NewMock creates a MockDiagnoser.
func NewMock() *MockDiagnoser {
	return &MockDiagnoser{}
}

// Diagnose returns the fixed payload once the request is valid.
func (m *MockDiagnoser) Diagnose(ctx context.Context, req core.DiagnosisRequest) (*core.DiagnosisResult, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &core.DiagnosisResult{
		Diagnosis: &core.Diagnosis{
			MostLikelyIssue:   "Evaporator Fan Motor Failure",
			ConfidencePercent: 74,
			Severity:          "High",
		},
		CostAnalysis: &core.CostAnalysis{
			EstimatedRepairCost:      40,
			EstimatedReplacementCost: 900,
			EstimatedSavings:         860,
		},
		EnvironmentalImpact: &core.EnvironmentalImpact{CarbonSavedKg: 390},
		RepairDetails: &core.RepairDetails{
			DifficultyLevel: "Moderate",
			ToolsRequired:   []string{"Screwdriver", "Replacement fan motor"},
			Steps: []string{
				"Unplug refrigerator from power outlet",
				"Remove the rear access panel (usually 4-6 screws)",
				"Disconnect the faulty fan motor from the housing",
				"Install the new fan motor in the same position",
				"Reassemble the panel and test for proper operation",
			},
			SafetyWarning: "Always unplug before servicing. Do not attempt if you're not comfortable with basic mechanical tasks.",
		},
	}, nil
}

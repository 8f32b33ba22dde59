package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRepairText_PrefersResponse(t *testing.T) {
	r := &DiagnosisResult{
		Response:      "Step 1: Unplug",
		RepairDetails: &RepairDetails{Steps: []string{"ignored"}},
	}
	assert.Equal(t, "Step 1: Unplug", r.RepairText())
}

func TestRepairText_FromDetails(t *testing.T) {
	r := &DiagnosisResult{
		Response: "   ",
		RepairDetails: &RepairDetails{
			ToolsRequired: []string{"Screwdriver", "Pliers"},
			Steps:         []string{" Unplug ", "Open panel"},
			SafetyWarning: "Capacitors hold charge.",
		},
	}
	want := "**Tools Required**\nScrewdriver\nPliers\n\n" +
		"Step 1: Unplug\n\n" +
		"Step 2: Open panel\n\n" +
		"Warning: Capacitors hold charge."
	assert.Equal(t, want, r.RepairText())
}

func TestRepairText_Empty(t *testing.T) {
	var nilResult *DiagnosisResult
	assert.Equal(t, "", nilResult.RepairText())
	assert.Equal(t, "", (&DiagnosisResult{}).RepairText())
	assert.Equal(t, "", (&DiagnosisResult{RepairDetails: &RepairDetails{}}).RepairText())
}

func TestMetadata(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	r := &DiagnosisResult{
		Diagnosis:           &Diagnosis{MostLikelyIssue: "Fan", ConfidencePercent: 74, Severity: "High"},
		CostAnalysis:        &CostAnalysis{EstimatedRepairCost: 40, EstimatedReplacementCost: 900, EstimatedSavings: 860},
		EnvironmentalImpact: &EnvironmentalImpact{CarbonSavedKg: 390},
		RepairDetails:       &RepairDetails{DifficultyLevel: "Moderate"},
	}

	meta := r.Metadata("Refrigerator", now)
	assert.Equal(t, GuideMetadata{
		Appliance:       "Refrigerator",
		Issue:           "Fan",
		Severity:        "High",
		Confidence:      74,
		RepairCost:      40,
		ReplacementCost: 900,
		Savings:         860,
		CarbonSavedKg:   390,
		Difficulty:      "Moderate",
		GeneratedAt:     "2026-03-01T11:00:00Z",
	}, meta)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "a b c", PlainText([]Span{{Text: "a "}, {Text: "b", Strong: true}, {Text: " c"}}))
	assert.Equal(t, "", PlainText(nil))
}

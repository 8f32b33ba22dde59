package core

import (
	"fmt"
	"strings"
	"time"
)

// RepairText returns the repair-steps text blob of the result.
// The free-text response wins; otherwise the text is assembled from the
// structured repair details in the same loose markdown the AI emits.
func (r *DiagnosisResult) RepairText() string {
	if r == nil {
		return ""
	}
	if strings.TrimSpace(r.Response) != "" {
		return r.Response
	}
	d := r.RepairDetails
	if d == nil {
		return ""
	}

	var parts []string
	if len(d.ToolsRequired) > 0 {
		parts = append(parts, "**Tools Required**\n"+strings.Join(d.ToolsRequired, "\n"))
	}
	for i, step := range d.Steps {
		parts = append(parts, fmt.Sprintf("Step %d: %s", i+1, strings.TrimSpace(step)))
	}
	if w := strings.TrimSpace(d.SafetyWarning); w != "" {
		parts = append(parts, "Warning: "+w)
	}
	return strings.Join(parts, "\n\n")
}

// Metadata builds the GuideMetadata for an appliance diagnosis.
func (r *DiagnosisResult) Metadata(appliance string, now time.Time) GuideMetadata {
	meta := GuideMetadata{
		Appliance:   appliance,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
	if r == nil {
		return meta
	}
	if d := r.Diagnosis; d != nil {
		meta.Issue = d.MostLikelyIssue
		meta.Severity = d.Severity
		meta.Confidence = d.ConfidencePercent
	}
	if c := r.CostAnalysis; c != nil {
		meta.RepairCost = c.EstimatedRepairCost
		meta.ReplacementCost = c.EstimatedReplacementCost
		meta.Savings = c.EstimatedSavings
	}
	if e := r.EnvironmentalImpact; e != nil {
		meta.CarbonSavedKg = e.CarbonSavedKg
	}
	if rd := r.RepairDetails; rd != nil {
		meta.Difficulty = rd.DifficultyLevel
	}
	return meta
}

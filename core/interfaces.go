// Package core defines the pipeline types and interfaces for SelfFix.
// Each stage of the repair-guide pipeline is a clean, testable interface.
package core

import "context"

// Attachment is an optional photo sent along with a diagnosis request.
type Attachment struct {
	Name string
	Data []byte
}

// DiagnosisRequest is what the user describes about a faulty appliance.
type DiagnosisRequest struct {
	ApplianceType string
	Description   string
	Image         *Attachment
}

// Diagnosis is the summary part of a DiagnosisResult.
type Diagnosis struct {
	MostLikelyIssue   string `json:"most_likely_issue"`
	ConfidencePercent int    `json:"confidence_percent"`
	Severity          string `json:"severity"`
}

// CostAnalysis holds the repair versus replacement estimate.
type CostAnalysis struct {
	EstimatedRepairCost      float64 `json:"estimated_repair_cost"`
	EstimatedReplacementCost float64 `json:"estimated_replacement_cost"`
	EstimatedSavings         float64 `json:"estimated_savings"`
}

// EnvironmentalImpact holds the environmental estimate of repairing.
type EnvironmentalImpact struct {
	CarbonSavedKg float64 `json:"carbon_saved_kg"`
}

// RepairDetails is the structured repair guide some backends return
// instead of (or next to) a free-text response.
type RepairDetails struct {
	DifficultyLevel string   `json:"difficulty_level"`
	ToolsRequired   []string `json:"tools_required"`
	Steps           []string `json:"steps"`
	SafetyWarning   string   `json:"safety_warning"`
}

// DiagnosisResult is the payload returned by the Diagnosis Service.
// Every section is optional.
type DiagnosisResult struct {
	Response            string               `json:"response,omitempty"`
	Diagnosis           *Diagnosis           `json:"diagnosis,omitempty"`
	CostAnalysis        *CostAnalysis        `json:"cost_analysis,omitempty"`
	EnvironmentalImpact *EnvironmentalImpact `json:"environmental_impact,omitempty"`
	RepairDetails       *RepairDetails       `json:"repair_details,omitempty"`
}

// TranscriptSegment is one piece of speech-to-text output.
type TranscriptSegment struct {
	Text  string
	Final bool
}

// GuideMetadata describes the diagnosis a guide was rendered for.
// All fields are optional; renderers skip what is empty.
type GuideMetadata struct {
	Appliance       string  `json:"appliance,omitempty"`
	Issue           string  `json:"issue,omitempty"`
	Severity        string  `json:"severity,omitempty"`
	Confidence      int     `json:"confidence_percent,omitempty"`
	RepairCost      float64 `json:"repair_cost,omitempty"`
	ReplacementCost float64 `json:"replacement_cost,omitempty"`
	Savings         float64 `json:"savings,omitempty"`
	CarbonSavedKg   float64 `json:"carbon_saved_kg,omitempty"`
	Difficulty      string  `json:"difficulty,omitempty"`
	GeneratedAt     string  `json:"generated_at,omitempty"` // ISO8601
}

// Guide is a parsed repair guide ready for presentation.
type Guide struct {
	Meta   GuideMetadata
	Blocks []Block
}

// Diagnoser asks the Diagnosis Service about an appliance fault.
type Diagnoser interface {
	Diagnose(ctx context.Context, req DiagnosisRequest) (*DiagnosisResult, error)
}

// TranscriptSource yields speech-to-text segments for the description field.
type TranscriptSource interface {
	Segments(ctx context.Context) ([]TranscriptSegment, error)
}

// Extractor pulls the main content from HTML repair text, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer turns raw repair text into newline-repaired markdown.
type Normalizer interface {
	Normalize(raw string) (string, error)
}

// Renderer converts a Guide into a final output format.
type Renderer interface {
	Render(guide Guide) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

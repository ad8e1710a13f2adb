package domain

import (
	"strings"
	"time"
)

// Analysis sources
const (
	SourceOCR   = "OCR"   // text freshly extracted from the image
	SourceCache = "Cache" // extracted text served from cache
	SourceText  = "Text"  // caller supplied the text directly
)

// Finding levels
const (
	LevelWarning = "warning"
	LevelInfo    = "info"
	LevelOK      = "ok"
)

// Finding categories
const (
	CategoryAllergens     = "allergens"
	CategoryNonVegan      = "nonVegan"
	CategoryPreservatives = "preservatives"
)

// ClassificationResult holds the keywords matched in each category, in the
// declaration order of the keyword tables. Empty slices mean "none found".
type ClassificationResult struct {
	Allergens     []string `json:"allergens"`
	NonVegan      []string `json:"nonVegan"`
	Preservatives []string `json:"preservatives"`
}

// Finding is a per-category verdict meant for display
type Finding struct {
	Category string `json:"category"`
	Level    string `json:"level"`
	Message  string `json:"message"`
}

// LabelAnalysis is the full result of analyzing one food label
type LabelAnalysis struct {
	ExtractedText    string           `json:"extractedText"`
	Nutrition        NutritionInfo    `json:"nutrition"`
	NutritionEntries []NutritionEntry `json:"nutritionEntries"`
	ClassificationResult
	Findings   []Finding `json:"findings"`
	Source     string    `json:"source"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

// AnalyzeTextRequest is the body of a text-only analysis request.
// Text is a pointer so that an explicit empty string is accepted.
type AnalyzeTextRequest struct {
	Text *string `json:"text" binding:"required"`
}

// PreservativeKeyword is a canonical preservative name and its aliases
type PreservativeKeyword struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// KeywordTables lists every keyword the classifier looks for
type KeywordTables struct {
	Allergens     []string              `json:"allergens"`
	NonVegan      []string              `json:"nonVegan"`
	Preservatives []PreservativeKeyword `json:"preservatives"`
}

// BuildFindings turns a classification result into one finding per category.
func BuildFindings(result ClassificationResult) []Finding {
	findings := make([]Finding, 0, 3)

	if len(result.Allergens) > 0 {
		findings = append(findings, Finding{
			Category: CategoryAllergens,
			Level:    LevelWarning,
			Message:  "Allergens Found: " + strings.Join(result.Allergens, ", "),
		})
	} else {
		findings = append(findings, Finding{
			Category: CategoryAllergens,
			Level:    LevelOK,
			Message:  "No common allergens detected.",
		})
	}

	if len(result.NonVegan) > 0 {
		findings = append(findings, Finding{
			Category: CategoryNonVegan,
			Level:    LevelWarning,
			Message:  "Non-Vegan Ingredients Found: " + strings.Join(result.NonVegan, ", "),
		})
	} else {
		findings = append(findings, Finding{
			Category: CategoryNonVegan,
			Level:    LevelOK,
			Message:  "This product appears to be vegan.",
		})
	}

	if len(result.Preservatives) > 0 {
		findings = append(findings, Finding{
			Category: CategoryPreservatives,
			Level:    LevelInfo,
			Message:  "Preservatives Detected: " + strings.Join(result.Preservatives, ", "),
		})
	} else {
		findings = append(findings, Finding{
			Category: CategoryPreservatives,
			Level:    LevelOK,
			Message:  "No common preservatives detected.",
		})
	}

	return findings
}

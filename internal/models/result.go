package models

import "time"

// SectionScores is the per-section score breakdown shown to the caller.
// Skills, experience, and projects are rescaled to the total; role alignment
// is shown unscaled.
type SectionScores struct {
	Skills        int `json:"skills"`
	Experience    int `json:"experience"`
	Projects      int `json:"projects"`
	RoleAlignment int `json:"roleAlignment"`
}

// AnalysisResult is the externally-visible analysis outcome. The JSON shape
// is shared by the deterministic scorer and the LLM-backed strategy, so the
// UI consumes both interchangeably. Immutable once returned.
type AnalysisResult struct {
	ATSScore               int           `json:"atsScore"`
	RequiredKeywords       []string      `json:"requiredKeywords"`
	MatchedKeywords        []string      `json:"matchedKeywords"`
	MissingKeywords        []string      `json:"missingKeywords"`
	WeakKeywords           []string      `json:"weakKeywords"`
	SectionScores          SectionScores `json:"sectionScores"`
	ImprovementSuggestions []string      `json:"improvementSuggestions"`
	// OptimizedBullets is empty for the deterministic strategy.
	OptimizedBullets []string `json:"optimizedBullets"`
}

// AnalysisRecord is a stored analysis: the result plus identity and version
// linkage metadata consumed by the history store.
type AnalysisRecord struct {
	ID         string `json:"id"`
	ResumeName string `json:"resume_name"`
	// PreviousID links a re-analysis to the prior record, empty otherwise.
	PreviousID string         `json:"previous_id,omitempty"`
	Result     AnalysisResult `json:"result"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Package assemble maps scorer output into the stable external response
// contract, including the deterministic improvement suggestions. It is the
// reference implementation of the contract the LLM-backed strategy must also
// satisfy.
package assemble

import (
	"context"
	"fmt"
	"strings"

	"github.com/resumelens/resumelens/internal/keywords"
	"github.com/resumelens/resumelens/internal/models"
	"github.com/resumelens/resumelens/internal/scoring"
)

// suggestionKeywordCount is how many missing keywords the first suggestion
// names.
const suggestionKeywordCount = 3

// Assemble converts a scorer result into the external AnalysisResult.
// Suggestion generation is rule-based and deterministic; no generative text
// is involved, so the optimizedBullets field stays empty.
func Assemble(r *scoring.Result) *models.AnalysisResult {
	return &models.AnalysisResult{
		ATSScore:               r.Total,
		RequiredKeywords:       nonNil(r.Required),
		MatchedKeywords:        nonNil(r.Matched),
		MissingKeywords:        nonNil(r.Missing),
		WeakKeywords:           nonNil(r.Weak),
		SectionScores:          r.Scores,
		ImprovementSuggestions: suggestions(r),
		OptimizedBullets:       []string{},
	}
}

func suggestions(r *scoring.Result) []string {
	var out []string
	if len(r.Missing) > 0 {
		top := r.Missing
		if len(top) > suggestionKeywordCount {
			top = top[:suggestionKeywordCount]
		}
		out = append(out, fmt.Sprintf("Add the missing keywords %q to the relevant sections of your resume.", strings.Join(top, ", ")))
	}
	if !r.SectionPresent(scoring.SectionExperience) {
		out = append(out, "Strengthen your experience section with a clear heading and measurable accomplishments.")
	}
	if !r.SectionPresent(scoring.SectionProjects) {
		out = append(out, "Add a projects section showcasing relevant hands-on work.")
	}
	out = append(out, "Place your contact information prominently at the top of your resume.")
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Heuristic is the deterministic scoring strategy: keyword extraction,
// scoring, and assembly in one call. Stateless apart from its weights.
type Heuristic struct {
	scorer *scoring.Scorer
}

// NewHeuristic returns the deterministic strategy with the given weights.
func NewHeuristic(w scoring.Weights) *Heuristic {
	return &Heuristic{scorer: scoring.NewScorer(w)}
}

// Name implements scoring.Strategy.
func (h *Heuristic) Name() string { return "heuristic" }

// Analyze implements scoring.Strategy. It never fails: scoring operates
// purely on in-memory strings and falls back to neutral defaults for empty
// keyword sets.
func (h *Heuristic) Analyze(_ context.Context, normalizedResume, jobDescription string) (*models.AnalysisResult, error) {
	kws := keywords.Extract(jobDescription)
	return Assemble(h.scorer.Score(normalizedResume, kws)), nil
}

package scoring

import (
	"context"

	"github.com/resumelens/resumelens/internal/models"
)

// Strategy produces an AnalysisResult for a resume/job-description pair.
// Two variants share this contract: the deterministic heuristic and the
// LLM-backed analyzer. Callers select a strategy at startup instead of
// branching through the pipeline.
type Strategy interface {
	// Name identifies the strategy in logs and stored history.
	Name() string
	// Analyze scores normalized resume text against a job description.
	Analyze(ctx context.Context, normalizedResume, jobDescription string) (*models.AnalysisResult, error)
}

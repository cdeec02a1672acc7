package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const validResponse = `{
	"atsScore": 72,
	"requiredKeywords": ["python", "docker", "kubernetes"],
	"matchedKeywords": ["python", "docker"],
	"missingKeywords": ["kubernetes"],
	"weakKeywords": ["kubernetes"],
	"sectionScores": {"skills": 25, "experience": 18, "projects": 12, "roleAlignment": 5},
	"improvementSuggestions": ["Add Kubernetes experience to your skills section."],
	"optimizedBullets": ["Deployed Python services to Kubernetes clusters via Docker."]
}`

func TestStrategyAnalyze(t *testing.T) {
	stub := &stubGenerator{response: validResponse}
	strategy := NewStrategy(stub, zap.NewNop(), 0)

	if got := strategy.Name(); got != "gemini" {
		t.Fatalf("Name() = %q", got)
	}

	result, err := strategy.Analyze(context.Background(), "EXPERIENCE\n- Built Python services", "Python, Docker and Kubernetes.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ATSScore != 72 {
		t.Errorf("atsScore = %d, want 72", result.ATSScore)
	}
	if len(result.MatchedKeywords) != 2 {
		t.Errorf("matched = %v, want 2 terms", result.MatchedKeywords)
	}
	if result.SectionScores.Skills != 25 {
		t.Errorf("skills = %d, want 25", result.SectionScores.Skills)
	}
	if len(result.OptimizedBullets) != 1 {
		t.Errorf("optimizedBullets = %v, want 1 entry", result.OptimizedBullets)
	}

	if !strings.Contains(stub.lastPrompt, "Built Python services") {
		t.Error("prompt does not include the resume text")
	}
	if !strings.Contains(stub.lastPrompt, "Python, Docker and Kubernetes.") {
		t.Error("prompt does not include the job description")
	}
}

func TestStrategyAnalyze_fencedResponse(t *testing.T) {
	stub := &stubGenerator{response: "```json\n" + validResponse + "\n```"}
	strategy := NewStrategy(stub, zap.NewNop(), 0)

	result, err := strategy.Analyze(context.Background(), "resume", "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ATSScore != 72 {
		t.Errorf("atsScore = %d, want 72", result.ATSScore)
	}
}

func TestStrategyAnalyze_clampsScore(t *testing.T) {
	stub := &stubGenerator{response: `{"atsScore": 140}`}
	strategy := NewStrategy(stub, zap.NewNop(), 0)

	result, err := strategy.Analyze(context.Background(), "resume", "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ATSScore != 100 {
		t.Errorf("atsScore = %d, want clamped to 100", result.ATSScore)
	}
	if result.MatchedKeywords == nil || result.OptimizedBullets == nil {
		t.Error("omitted slice fields should be non-nil after parsing")
	}
}

func TestStrategyAnalyze_malformedResponse(t *testing.T) {
	stub := &stubGenerator{response: "I think this resume is great!"}
	strategy := NewStrategy(stub, zap.NewNop(), 0)

	if _, err := strategy.Analyze(context.Background(), "resume", "jd"); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestStrategyAnalyze_generatorError(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	stub := &stubGenerator{err: wantErr}
	strategy := NewStrategy(stub, zap.NewNop(), 0)

	if _, err := strategy.Analyze(context.Background(), "resume", "jd"); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/resumelens/resumelens/internal/models"
	"github.com/resumelens/resumelens/pkg/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Strategy sends the resume and job description to Gemini and parses the
// model's JSON reply into the shared analysis contract. It implements
// scoring.Strategy.
type Strategy struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewStrategy returns the LLM-backed strategy. maxLogLength caps prompt and
// response previews in debug logs.
func NewStrategy(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Strategy {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Strategy{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Name implements scoring.Strategy.
func (s *Strategy) Name() string { return "gemini" }

// Analyze implements scoring.Strategy. The model's reply must be a single
// JSON object matching the response contract; anything else is an error.
func (s *Strategy) Analyze(ctx context.Context, normalizedResume, jobDescription string) (*models.AnalysisResult, error) {
	prompt := buildPrompt(normalizedResume, jobDescription)

	s.logger.Debug("gemini analysis request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.Truncate(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini analysis response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.Truncate(raw, s.maxLogLen)),
	)

	result, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func buildPrompt(resume, jobDescription string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Resume:\n{{RESUME}}\n\nJob description:\n{{JOB_DESCRIPTION}}\n\nJSON response:"
	}
	prompt := strings.ReplaceAll(template, "{{RESUME}}", resume)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)
	return prompt
}

func parseResponse(raw string) (*models.AnalysisResult, error) {
	cleaned := extractJSON(raw)

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if result.ATSScore < 0 {
		result.ATSScore = 0
	}
	if result.ATSScore > 100 {
		result.ATSScore = 100
	}

	result.RequiredKeywords = nonNil(result.RequiredKeywords)
	result.MatchedKeywords = nonNil(result.MatchedKeywords)
	result.MissingKeywords = nonNil(result.MissingKeywords)
	result.WeakKeywords = nonNil(result.WeakKeywords)
	result.ImprovementSuggestions = nonNil(result.ImprovementSuggestions)
	result.OptimizedBullets = nonNil(result.OptimizedBullets)

	return &result, nil
}

// extractJSON strips markdown code fences models sometimes wrap JSON in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

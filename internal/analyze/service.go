// Package analyze orchestrates the analysis pipeline: extraction,
// normalization, scoring, and history persistence. The HTTP handlers, the
// batch watcher, and the CLI all run analyses through this service.
package analyze

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resumelens/resumelens/internal/extract"
	"github.com/resumelens/resumelens/internal/models"
	"github.com/resumelens/resumelens/internal/normalize"
	"github.com/resumelens/resumelens/internal/scoring"
	"github.com/resumelens/resumelens/internal/storage"
)

// Service runs analyses and records them in history. Store may be nil, in
// which case results are returned but not persisted.
type Service struct {
	extractor *extract.Extractor
	strategy  scoring.Strategy
	store     storage.Storage
	logger    *zap.Logger
}

// NewService creates a Service with the given dependencies.
func NewService(extractor *extract.Extractor, strategy scoring.Strategy, store storage.Storage, logger *zap.Logger) *Service {
	return &Service{
		extractor: extractor,
		strategy:  strategy,
		store:     store,
		logger:    logger,
	}
}

// Strategy returns the configured scoring strategy.
func (s *Service) Strategy() scoring.Strategy { return s.strategy }

// AnalyzeText validates, normalizes, and scores resume text against a job
// description. PreviousID on the stored record comes from req.ResumeID so
// callers can chain re-analyses.
func (s *Service) AnalyzeText(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalysisRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	normalized := normalize.Normalize(req.ResumeText)

	result, err := s.strategy.Analyze(ctx, normalized, req.JobDescription)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	rec := &models.AnalysisRecord{
		ID:         uuid.NewString(),
		ResumeName: "pasted-text",
		PreviousID: req.ResumeID,
		Result:     *result,
	}
	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("analysis complete",
		zap.String("id", rec.ID),
		zap.String("strategy", s.strategy.Name()),
		zap.Int("ats_score", result.ATSScore),
	)
	return rec, nil
}

// AnalyzeFile extracts text from an uploaded document and analyzes it. The
// stored record links to the most recent prior analysis of the same file
// name, so repeated drops of an updated resume form a version chain.
func (s *Service) AnalyzeFile(ctx context.Context, name string, content []byte, jobDescription string) (*models.AnalysisRecord, error) {
	if err := models.ValidateJobDescription(jobDescription); err != nil {
		return nil, err
	}

	format, ok := models.FormatFromExtension(filepath.Ext(name))
	if !ok {
		return nil, fmt.Errorf("%w: %s", extract.ErrUnsupportedFormat, filepath.Ext(name))
	}

	extracted, err := s.extractor.Extract(ctx, models.SourceDocument{
		Name:    name,
		Format:  format,
		Content: content,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("extracted document",
		zap.String("name", name),
		zap.String("format", string(format)),
		zap.Int("chars", extracted.CharCount),
		zap.Int("words", extracted.WordCount),
	)

	req := &models.AnalyzeRequest{
		ResumeText:     extracted.Text,
		JobDescription: jobDescription,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	normalized := normalize.Normalize(extracted.Text)

	result, err := s.strategy.Analyze(ctx, normalized, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	rec := &models.AnalysisRecord{
		ID:         uuid.NewString(),
		ResumeName: filepath.Base(name),
		PreviousID: s.latestAnalysisID(ctx, filepath.Base(name)),
		Result:     *result,
	}
	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("analysis complete",
		zap.String("id", rec.ID),
		zap.String("resume", rec.ResumeName),
		zap.String("strategy", s.strategy.Name()),
		zap.Int("ats_score", result.ATSScore),
	)
	return rec, nil
}

func (s *Service) save(ctx context.Context, rec *models.AnalysisRecord) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.SaveAnalysis(ctx, rec); err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

func (s *Service) latestAnalysisID(ctx context.Context, name string) string {
	if s.store == nil {
		return ""
	}
	prior, err := s.store.ListByResumeName(ctx, name)
	if err != nil || len(prior) == 0 {
		return ""
	}
	return prior[0].ID
}

// Package storage defines the persistence interface for analysis history.
package storage

import (
	"context"
	"errors"

	"github.com/resumelens/resumelens/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Storage defines analysis history persistence operations.
type Storage interface {
	SaveAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (*models.AnalysisRecord, error)
	ListAnalyses(ctx context.Context, offset, limit int) ([]*models.AnalysisRecord, error)
	// ListByResumeName returns all analyses for a resume, newest first. Used
	// to chain re-analyses of the same document.
	ListByResumeName(ctx context.Context, name string) ([]*models.AnalysisRecord, error)
	DeleteAnalysis(ctx context.Context, id string) error
	CountAnalyses(ctx context.Context) (int64, error)

	Close() error
}

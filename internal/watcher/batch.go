package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/resumelens/resumelens/internal/analyze"
	"github.com/resumelens/resumelens/internal/models"
)

// BatchResult pairs one analyzed file with its outcome. Exactly one of
// Record and Err is set.
type BatchResult struct {
	Path   string
	Record *models.AnalysisRecord
	Err    error
}

// Runner fans resume files out to the analysis service on a bounded worker
// pool. Each file is analyzed independently; one corrupt document does not
// stop the batch.
type Runner struct {
	service        *analyze.Service
	jobDescription string
	workers        int
	logger         *zap.Logger
}

// NewRunner creates a Runner. workers <= 0 means one worker.
func NewRunner(service *analyze.Service, jobDescription string, workers int, logger *zap.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		service:        service,
		jobDescription: jobDescription,
		workers:        workers,
		logger:         logger,
	}
}

// AnalyzeOne reads and analyzes a single file. Used as the watch callback.
func (r *Runner) AnalyzeOne(ctx context.Context, path string) (*models.AnalysisRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return r.service.AnalyzeFile(ctx, path, content, r.jobDescription)
}

// AnalyzePaths analyzes the given files concurrently and returns results
// ranked by score, failures last.
func (r *Runner) AnalyzePaths(ctx context.Context, paths []string) []BatchResult {
	jobs := make(chan int)
	results := make([]BatchResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				path := paths[idx]
				rec, err := r.AnalyzeOne(ctx, path)
				if err != nil {
					r.logger.Warn("batch analysis failed", zap.String("path", path), zap.Error(err))
					results[idx] = BatchResult{Path: path, Err: err}
					continue
				}
				results[idx] = BatchResult{Path: path, Record: rec}
			}
		}()
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			// Jobs never dispatched still get a definite outcome.
			results[i] = BatchResult{Path: paths[i], Err: ctx.Err()}
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Record, results[j].Record
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Result.ATSScore > b.Result.ATSScore
	})
	return results
}

// ScanDirectory collects files under dir matching the given extensions,
// sorted by path for stable batch order.
func ScanDirectory(dir string, extensions []string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if matchExtension(path, extensions) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Package extract provides text extraction from resume documents (PDF, DOCX).
package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/resumelens/resumelens/internal/models"
)

// DefaultTimeout is the wall-clock budget for a single extraction attempt.
const DefaultTimeout = 15 * time.Second

// Extractor extracts plain text from resume document bytes.
//
// Parsing runs in a worker goroutine under a wall-clock budget with panic
// recovery, so a malformed document cannot hang or crash the caller. On
// timeout the extraction is retried once with half the budget, then fails
// with ErrTimeout.
type Extractor struct {
	timeout time.Duration
}

// NewExtractor returns an Extractor with the given extraction timeout.
// A zero or negative timeout uses DefaultTimeout.
func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{timeout: timeout}
}

// Extract turns doc into plain text. Identical input bytes always yield
// identical text. Fails with ErrUnsupportedFormat before any parsing when
// the format is not PDF or DOCX, ErrCorruptDocument when the parser cannot
// read the stream, ErrEmptyDocument when no non-whitespace text is found,
// and ErrTimeout when both attempts exceed their budget.
func (e *Extractor) Extract(ctx context.Context, doc models.SourceDocument) (models.ExtractedText, error) {
	var parse func([]byte) (string, error)
	switch doc.Format {
	case models.FormatPDF:
		parse = extractPDF
	case models.FormatDOCX:
		parse = extractDOCX
	default:
		return models.ExtractedText{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}

	text, err := e.runIsolated(ctx, parse, doc.Content, e.timeout)
	if err == ErrTimeout {
		text, err = e.runIsolated(ctx, parse, doc.Content, e.timeout/2)
	}
	if err != nil {
		return models.ExtractedText{}, err
	}
	if strings.TrimSpace(text) == "" {
		return models.ExtractedText{}, ErrEmptyDocument
	}
	return models.NewExtractedText(text, doc.Format), nil
}

type parseResult struct {
	text string
	err  error
}

// runIsolated runs parse in its own goroutine under budget. A panicking
// parser surfaces as ErrCorruptDocument. A parser that never returns is
// abandoned; its goroutine finishes on its own without shared state to corrupt.
func (e *Extractor) runIsolated(ctx context.Context, parse func([]byte) (string, error), content []byte, budget time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	ch := make(chan parseResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- parseResult{err: fmt.Errorf("%w: parser panic: %v", ErrCorruptDocument, r)}
			}
		}()
		text, err := parse(content)
		ch <- parseResult{text: text, err: err}
	}()

	select {
	case res := <-ch:
		return res.text, res.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	}
}

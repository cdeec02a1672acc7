package models

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Input length bounds enforced before any pipeline work.
const (
	MinResumeChars = 100
	MaxResumeChars = 50000
	MinJobChars    = 50
	MaxJobChars    = 20000
)

// ErrInvalidInputLength marks a resume or job description outside the
// accepted length bounds. A caller-input error, not a parser error.
var ErrInvalidInputLength = errors.New("invalid input length")

// AnalyzeRequest is the request body for a text-based analysis.
type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	ResumeID       string `json:"resumeId,omitempty"`
}

// Validate checks the input length bounds, counted in runes so multibyte
// text is not penalized. It returns an error wrapping ErrInvalidInputLength
// when either field is out of range.
func (r *AnalyzeRequest) Validate() error {
	if n := utf8.RuneCountInString(r.ResumeText); n < MinResumeChars || n > MaxResumeChars {
		return fmt.Errorf("%w: resume text must be %d-%d characters, got %d",
			ErrInvalidInputLength, MinResumeChars, MaxResumeChars, n)
	}
	return ValidateJobDescription(r.JobDescription)
}

// ValidateJobDescription checks the job description length bounds on its own.
// Used by the file-upload path, where the resume arrives as a document instead of text.
func ValidateJobDescription(jd string) error {
	if n := utf8.RuneCountInString(jd); n < MinJobChars || n > MaxJobChars {
		return fmt.Errorf("%w: job description must be %d-%d characters, got %d",
			ErrInvalidInputLength, MinJobChars, MaxJobChars, n)
	}
	return nil
}

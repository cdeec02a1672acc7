// Package models defines core data structures for documents, analysis requests, and results.
package models

import "strings"

// Format identifies a supported resume document format.
type Format string

const (
	// FormatPDF is a PDF document.
	FormatPDF Format = "pdf"
	// FormatDOCX is an OOXML word-processing document.
	FormatDOCX Format = "docx"
)

// FormatFromExtension maps a file extension (with or without leading dot)
// to a Format. Returns false for anything that is not PDF or DOCX.
func FormatFromExtension(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return FormatPDF, true
	case "docx":
		return FormatDOCX, true
	default:
		return "", false
	}
}

// SourceDocument holds the raw bytes of an uploaded resume and its declared format.
// It is request-scoped: created per request and discarded after extraction.
type SourceDocument struct {
	Name    string
	Format  Format
	Content []byte
}

// ExtractedText is the plain text produced from a SourceDocument, plus
// derived metadata. The text is never modified after extraction.
type ExtractedText struct {
	Text      string `json:"text"`
	Format    Format `json:"format"`
	CharCount int    `json:"char_count"`
	WordCount int    `json:"word_count"`
	LineCount int    `json:"line_count"`
}

// NewExtractedText builds an ExtractedText with metadata derived from text.
func NewExtractedText(text string, format Format) ExtractedText {
	return ExtractedText{
		Text:      text,
		Format:    format,
		CharCount: len(text),
		WordCount: len(strings.Fields(text)),
		LineCount: strings.Count(text, "\n") + 1,
	}
}

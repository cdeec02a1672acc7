package extract

import "errors"

// Error taxonomy for document extraction. Parser-level errors are translated
// into one of these at the extractor boundary; raw library errors never leak
// past this package.
var (
	// ErrUnsupportedFormat means the document is neither PDF nor DOCX.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrCorruptDocument means the parser could not open or read the byte stream.
	ErrCorruptDocument = errors.New("corrupt document")
	// ErrEmptyDocument means extraction yielded no non-whitespace text
	// (e.g. a scanned, image-only PDF).
	ErrEmptyDocument = errors.New("no extractable text in document")
	// ErrTimeout means extraction exceeded its wall-clock budget.
	ErrTimeout = errors.New("extraction timed out")
)

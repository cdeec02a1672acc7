package normalize

import "regexp"

// Fixed vocabularies used by the normalizer. Initialized once at startup and
// never mutated, so normalization stays a pure function of its input.

// bulletGlyphs are the accepted line-leading bullet markers, mapped to
// canonicalBullet. Order matters only for prefix matching; multi-byte glyphs
// are matched as whole runes.
var bulletGlyphs = []string{"•", "●", "○", "■", "□", "▪", "▫", "–", "-", "*", "→", "»"}

// canonicalBullet is the single marker all bullet glyphs normalize to.
const canonicalBullet = "-"

// boilerplateLine matches whole lines of recognized header/footer boilerplate.
// Only lines matching this fixed vocabulary are removed; arbitrary short lines
// (a city name, a one-word skill) survive.
var boilerplateLine = regexp.MustCompile(`(?i)^\s*(confidential|proprietary|draft|resume of\b.*|cv of\b.*|curriculum vitae\b.*)\s*$`)

// Page-number artifact patterns: "Page X of Y", "X of Y", and standalone
// numeric lines.
var (
	pageXofY       = regexp.MustCompile(`(?i)^\s*page\s+\d+\s+of\s+\d+\s*$`)
	xOfY           = regexp.MustCompile(`(?i)^\s*\d+\s+of\s+\d+\s*$`)
	standaloneNum  = regexp.MustCompile(`^\s*\d+\s*$`)
	lineWhitespace = regexp.MustCompile(`[ \t]+`)
)

// sectionHeadings is the fixed vocabulary of resume section names recognized
// as whole-line headings (case-insensitive, optional trailing colon).
var sectionHeadings = map[string]struct{}{
	"summary":                 {},
	"objective":               {},
	"professional summary":    {},
	"career objective":        {},
	"profile":                 {},
	"experience":              {},
	"work experience":         {},
	"professional experience": {},
	"work history":            {},
	"employment":              {},
	"employment history":      {},
	"education":               {},
	"skills":                  {},
	"technical skills":        {},
	"projects":                {},
	"personal projects":       {},
	"certifications":          {},
	"achievements":            {},
	"accomplishments":         {},
	"awards":                  {},
	"publications":            {},
	"languages":               {},
	"interests":               {},
	"volunteer":               {},
	"volunteering":            {},
	"references":              {},
	"qualifications":          {},
	"contact":                 {},
	"contact information":     {},
}

// Package normalize turns extracted resume text into a stable, structurally
// meaningful form: boilerplate and page artifacts removed, bullet markers
// canonicalized, section headings emphasized, whitespace collapsed.
//
// The pipeline is pure and idempotent: Normalize(Normalize(x)) == Normalize(x).
package normalize

import "strings"

// Normalize applies the full pipeline in fixed order. Each step assumes the
// previous step's cleanup, so the order is part of the contract.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	lines = stripBoilerplate(lines)
	lines = stripPageArtifacts(lines)
	lines = canonicalizeBullets(lines)
	lines = emphasizeHeadings(lines)
	return collapseWhitespace(lines)
}

// stripBoilerplate removes whole lines matching the boilerplate vocabulary
// (confidentiality notices, running "Resume of ..." headers).
func stripBoilerplate(lines []string) []string {
	out := lines[:0:0]
	for _, line := range lines {
		if boilerplateLine.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// stripPageArtifacts removes "Page X of Y" lines and standalone numeric
// lines. Numbers inside bulleted or sentence lines are untouched because
// matching is whole-line.
func stripPageArtifacts(lines []string) []string {
	out := lines[:0:0]
	for _, line := range lines {
		if pageXofY.MatchString(line) || xOfY.MatchString(line) || standaloneNum.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// canonicalizeBullets maps recognized line-leading bullet glyphs to the
// canonical marker with exactly one trailing space. Hyphens mid-sentence are
// never touched: only the first glyph of a line qualifies.
func canonicalizeBullets(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		replaced := false
		for _, glyph := range bulletGlyphs {
			if !strings.HasPrefix(trimmed, glyph) {
				continue
			}
			rest := strings.TrimLeft(trimmed[len(glyph):], " \t")
			if rest == "" {
				out[i] = canonicalBullet
			} else {
				out[i] = canonicalBullet + " " + rest
			}
			replaced = true
			break
		}
		if !replaced {
			out[i] = line
		}
	}
	return out
}

// IsHeading reports whether line (trimmed, optionally colon-terminated)
// is a recognized section heading.
func IsHeading(line string) bool {
	h := strings.ToLower(strings.TrimSpace(line))
	h = strings.TrimSuffix(h, ":")
	h = strings.TrimSpace(h)
	_, ok := sectionHeadings[h]
	return ok
}

// emphasizeHeadings upper-cases recognized section headings and surrounds
// them with blank lines. Blank lines are only inserted when missing so the
// step is stable under repetition.
func emphasizeHeadings(lines []string) []string {
	out := make([]string, 0, len(lines)+8)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !IsHeading(trimmed) {
			out = append(out, line)
			continue
		}
		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, strings.ToUpper(trimmed))
		if next := i + 1; next < len(lines) && strings.TrimSpace(lines[next]) != "" {
			out = append(out, "")
		}
	}
	return out
}

// collapseWhitespace trims every line, collapses in-line whitespace runs to a
// single space, reduces consecutive blank lines to one, and trims the whole
// document.
func collapseWhitespace(lines []string) string {
	var b strings.Builder
	blankPending := false
	wroteAny := false
	for _, line := range lines {
		cleaned := strings.TrimSpace(lineWhitespace.ReplaceAllString(line, " "))
		if cleaned == "" {
			blankPending = wroteAny
			continue
		}
		if blankPending {
			b.WriteString("\n\n")
		} else if wroteAny {
			b.WriteByte('\n')
		}
		b.WriteString(cleaned)
		blankPending = false
		wroteAny = true
	}
	return b.String()
}

// Package keywords extracts the weighted keyword set a job description
// requires, and tokenizes resume text the same way so both sides of the
// match are comparable.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// minTokenLen filters out short generic tokens; abbreviations shorter than
// this reach the dictionary through the synonym table instead.
const minTokenLen = 4

// tokenPattern matches word tokens, keeping the characters technical terms
// carry (c++, c#, node.js, ci/cd) inside a single token.
var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9+#./-]*`)

// Set is an ordered set of distinct lowercase keywords extracted from a job
// description. Order is first occurrence in the source text, which fixes the
// output ordering of every downstream listing.
type Set struct {
	terms   []string
	members map[string]struct{}
}

// Terms returns the keywords in first-occurrence order. The returned slice
// must not be mutated.
func (s *Set) Terms() []string { return s.terms }

// Contains reports whether term is in the set.
func (s *Set) Contains(term string) bool {
	_, ok := s.members[term]
	return ok
}

// Len returns the number of keywords.
func (s *Set) Len() int { return len(s.terms) }

type candidate struct {
	term string
	pos  int
}

// Extract parses a job description into its required keyword set: tokens of
// at least minTokenLen characters, lower-cased, synonym-expanded, restricted
// to the technical dictionary, deduplicated in first-occurrence order.
// Multi-word dictionary entries are found by phrase scan.
func Extract(jobDescription string) *Set {
	lower := strings.ToLower(jobDescription)

	seen := make(map[string]struct{})
	var found []candidate

	add := func(term string, pos int) {
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		found = append(found, candidate{term: term, pos: pos})
	}

	for _, phrase := range phraseTerms {
		if pos := strings.Index(lower, phrase); pos >= 0 {
			add(phrase, pos)
		}
	}

	for _, loc := range tokenPattern.FindAllStringIndex(lower, -1) {
		token := canonicalize(lower[loc[0]:loc[1]])
		if len(token) < minTokenLen {
			continue
		}
		if _, ok := dictionary[token]; !ok {
			continue
		}
		add(token, loc[0])
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	set := &Set{members: seen}
	for _, c := range found {
		set.terms = append(set.terms, c.term)
	}
	return set
}

// Tokenize builds the membership set for resume text: every token of at
// least minTokenLen characters plus the canonical expansion of any known
// abbreviation, and every dictionary phrase the text contains. Resume and
// job description pass through identical canonicalization, so matching is
// exact set membership.
func Tokenize(text string) map[string]struct{} {
	lower := strings.ToLower(text)
	tokens := make(map[string]struct{})
	for _, raw := range tokenPattern.FindAllString(lower, -1) {
		token := canonicalize(raw)
		if len(token) >= minTokenLen {
			tokens[token] = struct{}{}
		}
	}
	for _, phrase := range phraseTerms {
		if strings.Contains(lower, phrase) {
			tokens[phrase] = struct{}{}
		}
	}
	return tokens
}

// canonicalize trims stray punctuation from a token and expands known
// abbreviations to their dictionary form.
func canonicalize(token string) string {
	token = strings.Trim(token, "./-")
	if expanded, ok := synonyms[token]; ok {
		return expanded
	}
	return token
}

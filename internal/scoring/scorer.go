// Package scoring implements the deterministic resume/job-description match
// heuristic: keyword partition, section presence, and the score breakdown.
// The result is strictly a function of the resume tokens, job-description
// tokens, and section-header presence.
package scoring

import (
	"math"
	"strings"

	"github.com/resumelens/resumelens/internal/keywords"
	"github.com/resumelens/resumelens/internal/models"
)

// weakKeywordCount is how many missing keywords are surfaced as highest
// priority. Weak keywords are a display subset of missing, not a separate
// detection mechanism.
const weakKeywordCount = 2

// Result is the full scorer output: breakdown, total, keyword partition, and
// the section presence it was derived from.
type Result struct {
	Scores   models.SectionScores
	Total    int
	Required []string
	Matched  []string
	Missing  []string
	Weak     []string
	Sections []Section
}

// SectionPresent reports whether the named section was detected.
func (r *Result) SectionPresent(name string) bool {
	for _, s := range r.Sections {
		if s.Name == name {
			return s.Present
		}
	}
	return false
}

// Scorer scores normalized resume text against a keyword set.
type Scorer struct {
	weights Weights
}

// NewScorer returns a Scorer using the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score partitions the keyword set against the resume token set, detects
// section presence, and computes the breakdown. Deterministic: identical
// inputs produce identical output.
func (s *Scorer) Score(normalizedResume string, kws *keywords.Set) *Result {
	w := s.weights
	tokens := keywords.Tokenize(normalizedResume)
	lower := strings.ToLower(normalizedResume)

	matched := []string{}
	missing := []string{}
	for _, term := range kws.Terms() {
		if _, ok := tokens[term]; ok || (strings.Contains(term, " ") && strings.Contains(lower, term)) {
			matched = append(matched, term)
		} else {
			missing = append(missing, term)
		}
	}
	weak := missing
	if len(weak) > weakKeywordCount {
		weak = weak[:weakKeywordCount]
	}

	sections := DetectSections(normalizedResume)
	expVal := w.ExperienceAbsent
	skillsVal := w.SkillsAbsent
	projVal := w.ProjectsAbsent
	for _, sec := range sections {
		if !sec.Present {
			continue
		}
		switch sec.Name {
		case SectionExperience:
			expVal = w.ExperiencePresent
		case SectionSkills:
			skillsVal = w.SkillsPresent
		case SectionProjects:
			projVal = w.ProjectsPresent
		}
	}

	alignment := w.AlignmentLow
	if len(matched) > w.AlignmentThreshold {
		alignment = w.AlignmentHigh
	}

	keywordScore := w.NeutralKeyword
	if kws.Len() > 0 {
		keywordScore = float64(len(matched)) / float64(kws.Len()) * w.KeywordWeight
	}

	base := expVal + skillsVal + projVal + alignment
	total := int(math.Round(keywordScore + float64(base)*w.SectionWeight))
	if total > w.MaxScore {
		total = w.MaxScore
	}
	if total < 0 {
		total = 0
	}

	// Displayed sub-scores are rescaled to the total so the breakdown reads
	// consistently; role alignment is shown as-is.
	scale := float64(total) / 100
	return &Result{
		Scores: models.SectionScores{
			Skills:        rescale(skillsVal, scale),
			Experience:    rescale(expVal, scale),
			Projects:      rescale(projVal, scale),
			RoleAlignment: alignment,
		},
		Total:    total,
		Required: kws.Terms(),
		Matched:  matched,
		Missing:  missing,
		Weak:     weak,
		Sections: sections,
	}
}

func rescale(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}

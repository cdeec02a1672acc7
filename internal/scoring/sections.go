package scoring

import "strings"

// Canonical section names used in presence detection.
const (
	SectionExperience = "experience"
	SectionSkills     = "skills"
	SectionEducation  = "education"
	SectionProjects   = "projects"
)

// Section is a logical resume section: a name and whether any of its header
// synonyms appear in the normalized text. Presence detection only; scoring
// never needs exact span extraction.
type Section struct {
	Name    string
	Present bool
}

// sectionSynonyms is the fixed vocabulary of header synonyms per section.
// Read-only after startup.
var sectionSynonyms = map[string][]string{
	SectionExperience: {"experience", "work history", "employment"},
	SectionSkills:     {"skills", "technologies", "competencies"},
	SectionEducation:  {"education", "academic background", "qualifications"},
	SectionProjects:   {"projects", "portfolio"},
}

// sectionOrder fixes the iteration order for deterministic output.
var sectionOrder = []string{SectionExperience, SectionSkills, SectionEducation, SectionProjects}

// DetectSections reports, for each known section, whether the normalized
// resume text contains any of its header synonyms.
func DetectSections(normalized string) []Section {
	lower := strings.ToLower(normalized)
	out := make([]Section, 0, len(sectionOrder))
	for _, name := range sectionOrder {
		present := false
		for _, syn := range sectionSynonyms[name] {
			if strings.Contains(lower, syn) {
				present = true
				break
			}
		}
		out = append(out, Section{Name: name, Present: present})
	}
	return out
}

package scoring

// Weights holds every tunable constant of the heuristic scorer. The defaults
// reproduce the calibration the product shipped with; they are parameters,
// not derived quantities, and can be adjusted without touching scorer logic.
type Weights struct {
	// Section presence values: the points a section contributes when its
	// heading is found vs. when it is absent.
	ExperiencePresent int
	ExperienceAbsent  int
	SkillsPresent     int
	SkillsAbsent      int
	ProjectsPresent   int
	ProjectsAbsent    int

	// Role alignment: High when matched keywords exceed AlignmentThreshold,
	// Low otherwise.
	AlignmentHigh      int
	AlignmentLow       int
	AlignmentThreshold int

	// KeywordWeight scales the matched/required ratio; NeutralKeyword is
	// used instead when the job description yields no keywords at all.
	KeywordWeight  float64
	NeutralKeyword float64

	// SectionWeight scales the summed section values into the total.
	SectionWeight float64

	// MaxScore caps the total so a resume never reads as perfect.
	MaxScore int
}

// DefaultWeights returns the shipped calibration.
func DefaultWeights() Weights {
	return Weights{
		ExperiencePresent:  25,
		ExperienceAbsent:   5,
		SkillsPresent:      35,
		SkillsAbsent:       10,
		ProjectsPresent:    18,
		ProjectsAbsent:     5,
		AlignmentHigh:      10,
		AlignmentLow:       5,
		AlignmentThreshold: 5,
		KeywordWeight:      40,
		NeutralKeyword:     20,
		SectionWeight:      0.6,
		MaxScore:           98,
	}
}

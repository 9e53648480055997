package models

import "fmt"

// Proficiency is the ordered skill level scale. It is stored as text and
// compared by rank, so the ordering lives here and nowhere else.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
	ProficiencyExpert       Proficiency = "Expert"
)

// ProficiencyLevels lists all levels in ascending order.
func ProficiencyLevels() []Proficiency {
	return []Proficiency{
		ProficiencyBeginner,
		ProficiencyIntermediate,
		ProficiencyAdvanced,
		ProficiencyExpert,
	}
}

// Rank returns the position of the level on the 1..4 scale, or 0 for an
// unknown value.
func (p Proficiency) Rank() int {
	switch p {
	case ProficiencyBeginner:
		return 1
	case ProficiencyIntermediate:
		return 2
	case ProficiencyAdvanced:
		return 3
	case ProficiencyExpert:
		return 4
	default:
		return 0
	}
}

// Valid reports whether p is one of the four defined levels.
func (p Proficiency) Valid() bool {
	return p.Rank() > 0
}

// AtLeast reports whether p ranks at or above target on the ordered scale.
func (p Proficiency) AtLeast(target Proficiency) bool {
	return p.Rank() >= target.Rank()
}

// ParseProficiency converts user input into a Proficiency.
func ParseProficiency(s string) (Proficiency, error) {
	p := Proficiency(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid proficiency level %q", s)
	}
	return p, nil
}

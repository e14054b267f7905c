package analysis

import (
	"regexp"
	"strings"
)

// Requirement is a skill asked for by a job description, at the highest
// priority it was mentioned with.
type Requirement struct {
	Skill    string   `json:"skill"`
	Priority Priority `json:"priority"`
	Weight   int      `json:"weight"`
}

var unitSeparators = regexp.MustCompile(`[\n.!?;:]+`)

// splitUnits breaks text into trimmed, non-empty sentence-like units.
func splitUnits(text string) []string {
	parts := unitSeparators.Split(text, -1)
	units := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			units = append(units, part)
		}
	}
	return units
}

// ExtractRequirements finds the dictionary skills named in a job description
// and tags each with the strongest priority of any sentence mentioning it.
// Requirements are returned in order of first mention. Text without any
// known skill yields an empty slice.
func ExtractRequirements(jobDescription string) []Requirement {
	requirements := []Requirement{}
	index := make(map[string]int)

	for _, unit := range splitUnits(jobDescription) {
		priority := ClassifyPriority(unit)

		for _, entry := range dictionary {
			if !entry.Match(unit) {
				continue
			}

			i, seen := index[entry.Skill]
			if !seen {
				index[entry.Skill] = len(requirements)
				requirements = append(requirements, Requirement{Skill: entry.Skill, Priority: priority})
				continue
			}
			if priority.Outweighs(requirements[i].Priority) {
				requirements[i].Priority = priority
			}
		}
	}

	for i := range requirements {
		requirements[i].Weight = requirements[i].Priority.Weight()
	}
	return requirements
}

package analysis

// SkillSet is a set of canonical skill names.
type SkillSet map[string]struct{}

// NewSkillSet builds a set holding the given skill names.
func NewSkillSet(skills ...string) SkillSet {
	set := make(SkillSet, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

// Has reports whether skill is in the set.
func (s SkillSet) Has(skill string) bool {
	_, ok := s[skill]
	return ok
}

// Names lists the set in dictionary order.
func (s SkillSet) Names() []string {
	names := make([]string, 0, len(s))
	for _, entry := range dictionary {
		if s.Has(entry.Skill) {
			names = append(names, entry.Skill)
		}
	}
	return names
}

// DetectSkills returns every dictionary skill mentioned anywhere in text.
func DetectSkills(text string) SkillSet {
	found := SkillSet{}
	for _, entry := range dictionary {
		if entry.Match(text) {
			found[entry.Skill] = struct{}{}
		}
	}
	return found
}

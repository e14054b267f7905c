package analysis

// NoSkillsNote explains a zero score caused by a job description that names
// no known skill.
const NoSkillsNote = "No known skills were detected in the uploaded job description."

// Result is the match report for one resume against one job description.
// The four skill lists partition the job description's requirements.
type Result struct {
	Score                 int      `json:"score"`
	MatchedSkills         []string `json:"matched_skills"`
	MissingSkills         []string `json:"missing_skills"`
	MissingMustHaveSkills []string `json:"missing_must_have_skills"`
	MissingOptionalSkills []string `json:"missing_optional_skills"`
	Note                  string   `json:"note"`
}

func emptyResult() Result {
	return Result{
		MatchedSkills:         []string{},
		MissingSkills:         []string{},
		MissingMustHaveSkills: []string{},
		MissingOptionalSkills: []string{},
	}
}

// Score weighs requirements against the skills found in a resume. The score
// is the matched share of total requirement weight as a percentage, rounded
// half up.
func Score(requirements []Requirement, resumeSkills SkillSet) Result {
	result := emptyResult()
	if len(requirements) == 0 {
		result.Note = NoSkillsNote
		return result
	}

	var totalWeight, matchedWeight int
	for _, req := range requirements {
		totalWeight += req.Weight
		if resumeSkills.Has(req.Skill) {
			matchedWeight += req.Weight
			result.MatchedSkills = append(result.MatchedSkills, req.Skill)
			continue
		}

		switch req.Priority {
		case MustHave:
			result.MissingMustHaveSkills = append(result.MissingMustHaveSkills, req.Skill)
		case Optional:
			result.MissingOptionalSkills = append(result.MissingOptionalSkills, req.Skill)
		default:
			result.MissingSkills = append(result.MissingSkills, req.Skill)
		}
	}

	result.Score = roundPercent(matchedWeight, totalWeight)
	return result
}

// roundPercent computes round(100*part/total) with halves rounded up.
func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

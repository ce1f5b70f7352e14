package screening

import "sort"

// MatchResult is the outcome of comparing a resume against a job
// description: a 0-100 compatibility score and the job terms the resume
// does not cover.
type MatchResult struct {
	Score         float64
	MissingSkills []string
}

// Match computes the set-overlap score:
//
//	|job ∩ resume| / |job| * 100
//
// The score is 0 when the job skill set is empty, and 100 when the
// resume skills are a superset of the job skills. MissingSkills is
// job − resume, sorted for deterministic output.
func Match(jobSkills, resumeSkills SkillSet) MatchResult {
	if len(jobSkills) == 0 {
		return MatchResult{Score: 0, MissingSkills: []string{}}
	}

	overlap := 0
	missing := make([]string, 0)
	for term := range jobSkills {
		if resumeSkills.Has(term) {
			overlap++
			continue
		}
		missing = append(missing, term)
	}
	sort.Strings(missing)

	score := float64(overlap) / float64(len(jobSkills)) * 100

	return MatchResult{Score: score, MissingSkills: missing}
}

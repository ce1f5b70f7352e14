package screening

import (
	"math"
	"reflect"
	"testing"
)

func setOf(terms ...string) SkillSet {
	s := make(SkillSet)
	for _, t := range terms {
		s.Add(t)
	}
	return s
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name        string
		job         SkillSet
		resume      SkillSet
		wantScore   float64
		wantMissing []string
	}{
		{
			name:        "partial overlap",
			job:         setOf("python", "sql", "communication"),
			resume:      setOf("python", "sql"),
			wantScore:   200.0 / 3.0,
			wantMissing: []string{"communication"},
		},
		{
			name:        "empty job yields zero",
			job:         setOf(),
			resume:      setOf("python"),
			wantScore:   0,
			wantMissing: []string{},
		},
		{
			name:        "resume superset yields full score",
			job:         setOf("go", "sql"),
			resume:      setOf("go", "sql", "kubernetes"),
			wantScore:   100,
			wantMissing: []string{},
		},
		{
			name:        "no overlap",
			job:         setOf("go", "sql"),
			resume:      setOf("painting"),
			wantScore:   0,
			wantMissing: []string{"go", "sql"},
		},
		{
			name:        "empty resume",
			job:         setOf("go"),
			resume:      setOf(),
			wantScore:   0,
			wantMissing: []string{"go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.job, tt.resume)

			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(got.MissingSkills, tt.wantMissing) {
				t.Errorf("MissingSkills = %v, want %v", got.MissingSkills, tt.wantMissing)
			}
		})
	}
}

func TestMatchMissingSkillsSorted(t *testing.T) {
	got := Match(setOf("zeta", "alpha", "mid"), setOf())
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got.MissingSkills, want) {
		t.Errorf("MissingSkills = %v, want %v", got.MissingSkills, want)
	}
}

package profile

import (
	"errors"
	"testing"

	"intern-match/internal/domain"
)

func TestParseEducationLevel(t *testing.T) {
	cases := map[string]EducationLevel{
		"graduate":     LevelGraduate,
		" Diploma ":    LevelDiploma,
		"Bachelor":     LevelGraduate,
		"PhD":          LevelPostgraduate,
		"12th":         Level12th,
		"postgraduate": LevelPostgraduate,
	}
	for in, want := range cases {
		got, err := ParseEducationLevel(in)
		if err != nil {
			t.Fatalf("ParseEducationLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseEducationLevel(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseEducationLevel("kindergarten"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRankOrdering(t *testing.T) {
	order := []EducationLevel{Level10th, Level12th, LevelDiploma, LevelGraduate, LevelPostgraduate}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Fatalf("%s should rank below %s", order[i-1], order[i])
		}
	}
	if EducationLevel("other").Valid() {
		t.Fatalf("unknown level should be invalid")
	}
}

func TestNormalize_DedupAndTrim(t *testing.T) {
	p := Profile{
		EducationLevel:     "Master",
		Skills:             []string{" Python ", "python", "SQL", "", "Machine   Learning"},
		Interests:          []string{"Data Science"},
		PreferredLocations: []string{"New Delhi", "new delhi"},
	}
	out, err := p.Normalize()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.EducationLevel != LevelPostgraduate {
		t.Fatalf("unexpected level %q", out.EducationLevel)
	}
	want := []string{"Python", "SQL", "Machine Learning"}
	if len(out.Skills) != len(want) {
		t.Fatalf("unexpected skills %v", out.Skills)
	}
	for i := range want {
		if out.Skills[i] != want[i] {
			t.Fatalf("skills[%d] = %q, want %q", i, out.Skills[i], want[i])
		}
	}
	if len(out.PreferredLocations) != 1 {
		t.Fatalf("expected deduped locations, got %v", out.PreferredLocations)
	}
}

func TestNormalize_RejectsOutOfRangeScores(t *testing.T) {
	cgpa := 11.0
	_, err := Profile{EducationLevel: LevelGraduate, Scores: Scores{CGPA: &cgpa}}.Normalize()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNormalize_EmptyLevelAllowed(t *testing.T) {
	out, err := Profile{Skills: []string{"Go"}}.Normalize()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Complete() {
		t.Fatalf("profile without level must not be complete")
	}
}

package matching

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"intern-match/internal/domain"
	"intern-match/internal/domain/internship"
	"intern-match/internal/domain/profile"

	"github.com/google/uuid"
)

func mustEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := NewEngine(opts)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func id(n byte) uuid.UUID {
	var u uuid.UUID
	u[15] = n
	return u
}

func dataScience() internship.Internship {
	return internship.Internship{
		ID:              id(1),
		Title:           "Data Science Intern",
		Organization:    "DataLabs",
		Location:        "New York, NY",
		RequiredSkills:  []string{"Python", "Machine Learning", "SQL"},
		Interests:       []string{"Data Science", "Analytics"},
		EducationLevels: []string{"Bachelor", "Master", "PhD"},
		TotalPositions:  2,
	}
}

func marketing() internship.Internship {
	return internship.Internship{
		ID:              id(2),
		Title:           "Marketing Intern",
		Organization:    "BrandCo",
		RequiredSkills:  []string{"Social Media", "Content Writing"},
		Interests:       []string{"Marketing"},
		EducationLevels: []string{"graduate"},
		TotalPositions:  3,
	}
}

func graduateProfile() profile.Profile {
	return profile.Profile{
		EducationLevel: profile.LevelGraduate,
		Skills:         []string{"Python", "SQL"},
		Interests:      []string{"Data Science"},
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecommend_DataScienceScenario(t *testing.T) {
	e := mustEngine(t, DefaultOptions())

	got, err := e.Recommend(graduateProfile(), []internship.Internship{marketing(), dataScience()}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the overlapping internship, got %+v", got)
	}
	r := got[0]
	if r.InternshipID != id(1) {
		t.Fatalf("expected data science first, got %s", r.InternshipID)
	}
	if !approx(r.SkillOverlap, 2.0/3.0) {
		t.Fatalf("skill overlap = %v, want 2/3", r.SkillOverlap)
	}
	if !approx(r.InterestOverlap, 0.5) {
		t.Fatalf("interest overlap = %v, want 1/2", r.InterestOverlap)
	}
	if !approx(r.Score, 0.6*2.0/3.0+0.4*0.5) {
		t.Fatalf("score = %v", r.Score)
	}
	if len(r.MatchedSkills) != 2 || r.MatchedSkills[0] != "Python" || r.MatchedSkills[1] != "SQL" {
		t.Fatalf("unexpected matched skills %v", r.MatchedSkills)
	}
	if !r.Eligible || r.Fallback {
		t.Fatalf("unexpected flags eligible=%v fallback=%v", r.Eligible, r.Fallback)
	}
	if r.Rationale == "" {
		t.Fatalf("expected rationale")
	}
}

func TestRecommend_SortedByScoreThenPositionsThenID(t *testing.T) {
	e := mustEngine(t, DefaultOptions())
	p := profile.Profile{
		EducationLevel: profile.LevelGraduate,
		Skills:         []string{"Go"},
		Interests:      []string{"Backend"},
	}
	mk := func(n byte, skills []string, positions int) internship.Internship {
		return internship.Internship{ID: id(n), Title: "x", Organization: "y", RequiredSkills: skills, Interests: []string{"Backend"}, TotalPositions: positions}
	}
	catalog := []internship.Internship{
		mk(5, []string{"Go", "SQL"}, 1),
		mk(4, []string{"Go"}, 1),
		mk(3, []string{"Go", "SQL"}, 7),
		mk(2, []string{"Go", "SQL"}, 7),
		mk(1, []string{"Rust"}, 9),
	}

	got, err := e.Recommend(p, catalog, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	wantOrder := []uuid.UUID{id(4), id(2), id(3), id(5), id(1)}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d results, got %d", len(wantOrder), len(got))
	}
	for i := range wantOrder {
		if got[i].InternshipID != wantOrder[i] {
			t.Fatalf("position %d = %s, want %s", i, got[i].InternshipID, wantOrder[i])
		}
		if i > 0 && got[i].Score > got[i-1].Score {
			t.Fatalf("scores not non-increasing at %d", i)
		}
	}
}

func TestRecommend_ExcludedIDsNeverReturned(t *testing.T) {
	e := mustEngine(t, DefaultOptions())
	excluded := map[uuid.UUID]struct{}{id(1): {}}

	got, err := e.Recommend(graduateProfile(), []internship.Internship{dataScience(), marketing()}, excluded)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, r := range got {
		if r.InternshipID == id(1) {
			t.Fatalf("excluded internship returned")
		}
	}
}

func TestRecommend_FallbackByPositions(t *testing.T) {
	opts := DefaultOptions()
	opts.FallbackSize = 2
	e := mustEngine(t, opts)
	p := profile.Profile{EducationLevel: profile.LevelGraduate, Skills: []string{"Cooking"}}

	catalog := []internship.Internship{
		{ID: id(1), Title: "a", Organization: "o", TotalPositions: 1, RequiredSkills: []string{"Go"}},
		{ID: id(2), Title: "b", Organization: "o", TotalPositions: 10, RequiredSkills: []string{"Go"}},
		{ID: id(3), Title: "c", Organization: "o", TotalPositions: 5, RequiredSkills: []string{"Go"}},
		{ID: id(4), Title: "d", Organization: "o", TotalPositions: 50, EducationLevels: []string{"postgraduate"}},
	}
	got, err := e.Recommend(p, catalog, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[0].InternshipID != id(2) || got[1].InternshipID != id(3) {
		t.Fatalf("unexpected fallback %+v", got)
	}
	for _, r := range got {
		if !r.Fallback || !r.Eligible || r.Score != 0 {
			t.Fatalf("unexpected fallback flags %+v", r)
		}
	}
}

func TestRecommend_FallbackToIneligibleWhenNothingEligible(t *testing.T) {
	e := mustEngine(t, DefaultOptions())
	p := profile.Profile{EducationLevel: profile.Level10th}

	got, err := e.Recommend(p, []internship.Internship{dataScience()}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Eligible || !got[0].Fallback {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestRecommend_FallbackDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.FallbackSize = 0
	e := mustEngine(t, opts)

	got, err := e.Recommend(profile.Profile{EducationLevel: profile.LevelGraduate}, []internship.Internship{marketing()}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestRecommend_EligibilityPolicies(t *testing.T) {
	in := internship.Internship{
		ID: id(1), Title: "Policy Research Intern", Organization: "NITI Aayog",
		RequiredSkills: []string{"Research"}, EducationLevels: []string{"graduate"}, TotalPositions: 5,
	}
	p := profile.Profile{EducationLevel: profile.LevelPostgraduate, Skills: []string{"research"}}

	atLeast := mustEngine(t, DefaultOptions())
	got, err := atLeast.Recommend(p, []internship.Internship{in}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || !got[0].Eligible || got[0].Score == 0 {
		t.Fatalf("postgraduate should qualify under at_least: %+v", got)
	}

	opts := DefaultOptions()
	opts.Eligibility = EligibilityExact
	exact := mustEngine(t, opts)
	got, err = exact.Recommend(p, []internship.Internship{in}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Eligible || !got[0].Fallback {
		t.Fatalf("postgraduate should not qualify under exact: %+v", got)
	}

	below := profile.Profile{EducationLevel: profile.LevelDiploma, Skills: []string{"Research"}}
	got, err = atLeast.Recommend(below, []internship.Internship{in}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Eligible {
		t.Fatalf("diploma should not qualify for graduate posting: %+v", got)
	}
}

func TestRecommend_EmptyEducationSetIsOpen(t *testing.T) {
	opts := DefaultOptions()
	opts.Eligibility = EligibilityExact
	e := mustEngine(t, opts)
	in := internship.Internship{ID: id(1), Title: "t", Organization: "o", RequiredSkills: []string{"Excel"}}

	got, err := e.Recommend(profile.Profile{EducationLevel: profile.Level12th, Skills: []string{"excel"}}, []internship.Internship{in}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || !got[0].Eligible || got[0].Score != 0.6 {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestRecommend_InvalidEducationLevel(t *testing.T) {
	e := mustEngine(t, DefaultOptions())
	_, err := e.Recommend(profile.Profile{EducationLevel: "preschool"}, []internship.Internship{dataScience()}, nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = e.Recommend(profile.Profile{}, nil, nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for missing level, got %v", err)
	}
}

func TestRecommend_LocationMatch(t *testing.T) {
	e := mustEngine(t, DefaultOptions())
	p := graduateProfile()
	p.PreferredLocations = []string{"new york"}

	got, err := e.Recommend(p, []internship.Internship{dataScience()}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || !got[0].LocationMatch {
		t.Fatalf("expected location match, got %+v", got)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	e := mustEngine(t, DefaultOptions())
	catalog := []internship.Internship{dataScience(), marketing()}
	a, _ := e.Recommend(graduateProfile(), catalog, nil)
	b, _ := e.Recommend(graduateProfile(), []internship.Internship{marketing(), dataScience()}, nil)
	if len(a) != len(b) {
		t.Fatalf("length differs")
	}
	for i := range a {
		if a[i].InternshipID != b[i].InternshipID || a[i].Rationale != b[i].Rationale {
			t.Fatalf("results differ at %d", i)
		}
	}
}

func TestNewEngine_Validation(t *testing.T) {
	if _, err := NewEngine(Options{SkillWeight: -1, InterestWeight: 1}); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights, got %v", err)
	}
	if _, err := NewEngine(Options{}); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights for zero weights, got %v", err)
	}
	if _, err := NewEngine(Options{SkillWeight: math.NaN(), InterestWeight: 1}); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights for NaN weight, got %v", err)
	}
	if _, err := NewEngine(Options{SkillWeight: 1, InterestWeight: math.Inf(1)}); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights for infinite weight, got %v", err)
	}
	if _, err := NewEngine(Options{SkillWeight: 1, Eligibility: "fuzzy"}); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestRecommend_DuplicateLabelsCountOnce(t *testing.T) {
	e := mustEngine(t, DefaultOptions())
	in := internship.Internship{
		ID:             id(1),
		Title:          "t",
		Organization:   "o",
		RequiredSkills: []string{"Python", "python ", " PYTHON"},
		Interests:      []string{"AI", "ai", "Robotics"},
	}
	p := profile.Profile{EducationLevel: profile.LevelGraduate, Skills: []string{"Python"}, Interests: []string{"AI"}}

	got, err := e.Recommend(p, []internship.Internship{in}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one result, got %+v", got)
	}
	r := got[0]
	if !approx(r.SkillOverlap, 1) {
		t.Fatalf("skill overlap = %v, want 1", r.SkillOverlap)
	}
	if !approx(r.InterestOverlap, 0.5) {
		t.Fatalf("interest overlap = %v, want 1/2", r.InterestOverlap)
	}
	if !strings.Contains(r.Rationale, "1 of 1 required skills") || !strings.Contains(r.Rationale, "1 of 2 interests") {
		t.Fatalf("rationale counts duplicates: %q", r.Rationale)
	}
}

func TestRecommend_RandomCatalogsStayOrdered(t *testing.T) {
	labels := []string{"Go", "Python", "SQL", "React", "Design", "Research", "Excel", "Marketing"}
	levels := []profile.EducationLevel{
		profile.Level10th, profile.Level12th, profile.LevelDiploma, profile.LevelGraduate, profile.LevelPostgraduate,
	}
	rng := rand.New(rand.NewPCG(42, 7))
	pick := func() []string {
		out := make([]string, 0)
		for _, l := range labels {
			if rng.IntN(3) == 0 {
				out = append(out, l)
			}
		}
		return out
	}

	for _, policy := range []Eligibility{EligibilityAtLeast, EligibilityExact} {
		opts := DefaultOptions()
		opts.Eligibility = policy
		e := mustEngine(t, opts)

		for round := 0; round < 200; round++ {
			p := profile.Profile{
				EducationLevel: levels[rng.IntN(len(levels))],
				Skills:         pick(),
				Interests:      pick(),
			}
			size := rng.IntN(12)
			catalog := make([]internship.Internship, 0, size)
			positions := make(map[uuid.UUID]int, size)
			excluded := make(map[uuid.UUID]struct{})
			for i := 0; i < size; i++ {
				in := internship.Internship{
					ID:             uuid.New(),
					Title:          "t",
					Organization:   "o",
					RequiredSkills: pick(),
					Interests:      pick(),
					TotalPositions: rng.IntN(4),
				}
				if rng.IntN(2) == 0 {
					in.EducationLevels = []string{string(levels[rng.IntN(len(levels))])}
				}
				if rng.IntN(5) == 0 {
					excluded[in.ID] = struct{}{}
				}
				positions[in.ID] = in.TotalPositions
				catalog = append(catalog, in)
			}

			got, err := e.Recommend(p, catalog, excluded)
			if err != nil {
				t.Fatalf("round %d: unexpected err: %v", round, err)
			}
			for i, r := range got {
				if _, ok := excluded[r.InternshipID]; ok {
					t.Fatalf("round %d: excluded %s returned", round, r.InternshipID)
				}
				if r.Score < 0 || r.Score > 1 {
					t.Fatalf("round %d: score %v out of range", round, r.Score)
				}
				if i == 0 {
					continue
				}
				prev := got[i-1]
				switch {
				case r.Score > prev.Score:
					t.Fatalf("round %d: scores increase at %d", round, i)
				case r.Score < prev.Score:
				case positions[r.InternshipID] > positions[prev.InternshipID]:
					t.Fatalf("round %d: positions increase on tie at %d", round, i)
				case positions[r.InternshipID] == positions[prev.InternshipID] &&
					bytes.Compare(r.InternshipID[:], prev.InternshipID[:]) <= 0:
					t.Fatalf("round %d: ids not ascending on tie at %d", round, i)
				}
			}
		}
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"intern-match/internal/domain"
	"intern-match/internal/domain/internship"
	"intern-match/internal/domain/profile"

	"github.com/google/uuid"
)

func studentProfile() *profile.Profile {
	return &profile.Profile{
		EducationLevel: profile.LevelGraduate,
		Skills:         []string{"Python", "SQL"},
		Interests:      []string{"Data Science"},
	}
}

func TestRecommend_ExcludesAppliedAndDismissed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	uid := f.user(t, studentProfile())
	ds := f.internship(t, internship.Internship{
		Title:           "Data Science Intern",
		Organization:    "DataLabs",
		RequiredSkills:  []string{"Python", "Machine Learning", "SQL"},
		Interests:       []string{"Data Science", "Analytics"},
		EducationLevels: []string{"graduate", "postgraduate"},
		TotalPositions:  2,
	})
	an := f.internship(t, internship.Internship{
		Title:          "Analyst Intern",
		Organization:   "Numbers",
		RequiredSkills: []string{"SQL"},
		Interests:      []string{"Data Science"},
		TotalPositions: 1,
	})
	mk := f.internship(t, internship.Internship{
		Title:          "Marketing Intern",
		Organization:   "BrandCo",
		RequiredSkills: []string{"Social Media"},
		TotalPositions: 9,
	})

	rec := f.recommendations(t)
	got, err := rec.Recommend(ctx, uid, 0)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(got) != 2 || got[0].Internship.ID != an.ID || got[1].Internship.ID != ds.ID {
		t.Fatalf("unexpected ranking %+v", got)
	}
	for _, r := range got {
		if r.Internship.ID == mk.ID {
			t.Fatalf("zero-overlap internship returned alongside matches")
		}
	}
	if !f.cache.has(RecommendationKey(uid)) {
		t.Fatalf("expected recommendations cached")
	}

	if _, err := f.ledger(false).Apply(ctx, uid, an.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if f.cache.has(RecommendationKey(uid)) {
		t.Fatalf("apply must invalidate cached recommendations")
	}
	if err := rec.Dismiss(ctx, uid, ds.ID); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	got, err = rec.Recommend(ctx, uid, 0)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(got) != 1 || got[0].Internship.ID != mk.ID || !got[0].Match.Fallback {
		t.Fatalf("expected fallback to remaining internship, got %+v", got)
	}
}

func TestRecommend_LimitAndValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	uid := f.user(t, studentProfile())
	for _, title := range []string{"a", "b", "c"} {
		f.internship(t, internship.Internship{Title: title, Organization: "o", RequiredSkills: []string{"Python"}})
	}
	rec := f.recommendations(t)

	got, err := rec.Recommend(ctx, uid, 2)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if _, err := rec.Recommend(ctx, uid, 101); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestRecommend_IncompleteProfile(t *testing.T) {
	f := newFixture()
	uid := f.user(t, nil)
	_, err := f.recommendations(t).Recommend(context.Background(), uid, 0)
	if !errors.Is(err, ErrProfileIncomplete) || !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}
}

func TestRecommend_ServesFromCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	uid := f.user(t, studentProfile())
	f.internship(t, internship.Internship{Title: "a", Organization: "o", RequiredSkills: []string{"Python"}})
	rec := f.recommendations(t)

	first, err := rec.Recommend(ctx, uid, 0)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	f.internship(t, internship.Internship{Title: "b", Organization: "o", RequiredSkills: []string{"Python"}, TotalPositions: 50})

	second, err := rec.Recommend(ctx, uid, 0)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("expected cached result, got %d vs %d", len(second), len(first))
	}

	rec.Invalidate(ctx, uid)
	third, _ := rec.Recommend(ctx, uid, 0)
	if len(third) != 2 {
		t.Fatalf("expected fresh result after invalidation, got %d", len(third))
	}
}

func TestDismiss_UnknownInternship(t *testing.T) {
	f := newFixture()
	uid := f.user(t, studentProfile())
	err := f.recommendations(t).Dismiss(context.Background(), uid, uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

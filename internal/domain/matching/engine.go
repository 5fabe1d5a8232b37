package matching

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"intern-match/internal/domain"
	"intern-match/internal/domain/internship"
	"intern-match/internal/domain/profile"

	"github.com/google/uuid"
)

type Eligibility string

const (
	// EligibilityAtLeast admits a profile whose level is at or above the
	// lowest level a posting lists.
	EligibilityAtLeast Eligibility = "at_least"
	// EligibilityExact admits a profile only when the posting lists its level.
	EligibilityExact Eligibility = "exact"
)

func ParseEligibility(raw string) (Eligibility, error) {
	switch Eligibility(strings.ToLower(strings.TrimSpace(raw))) {
	case "", EligibilityAtLeast:
		return EligibilityAtLeast, nil
	case EligibilityExact:
		return EligibilityExact, nil
	default:
		return "", fmt.Errorf("unknown eligibility policy %q", raw)
	}
}

type Options struct {
	SkillWeight    float64
	InterestWeight float64
	Eligibility    Eligibility
	// FallbackSize bounds the list returned when no candidate scores above
	// zero. Zero disables the fallback.
	FallbackSize int
}

func DefaultOptions() Options {
	return Options{
		SkillWeight:    0.6,
		InterestWeight: 0.4,
		Eligibility:    EligibilityAtLeast,
		FallbackSize:   5,
	}
}

var ErrInvalidWeights = errors.New("matching weights must be non-negative with a positive sum")

type Engine struct {
	opts Options
}

func NewEngine(opts Options) (*Engine, error) {
	if !finite(opts.SkillWeight) || !finite(opts.InterestWeight) ||
		opts.SkillWeight < 0 || opts.InterestWeight < 0 || opts.SkillWeight+opts.InterestWeight <= 0 {
		return nil, ErrInvalidWeights
	}
	if opts.FallbackSize < 0 {
		return nil, fmt.Errorf("fallback size must be >= 0, got %d", opts.FallbackSize)
	}
	el, err := ParseEligibility(string(opts.Eligibility))
	if err != nil {
		return nil, err
	}
	opts.Eligibility = el
	return &Engine{opts: opts}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (e *Engine) Options() Options {
	return e.opts
}

type Result struct {
	InternshipID     uuid.UUID
	Score            float64
	SkillOverlap     float64
	InterestOverlap  float64
	MatchedSkills    []string
	MatchedInterests []string
	Eligible         bool
	LocationMatch    bool
	Fallback         bool
	Rationale        string
}

type candidate struct {
	in  internship.Internship
	res Result

	skillTotal    int
	interestTotal int
}

// Recommend ranks catalog for p. Internships in excluded are dropped before
// scoring. The output is ordered by score, then total positions descending,
// then internship id ascending, and is deterministic for fixed inputs.
func (e *Engine) Recommend(p profile.Profile, catalog []internship.Internship, excluded map[uuid.UUID]struct{}) ([]Result, error) {
	level, err := profile.ParseEducationLevel(string(p.EducationLevel))
	if err != nil {
		return nil, err
	}

	skills := keySet(p.Skills)
	interests := keySet(p.Interests)
	locations := keySet(p.PreferredLocations)

	eligible := make([]candidate, 0, len(catalog))
	ineligible := make([]candidate, 0)
	for _, in := range catalog {
		if _, ok := excluded[in.ID]; ok {
			continue
		}
		if in.ID == uuid.Nil {
			return nil, domain.Validation("catalog entry without id")
		}
		c := candidate{in: in}
		c.res.InternshipID = in.ID
		c.res.LocationMatch = matchesLocation(in.Location, locations)
		if !e.eligible(level, in.EducationLevels) {
			ineligible = append(ineligible, c)
			continue
		}
		c.res.Eligible = true
		c.res.MatchedSkills, c.skillTotal = intersect(in.RequiredSkills, skills)
		c.res.MatchedInterests, c.interestTotal = intersect(in.Interests, interests)
		c.res.SkillOverlap = overlap(len(c.res.MatchedSkills), c.skillTotal)
		c.res.InterestOverlap = overlap(len(c.res.MatchedInterests), c.interestTotal)
		c.res.Score = (e.opts.SkillWeight*c.res.SkillOverlap + e.opts.InterestWeight*c.res.InterestOverlap) /
			(e.opts.SkillWeight + e.opts.InterestWeight)
		eligible = append(eligible, c)
	}

	slices.SortFunc(eligible, compareCandidates)

	out := make([]Result, 0, len(eligible))
	for _, c := range eligible {
		if c.res.Score <= 0 {
			continue
		}
		c.res.Rationale = rationale(c, level)
		out = append(out, c.res)
	}
	if len(out) > 0 {
		return out, nil
	}

	pool := eligible
	if len(pool) == 0 {
		pool = ineligible
		slices.SortFunc(pool, compareCandidates)
	}
	n := min(e.opts.FallbackSize, len(pool))
	for _, c := range pool[:n] {
		c.res.Fallback = true
		c.res.Rationale = rationale(c, level)
		out = append(out, c.res)
	}
	return out, nil
}

func (e *Engine) eligible(level profile.EducationLevel, accepted []string) bool {
	lowest := 0
	known := 0
	for _, raw := range accepted {
		lvl, err := profile.ParseEducationLevel(raw)
		if err != nil {
			continue
		}
		known++
		if e.opts.Eligibility == EligibilityExact && lvl == level {
			return true
		}
		if lowest == 0 || lvl.Rank() < lowest {
			lowest = lvl.Rank()
		}
	}
	if known == 0 {
		return true
	}
	if e.opts.Eligibility == EligibilityExact {
		return false
	}
	return level.Rank() >= lowest
}

func compareCandidates(a, b candidate) int {
	switch {
	case a.res.Score > b.res.Score:
		return -1
	case a.res.Score < b.res.Score:
		return 1
	}
	if a.in.TotalPositions != b.in.TotalPositions {
		return b.in.TotalPositions - a.in.TotalPositions
	}
	return bytes.Compare(a.in.ID[:], b.in.ID[:])
}

func keySet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		k := profile.Key(v)
		if k == "" {
			continue
		}
		out[k] = struct{}{}
	}
	return out
}

// intersect returns the entries of required present in have, keeping the
// posting's spelling and order, plus the number of distinct keys in required.
func intersect(required []string, have map[string]struct{}) ([]string, int) {
	out := make([]string, 0)
	seen := make(map[string]struct{}, len(required))
	for _, r := range required {
		k := profile.Key(r)
		if _, dup := seen[k]; dup || k == "" {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := have[k]; ok {
			out = append(out, strings.TrimSpace(r))
		}
	}
	return out, len(seen)
}

func overlap(matched, total int) float64 {
	return float64(matched) / float64(max(1, total))
}

func matchesLocation(location string, preferred map[string]struct{}) bool {
	loc := profile.Key(location)
	if loc == "" {
		return false
	}
	for p := range preferred {
		if strings.Contains(loc, p) {
			return true
		}
	}
	return false
}

func rationale(c candidate, level profile.EducationLevel) string {
	var parts []string
	if len(c.res.MatchedSkills) > 0 {
		parts = append(parts, fmt.Sprintf("matches %d of %d required skills (%s)",
			len(c.res.MatchedSkills), c.skillTotal, strings.Join(c.res.MatchedSkills, ", ")))
	}
	if len(c.res.MatchedInterests) > 0 {
		parts = append(parts, fmt.Sprintf("shares %d of %d interests (%s)",
			len(c.res.MatchedInterests), c.interestTotal, strings.Join(c.res.MatchedInterests, ", ")))
	}
	if c.res.Fallback {
		if c.in.TotalPositions > 0 {
			parts = append(parts, fmt.Sprintf("suggested for its %d open positions", c.in.TotalPositions))
		} else {
			parts = append(parts, "suggested while no closer match is available")
		}
	}
	if c.res.Eligible {
		parts = append(parts, fmt.Sprintf("open to %s applicants", level))
	} else {
		parts = append(parts, fmt.Sprintf("requires %s", strings.Join(c.in.EducationLevels, " or ")))
	}
	if c.res.LocationMatch {
		parts = append(parts, "in a preferred location")
	}
	s := strings.Join(parts, "; ")
	return strings.ToUpper(s[:1]) + s[1:]
}

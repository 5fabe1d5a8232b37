package profile

import (
	"fmt"
	"strings"

	"intern-match/internal/domain"

	"github.com/google/uuid"
)

type EducationLevel string

const (
	Level10th         EducationLevel = "10th"
	Level12th         EducationLevel = "12th"
	LevelDiploma      EducationLevel = "diploma"
	LevelGraduate     EducationLevel = "graduate"
	LevelPostgraduate EducationLevel = "postgraduate"
)

const (
	maxListItems  = 50
	maxItemLength = 100
)

var levelRank = map[EducationLevel]int{
	Level10th:         1,
	Level12th:         2,
	LevelDiploma:      3,
	LevelGraduate:     4,
	LevelPostgraduate: 5,
}

// Labels seen in imported catalogs that map onto the canonical levels.
var levelAliases = map[string]EducationLevel{
	"10":            Level10th,
	"ssc":           Level10th,
	"12":            Level12th,
	"hsc":           Level12th,
	"bachelor":      LevelGraduate,
	"bachelors":     LevelGraduate,
	"undergraduate": LevelGraduate,
	"ug":            LevelGraduate,
	"master":        LevelPostgraduate,
	"masters":       LevelPostgraduate,
	"phd":           LevelPostgraduate,
	"pg":            LevelPostgraduate,
	"post graduate": LevelPostgraduate,
	"post-graduate": LevelPostgraduate,
}

var ErrInvalidEducationLevel = domain.Validation("education_level must be one of 10th, 12th, diploma, graduate, postgraduate")

// ParseEducationLevel normalises a free-form label into a canonical level.
func ParseEducationLevel(raw string) (EducationLevel, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", ErrInvalidEducationLevel
	}
	lvl := EducationLevel(s)
	if _, ok := levelRank[lvl]; ok {
		return lvl, nil
	}
	if alias, ok := levelAliases[s]; ok {
		return alias, nil
	}
	return "", ErrInvalidEducationLevel
}

// Rank orders levels 10th < 12th < diploma < graduate < postgraduate.
// Unknown levels rank 0.
func (l EducationLevel) Rank() int {
	return levelRank[l]
}

func (l EducationLevel) Valid() bool {
	return l.Rank() > 0
}

type Scores struct {
	TenthPercentage   *float64 `json:"tenth_percentage,omitempty"`
	TwelfthPercentage *float64 `json:"twelfth_percentage,omitempty"`
	CGPA              *float64 `json:"cgpa,omitempty"`
}

// Profile is the matching-relevant part of a student record. It is persisted
// as a document keyed by UserID.
type Profile struct {
	UserID             uuid.UUID      `json:"-"`
	EducationLevel     EducationLevel `json:"education_level,omitempty"`
	FieldOfStudy       string         `json:"field_of_study,omitempty"`
	Skills             []string       `json:"skills"`
	Interests          []string       `json:"interests"`
	PreferredLocations []string       `json:"preferred_locations"`
	Scores             Scores         `json:"scores"`
}

// Complete reports whether the profile carries enough data to be matched.
func (p Profile) Complete() bool {
	return p.EducationLevel.Valid()
}

// Normalize trims values, canonicalises the education level and removes
// case-insensitive duplicates while keeping the first spelling and order.
func (p Profile) Normalize() (Profile, error) {
	if strings.TrimSpace(string(p.EducationLevel)) != "" {
		lvl, err := ParseEducationLevel(string(p.EducationLevel))
		if err != nil {
			return Profile{}, err
		}
		p.EducationLevel = lvl
	}
	p.FieldOfStudy = strings.TrimSpace(p.FieldOfStudy)

	var err error
	if p.Skills, err = normalizeList("skills", p.Skills); err != nil {
		return Profile{}, err
	}
	if p.Interests, err = normalizeList("interests", p.Interests); err != nil {
		return Profile{}, err
	}
	if p.PreferredLocations, err = normalizeList("preferred_locations", p.PreferredLocations); err != nil {
		return Profile{}, err
	}

	if err := checkRange("tenth_percentage", p.Scores.TenthPercentage, 0, 100); err != nil {
		return Profile{}, err
	}
	if err := checkRange("twelfth_percentage", p.Scores.TwelfthPercentage, 0, 100); err != nil {
		return Profile{}, err
	}
	if err := checkRange("cgpa", p.Scores.CGPA, 0, 10); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Key folds a skill, interest or location label for set comparisons.
func Key(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func normalizeList(field string, in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		if len(s) > maxItemLength {
			return nil, domain.Validation(fmt.Sprintf("%s entries must be at most %d characters", field, maxItemLength))
		}
		k := Key(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	if len(out) > maxListItems {
		return nil, domain.Validation(fmt.Sprintf("%s must have at most %d entries", field, maxListItems))
	}
	return out, nil
}

func checkRange(field string, v *float64, lo, hi float64) error {
	if v == nil {
		return nil
	}
	if *v < lo || *v > hi {
		return domain.Validation(fmt.Sprintf("%s must be between %g and %g", field, lo, hi))
	}
	return nil
}

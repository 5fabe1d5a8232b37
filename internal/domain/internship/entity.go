package internship

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Internship struct {
	ID              uuid.UUID
	Title           string
	Organization    string
	Department      string
	Location        string
	Duration        string
	Stipend         string
	Description     string
	RequiredSkills  []string
	Interests       []string
	EducationLevels []string
	TotalPositions  int
	AppliedCount    int
	CreatedAt       time.Time
}

// Full reports whether every advertised position already has an application.
// Postings with zero total positions are treated as uncapped.
func (i Internship) Full() bool {
	return i.TotalPositions > 0 && i.AppliedCount >= i.TotalPositions
}

// CatalogKey identifies a posting by title and organization, ignoring case
// and surrounding space.
func CatalogKey(title, organization string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "\x00" + strings.ToLower(strings.TrimSpace(organization))
}

// Dismissal hides an internship from a user's recommendations.
type Dismissal struct {
	UserID       uuid.UUID
	InternshipID uuid.UUID
	CreatedAt    time.Time
}

package dto

import (
	"time"

	"intern-match/internal/domain/internship"

	"github.com/google/uuid"
)

type InternshipRequest struct {
	Title           string   `json:"title"`
	Organization    string   `json:"organization"`
	Department      string   `json:"department"`
	Location        string   `json:"location"`
	Duration        string   `json:"duration"`
	Stipend         string   `json:"stipend"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	Interests       []string `json:"interests"`
	EducationLevels []string `json:"education_levels"`
	TotalPositions  int      `json:"total_positions"`
}

func (r InternshipRequest) Internship() internship.Internship {
	return internship.Internship{
		Title:           r.Title,
		Organization:    r.Organization,
		Department:      r.Department,
		Location:        r.Location,
		Duration:        r.Duration,
		Stipend:         r.Stipend,
		Description:     r.Description,
		RequiredSkills:  r.RequiredSkills,
		Interests:       r.Interests,
		EducationLevels: r.EducationLevels,
		TotalPositions:  r.TotalPositions,
	}
}

type InternshipResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Organization    string    `json:"organization"`
	Department      string    `json:"department"`
	Location        string    `json:"location"`
	Duration        string    `json:"duration"`
	Stipend         string    `json:"stipend"`
	Description     string    `json:"description"`
	RequiredSkills  []string  `json:"required_skills"`
	Interests       []string  `json:"interests"`
	EducationLevels []string  `json:"education_levels"`
	TotalPositions  int       `json:"total_positions"`
	AppliedCount    int       `json:"applied_count"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewInternshipResponse(in internship.Internship) InternshipResponse {
	return InternshipResponse{
		ID:              in.ID,
		Title:           in.Title,
		Organization:    in.Organization,
		Department:      in.Department,
		Location:        in.Location,
		Duration:        in.Duration,
		Stipend:         in.Stipend,
		Description:     in.Description,
		RequiredSkills:  nonNil(in.RequiredSkills),
		Interests:       nonNil(in.Interests),
		EducationLevels: nonNil(in.EducationLevels),
		TotalPositions:  in.TotalPositions,
		AppliedCount:    in.AppliedCount,
		CreatedAt:       in.CreatedAt,
	}
}

func NewInternshipList(items []internship.Internship) []InternshipResponse {
	out := make([]InternshipResponse, 0, len(items))
	for _, in := range items {
		out = append(out, NewInternshipResponse(in))
	}
	return out
}

type ImportResponse struct {
	Received int `json:"received"`
	Upserted int `json:"upserted"`
}

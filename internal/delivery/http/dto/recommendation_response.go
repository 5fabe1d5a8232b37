package dto

import (
	"intern-match/internal/usecase"

	"github.com/google/uuid"
)

type RecommendationResponse struct {
	InternshipID     uuid.UUID          `json:"internship_id"`
	Score            float64            `json:"score"`
	SkillOverlap     float64            `json:"skill_overlap"`
	InterestOverlap  float64            `json:"interest_overlap"`
	MatchedSkills    []string           `json:"matched_skills"`
	MatchedInterests []string           `json:"matched_interests"`
	Eligible         bool               `json:"eligible"`
	LocationMatch    bool               `json:"location_match"`
	Fallback         bool               `json:"fallback"`
	Rationale        string             `json:"rationale"`
	Internship       InternshipResponse `json:"internship"`
}

func NewRecommendationList(recs []usecase.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		m := r.Match
		out = append(out, RecommendationResponse{
			InternshipID:     m.InternshipID,
			Score:            m.Score,
			SkillOverlap:     m.SkillOverlap,
			InterestOverlap:  m.InterestOverlap,
			MatchedSkills:    nonNil(m.MatchedSkills),
			MatchedInterests: nonNil(m.MatchedInterests),
			Eligible:         m.Eligible,
			LocationMatch:    m.LocationMatch,
			Fallback:         m.Fallback,
			Rationale:        m.Rationale,
			Internship:       NewInternshipResponse(r.Internship),
		})
	}
	return out
}

type InternshipRefRequest struct {
	InternshipID string `json:"internship_id"`
}

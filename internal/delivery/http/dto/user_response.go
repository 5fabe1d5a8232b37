package dto

import (
	"time"

	"intern-match/internal/domain/profile"
	"intern-match/internal/domain/user"
	useruc "intern-match/internal/usecase/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone,omitempty"`
	Role                string    `json:"role"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		Phone:               u.Phone,
		Role:                string(u.Role),
		OnboardingCompleted: u.OnboardingCompleted,
		CreatedAt:           u.CreatedAt,
	}
}

type AuthResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

// ProfileRequest is the PUT /api/profile body. Fields not listed here are
// dropped by the decoder.
type ProfileRequest struct {
	Name               *string        `json:"name"`
	Phone              *string        `json:"phone"`
	EducationLevel     string         `json:"education_level"`
	FieldOfStudy       string         `json:"field_of_study"`
	Skills             []string       `json:"skills"`
	Interests          []string       `json:"interests"`
	PreferredLocations []string       `json:"preferred_locations"`
	Scores             profile.Scores `json:"scores"`
}

func (r ProfileRequest) Input() useruc.UpdateProfileInput {
	return useruc.UpdateProfileInput{
		Name:  r.Name,
		Phone: r.Phone,
		Profile: profile.Profile{
			EducationLevel:     profile.EducationLevel(r.EducationLevel),
			FieldOfStudy:       r.FieldOfStudy,
			Skills:             r.Skills,
			Interests:          r.Interests,
			PreferredLocations: r.PreferredLocations,
			Scores:             r.Scores,
		},
	}
}

type ProfileResponse struct {
	User               UserResponse   `json:"user"`
	EducationLevel     string         `json:"education_level"`
	FieldOfStudy       string         `json:"field_of_study"`
	Skills             []string       `json:"skills"`
	Interests          []string       `json:"interests"`
	PreferredLocations []string       `json:"preferred_locations"`
	Scores             profile.Scores `json:"scores"`
}

func NewProfileResponse(me useruc.Me) ProfileResponse {
	p := me.Profile
	return ProfileResponse{
		User:               NewUserResponse(me.User),
		EducationLevel:     string(p.EducationLevel),
		FieldOfStudy:       p.FieldOfStudy,
		Skills:             nonNil(p.Skills),
		Interests:          nonNil(p.Interests),
		PreferredLocations: nonNil(p.PreferredLocations),
		Scores:             p.Scores,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

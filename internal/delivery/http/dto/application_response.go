package dto

import (
	"time"

	"intern-match/internal/domain/application"
	"intern-match/internal/domain/bookmark"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	InternshipID uuid.UUID `json:"internship_id"`
	Status       string    `json:"status"`
	AppliedAt    time.Time `json:"applied_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		InternshipID: a.InternshipID,
		Status:       string(a.Status),
		AppliedAt:    a.AppliedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func NewApplicationList(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

type StatusRequest struct {
	Status string `json:"status"`
}

type BookmarkResponse struct {
	InternshipID uuid.UUID `json:"internship_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewBookmarkList(items []bookmark.Bookmark) []BookmarkResponse {
	out := make([]BookmarkResponse, 0, len(items))
	for _, b := range items {
		out = append(out, BookmarkResponse{InternshipID: b.InternshipID, CreatedAt: b.CreatedAt})
	}
	return out
}

type BookmarkToggleResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type ChatRequest struct {
	UserQuery string `json:"userQuery"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

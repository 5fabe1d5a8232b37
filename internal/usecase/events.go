package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventApplicationCreated       = "application.created"
	EventApplicationStatusChanged = "application.status_changed"
	EventBookmarkToggled          = "bookmark.toggled"
	EventCatalogUpdated           = "internships.updated"
)

type Event struct {
	Type          string    `json:"type"`
	UserID        uuid.UUID `json:"user_id,omitempty"`
	InternshipID  uuid.UUID `json:"internship_id,omitempty"`
	ApplicationID uuid.UUID `json:"application_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	PreviousState string    `json:"previous_status,omitempty"`
	Bookmarked    *bool     `json:"bookmarked,omitempty"`
	Count         int       `json:"count,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher forwards domain events to a broker. Publishing is best
// effort and never fails the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}

// Notifier pushes an event to the connected sessions of one user.
type Notifier interface {
	NotifyUser(userID uuid.UUID, e Event)
}

package bookmark

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	UserID       uuid.UUID
	InternshipID uuid.UUID
	CreatedAt    time.Time
}

type Repository interface {
	// Toggle removes an existing bookmark or creates a missing one and
	// reports the resulting state.
	Toggle(ctx context.Context, userID, internshipID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Bookmark, error)
}

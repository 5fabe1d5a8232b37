package profile

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error)
	// SaveProfile overwrites the stored document and marks onboarding complete.
	SaveProfile(ctx context.Context, p Profile) error
}

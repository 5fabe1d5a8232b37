package application

import (
	"context"

	"github.com/google/uuid"
)

type ApplyOptions struct {
	EnforceCapacity bool
}

type Repository interface {
	// Apply inserts the application and increments the internship's applied
	// count as one atomic unit. It returns internship.ErrNotFound,
	// ErrAlreadyApplied or ErrInternshipFull.
	Apply(ctx context.Context, a Application, opts ApplyOptions) (Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Application, error)
	List(ctx context.Context, status Status) ([]Application, error)
	ListInternshipIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// CompareAndSetStatus moves the application from one status to another
	// and returns ErrStatusChanged when the stored status is no longer from.
	CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to Status) (Application, error)
}

package internship

import (
	"context"
	"fmt"
	"strings"

	"intern-match/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = domain.NewError(domain.ErrNotFound, "internship not found")
	ErrDuplicate = domain.NewError(domain.ErrConflict, "internship with this title and organization already exists")
)

type Repository interface {
	List(ctx context.Context) ([]Internship, error)
	GetByID(ctx context.Context, id uuid.UUID) (Internship, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, in Internship) (Internship, error)
	// Upsert inserts postings or refreshes the descriptive fields of existing
	// ones matched by (title, organization). Counters are never overwritten.
	Upsert(ctx context.Context, items []Internship) (int, error)
}

type DismissalRepository interface {
	Dismiss(ctx context.Context, userID, internshipID uuid.UUID) error
	ListDismissedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Validate checks a posting before it enters the catalog.
func (i Internship) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return domain.Validation("title is required")
	}
	if strings.TrimSpace(i.Organization) == "" {
		return domain.Validation("organization is required")
	}
	if i.TotalPositions < 0 {
		return domain.Validation("total_positions must be >= 0")
	}
	if i.AppliedCount < 0 {
		return domain.Validation(fmt.Sprintf("applied_count must be >= 0, got %d", i.AppliedCount))
	}
	return nil
}

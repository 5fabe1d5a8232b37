package application

import (
	"strings"
	"time"

	"intern-match/internal/domain"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

var (
	ErrNotFound          = domain.NewError(domain.ErrNotFound, "application not found")
	ErrAlreadyApplied    = domain.NewError(domain.ErrConflict, "already applied to this internship")
	ErrInternshipFull    = domain.NewError(domain.ErrConflict, "internship is full")
	ErrInvalidStatus     = domain.Validation("status must be one of pending, accepted, rejected")
	ErrTerminalStatus    = domain.NewError(domain.ErrInvalidState, "application status is final")
	ErrInvalidTransition = domain.NewError(domain.ErrInvalidState, "invalid status transition")
	// ErrStatusChanged is returned by repositories when a compare-and-set lost
	// the race against another writer.
	ErrStatusChanged = domain.NewError(domain.ErrInvalidState, "application status changed concurrently")
)

type Application struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	InternshipID uuid.UUID
	Status       Status
	AppliedAt    time.Time
	UpdatedAt    time.Time
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CheckTransition allows pending -> accepted and pending -> rejected only.
func CheckTransition(from, to Status) error {
	if from.Terminal() {
		return ErrTerminalStatus
	}
	if from == StatusPending && (to == StatusAccepted || to == StatusRejected) {
		return nil
	}
	return ErrInvalidTransition
}

package user

import (
	"context"

	"intern-match/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = domain.NewError(domain.ErrNotFound, "user not found")
	ErrEmailTaken = domain.NewError(domain.ErrConflict, "email already registered")
)

type Repository interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateContact(ctx context.Context, id uuid.UUID, name, phone string) error
}

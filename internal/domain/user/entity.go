package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

type User struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	Phone               string
	PasswordHash        string
	Role                Role
	OnboardingCompleted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

package seeder

import (
	"context"
	"errors"
	"strings"
	"time"

	"intern-match/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrAdminPasswordMissing = errors.New("admin password not configured")

type AdminSeeder struct {
	Users     user.Repository
	AdminName string
	Email     string
	Password  string
}

func (AdminSeeder) Name() string { return "admin" }

// Run creates the admin account unless a user with the same email exists.
func (s AdminSeeder) Run(ctx context.Context) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" {
		return nil
	}
	if strings.TrimSpace(s.Password) == "" {
		return ErrAdminPasswordMissing
	}

	exists, err := s.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.Users.CreateUser(ctx, user.User{
		ID:           uuid.New(),
		Name:         s.AdminName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, user.ErrEmailTaken) {
		return nil
	}
	return err
}

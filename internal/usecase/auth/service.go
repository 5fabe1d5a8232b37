package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"intern-match/internal/domain"
	"intern-match/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = user.ErrEmailTaken
	ErrInvalidCredentials     = domain.NewError(domain.ErrAuth, "invalid credentials")
	ErrInvalidEmail           = domain.Validation("a valid email is required")
	ErrInvalidPassword        = domain.Validation("password must be at least 8 characters")
	ErrInvalidName            = domain.Validation("name is required")
	ErrInternal               = errors.New("internal error")
)

const maxNameLength = 100

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	now   func() time.Time
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, now: func() time.Time { return time.Now().UTC() }}
}

// Register creates a student account. Admin accounts only come from seeding.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidEmail
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > maxNameLength {
		return user.User{}, ErrInvalidName
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidPassword
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	now := s.now()
	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         user.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidCredentials
	}
	if in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}
	return email
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

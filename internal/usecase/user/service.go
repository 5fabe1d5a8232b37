package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"intern-match/internal/domain"
	"intern-match/internal/domain/profile"
	"intern-match/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidName = domain.Validation("name must be 1-100 characters")
	ErrInternal    = errors.New("internal error")
)

type Store interface {
	user.Repository
	profile.Repository
}

// UpdateProfileInput replaces the whole profile document. Name and Phone
// update the account only when set.
type UpdateProfileInput struct {
	Name    *string
	Phone   *string
	Profile profile.Profile
}

type Me struct {
	User    user.User
	Profile profile.Profile
}

// ProfileChangedFunc is called after a profile is saved.
type ProfileChangedFunc func(ctx context.Context, userID uuid.UUID)

type Service struct {
	store     Store
	onChanged ProfileChangedFunc
}

func NewService(store Store, onChanged ProfileChangedFunc) *Service {
	return &Service{store: store, onChanged: onChanged}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (Me, error) {
	usr, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return Me{}, wrap(err)
	}
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return Me{}, wrap(err)
	}
	return Me{User: sanitizeUser(usr), Profile: p}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (Me, error) {
	usr, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return Me{}, wrap(err)
	}

	p, err := in.Profile.Normalize()
	if err != nil {
		return Me{}, err
	}
	p.UserID = userID

	if in.Name != nil || in.Phone != nil {
		name, phone := usr.Name, usr.Phone
		if in.Name != nil {
			name = strings.TrimSpace(*in.Name)
			if name == "" || len(name) > 100 {
				return Me{}, ErrInvalidName
			}
		}
		if in.Phone != nil {
			phone = strings.TrimSpace(*in.Phone)
		}
		if err := s.store.UpdateContact(ctx, userID, name, phone); err != nil {
			return Me{}, wrap(err)
		}
	}

	if err := s.store.SaveProfile(ctx, p); err != nil {
		return Me{}, wrap(err)
	}
	if s.onChanged != nil {
		s.onChanged(ctx, userID)
	}
	return s.GetMe(ctx, userID)
}

func wrap(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

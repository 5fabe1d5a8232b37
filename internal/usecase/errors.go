package usecase

import (
	"errors"
	"fmt"

	"intern-match/internal/domain"
)

var (
	ErrUnauthorized        = domain.NewError(domain.ErrAuth, "unauthorized")
	ErrInvalidRefreshToken = domain.NewError(domain.ErrAuth, "invalid refresh token")
	ErrRefreshTokenExpired = domain.NewError(domain.ErrAuth, "refresh token expired")
	ErrProfileIncomplete   = domain.Validation("complete your profile (education level) before requesting recommendations")
	ErrInvalidLimit        = domain.Validation("limit must be between 1 and 100")
	ErrInternal            = errors.New("internal error")
)

// internal keeps domain errors intact and tags everything else as internal.
func internal(err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"intern-match/internal/domain"
	"intern-match/internal/domain/profile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyQuery = domain.Validation("userQuery is required")

type ChatRequest struct {
	Query   string
	Profile *profile.Profile
}

// Responder answers one chat turn. Implementations are stateless.
type Responder interface {
	Name() string
	Respond(ctx context.Context, req ChatRequest) (string, error)
}

type ChatUsecase interface {
	Ask(ctx context.Context, userID uuid.UUID, query string) (string, error)
}

type Chat struct {
	primary  Responder
	fallback Responder
	profiles profile.Repository
	maxLen   int
	log      *zap.Logger
}

// NewChatUsecase answers with primary and falls back when primary is nil,
// fails or returns nothing.
func NewChatUsecase(primary, fallback Responder, profiles profile.Repository, maxLen int, log *zap.Logger) *Chat {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chat{primary: primary, fallback: fallback, profiles: profiles, maxLen: maxLen, log: log.Named("chat")}
}

func (u *Chat) Ask(ctx context.Context, userID uuid.UUID, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if u.maxLen > 0 && utf8.RuneCountInString(query) > u.maxLen {
		return "", domain.Validation("userQuery is too long")
	}

	req := ChatRequest{Query: query}
	if u.profiles != nil && userID != uuid.Nil {
		p, err := u.profiles.GetProfile(ctx, userID)
		if err == nil {
			req.Profile = &p
		} else {
			u.log.Debug("chat without profile", zap.Stringer("user_id", userID), zap.Error(err))
		}
	}

	if u.primary != nil {
		answer, err := u.primary.Respond(ctx, req)
		answer = strings.TrimSpace(answer)
		if err == nil && answer != "" {
			return answer, nil
		}
		if err == nil {
			err = errors.New("empty answer")
		}
		u.log.Warn("primary responder failed", zap.String("responder", u.primary.Name()), zap.Error(err))
	}

	if u.fallback == nil {
		return "", ErrInternal
	}
	answer, err := u.fallback.Respond(ctx, req)
	if err != nil {
		return "", internal(err)
	}
	return answer, nil
}

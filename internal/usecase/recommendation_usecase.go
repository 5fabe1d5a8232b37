package usecase

import (
	"context"
	"time"

	"intern-match/internal/domain/application"
	"intern-match/internal/domain/internship"
	"intern-match/internal/domain/matching"
	"intern-match/internal/domain/profile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxRecommendationLimit = 100

type Recommendation struct {
	Match      matching.Result
	Internship internship.Internship
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]Recommendation, error)
	Dismiss(ctx context.Context, userID, internshipID uuid.UUID) error
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type Recommendations struct {
	engine       *matching.Engine
	profiles     profile.Repository
	internships  internship.Repository
	dismissals   internship.DismissalRepository
	applications application.Repository
	cache        Cache
	ttl          time.Duration
	maxResults   int
	log          *zap.Logger
}

type RecommendationDeps struct {
	Engine       *matching.Engine
	Profiles     profile.Repository
	Internships  internship.Repository
	Dismissals   internship.DismissalRepository
	Applications application.Repository
	Cache        Cache
	TTL          time.Duration
	MaxResults   int
	Log          *zap.Logger
}

func NewRecommendationUsecase(d RecommendationDeps) *Recommendations {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Recommendations{
		engine:       d.Engine,
		profiles:     d.Profiles,
		internships:  d.Internships,
		dismissals:   d.Dismissals,
		applications: d.Applications,
		cache:        cacheOrNop(d.Cache),
		ttl:          d.TTL,
		maxResults:   d.MaxResults,
		log:          log.Named("recommendations"),
	}
}

// Recommend ranks the catalog for the user, skipping internships the user
// already applied to or dismissed. limit <= 0 returns the configured maximum.
func (u *Recommendations) Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]Recommendation, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit < 0 || limit > maxRecommendationLimit {
		return nil, ErrInvalidLimit
	}

	key := RecommendationKey(userID)
	var out []Recommendation
	hit, err := u.cache.GetJSON(ctx, key, &out)
	if err != nil || !hit {
		out, err = u.compute(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := u.cache.SetJSON(ctx, key, out, u.ttl); err != nil {
			u.log.Warn("cache recommendations", zap.Stringer("user_id", userID), zap.Error(err))
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (u *Recommendations) compute(ctx context.Context, userID uuid.UUID) ([]Recommendation, error) {
	p, err := u.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	if !p.Complete() {
		return nil, ErrProfileIncomplete
	}

	catalog, err := u.internships.List(ctx)
	if err != nil {
		return nil, internal(err)
	}

	applied, err := u.applications.ListInternshipIDsByUser(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	dismissed, err := u.dismissals.ListDismissedIDs(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	excluded := make(map[uuid.UUID]struct{}, len(applied)+len(dismissed))
	for _, id := range applied {
		excluded[id] = struct{}{}
	}
	for _, id := range dismissed {
		excluded[id] = struct{}{}
	}

	results, err := u.engine.Recommend(p, catalog, excluded)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]internship.Internship, len(catalog))
	for _, in := range catalog {
		byID[in.ID] = in
	}
	out := make([]Recommendation, 0, len(results))
	for _, r := range results {
		out = append(out, Recommendation{Match: r, Internship: byID[r.InternshipID]})
		if u.maxResults > 0 && len(out) >= u.maxResults {
			break
		}
	}

	u.log.Debug("recommendations computed",
		zap.Stringer("user_id", userID),
		zap.Int("catalog", len(catalog)),
		zap.Int("excluded", len(excluded)),
		zap.Int("results", len(out)),
	)
	return out, nil
}

func (u *Recommendations) Dismiss(ctx context.Context, userID, internshipID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	exists, err := u.internships.ExistsByID(ctx, internshipID)
	if err != nil {
		return internal(err)
	}
	if !exists {
		return internship.ErrNotFound
	}
	if err := u.dismissals.Dismiss(ctx, userID, internshipID); err != nil {
		return internal(err)
	}
	u.Invalidate(ctx, userID)
	return nil
}

func (u *Recommendations) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := u.cache.Delete(ctx, RecommendationKey(userID)); err != nil {
		u.log.Warn("invalidate recommendations", zap.Stringer("user_id", userID), zap.Error(err))
	}
}

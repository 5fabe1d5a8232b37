package usecase

import (
	"context"
	"strings"
	"time"

	"intern-match/internal/domain"
	"intern-match/internal/domain/internship"
	"intern-match/internal/domain/profile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrImportInProgress = domain.NewError(domain.ErrConflict, "an internship import is already running")

type InternshipUsecase interface {
	List(ctx context.Context) ([]internship.Internship, error)
	Get(ctx context.Context, id uuid.UUID) (internship.Internship, error)
	Create(ctx context.Context, in internship.Internship) (internship.Internship, error)
	Import(ctx context.Context, items []internship.Internship) (int, error)
}

type Internships struct {
	repo      internship.Repository
	cache     Cache
	ttl       time.Duration
	publisher EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

func NewInternshipUsecase(repo internship.Repository, cache Cache, ttl time.Duration, publisher EventPublisher, log *zap.Logger) *Internships {
	if log == nil {
		log = zap.NewNop()
	}
	return &Internships{
		repo:      repo,
		cache:     cacheOrNop(cache),
		ttl:       ttl,
		publisher: publisher,
		log:       log.Named("internships"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *Internships) List(ctx context.Context) ([]internship.Internship, error) {
	var cached []internship.Internship
	if hit, err := u.cache.GetJSON(ctx, internshipListKey, &cached); err == nil && hit {
		return cached, nil
	}

	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, internal(err)
	}
	if err := u.cache.SetJSON(ctx, internshipListKey, items, u.ttl); err != nil {
		u.log.Warn("cache internship list", zap.Error(err))
	}
	return items, nil
}

func (u *Internships) Get(ctx context.Context, id uuid.UUID) (internship.Internship, error) {
	in, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return internship.Internship{}, internal(err)
	}
	return in, nil
}

func (u *Internships) Create(ctx context.Context, in internship.Internship) (internship.Internship, error) {
	in, err := normalizeInternship(in)
	if err != nil {
		return internship.Internship{}, err
	}
	in.ID = uuid.New()
	in.AppliedCount = 0
	in.CreatedAt = u.now()

	created, err := u.repo.Create(ctx, in)
	if err != nil {
		return internship.Internship{}, internal(err)
	}
	u.invalidate(ctx)
	u.publish(ctx, Event{Type: EventCatalogUpdated, InternshipID: created.ID, Count: 1, OccurredAt: u.now()})
	return created, nil
}

// Import upserts a batch keyed by title and organization, collapsing repeats
// within the batch. Only one import runs at a time across processes sharing
// the cache.
func (u *Internships) Import(ctx context.Context, items []internship.Internship) (int, error) {
	acquired, err := u.cache.SetIfNotExists(ctx, importLockKey, "1", 5*time.Minute)
	if err == nil && !acquired {
		return 0, ErrImportInProgress
	}
	defer func() {
		_ = u.cache.Delete(context.WithoutCancel(ctx), importLockKey)
	}()

	clean := make([]internship.Internship, 0, len(items))
	slot := make(map[string]int, len(items))
	for i, in := range items {
		n, err := normalizeInternship(in)
		if err != nil {
			u.log.Warn("skip invalid internship", zap.Int("index", i), zap.String("title", in.Title), zap.Error(err))
			continue
		}
		// Later records for the same posting replace earlier ones.
		key := internship.CatalogKey(n.Title, n.Organization)
		if j, ok := slot[key]; ok {
			clean[j] = n
			continue
		}
		slot[key] = len(clean)
		clean = append(clean, n)
	}
	if len(clean) == 0 {
		return 0, domain.Validation("no valid internships to import")
	}

	n, err := u.repo.Upsert(ctx, clean)
	if err != nil {
		return 0, internal(err)
	}
	u.invalidate(ctx)
	u.publish(ctx, Event{Type: EventCatalogUpdated, Count: n, OccurredAt: u.now()})
	u.log.Info("internships imported", zap.Int("received", len(items)), zap.Int("upserted", n))
	return n, nil
}

// invalidate drops the catalog cache and every cached recommendation list.
func (u *Internships) invalidate(ctx context.Context) {
	if err := u.cache.Delete(ctx, internshipListKey); err != nil {
		u.log.Warn("invalidate internship list", zap.Error(err))
	}
	if err := u.cache.DeleteByPattern(ctx, recommendationPattern); err != nil {
		u.log.Warn("invalidate recommendations", zap.Error(err))
	}
}

func (u *Internships) publish(ctx context.Context, e Event) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, e); err != nil {
		u.log.Warn("publish event", zap.String("type", e.Type), zap.Error(err))
	}
}

func normalizeInternship(in internship.Internship) (internship.Internship, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Organization = strings.TrimSpace(in.Organization)
	in.Department = strings.TrimSpace(in.Department)
	in.Location = strings.TrimSpace(in.Location)
	in.Duration = strings.TrimSpace(in.Duration)
	in.Stipend = strings.TrimSpace(in.Stipend)
	in.Description = strings.TrimSpace(in.Description)
	in.RequiredSkills = dedupLabels(in.RequiredSkills)
	in.Interests = dedupLabels(in.Interests)

	levels := make([]string, 0, len(in.EducationLevels))
	seen := map[profile.EducationLevel]struct{}{}
	for _, raw := range in.EducationLevels {
		lvl, err := profile.ParseEducationLevel(raw)
		if err != nil {
			return internship.Internship{}, domain.Validation("unknown education level " + strings.TrimSpace(raw))
		}
		if _, ok := seen[lvl]; ok {
			continue
		}
		seen[lvl] = struct{}{}
		levels = append(levels, string(lvl))
	}
	in.EducationLevels = levels

	if err := in.Validate(); err != nil {
		return internship.Internship{}, err
	}
	return in, nil
}

func dedupLabels(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.Join(strings.Fields(s), " ")
		k := profile.Key(s)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

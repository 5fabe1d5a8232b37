package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"intern-match/internal/domain/application"
	"intern-match/internal/domain/bookmark"
	"intern-match/internal/domain/internship"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LedgerUsecase interface {
	Apply(ctx context.Context, userID, internshipID uuid.UUID) (application.Application, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	ListAllApplications(ctx context.Context, status string) ([]application.Application, error)
	SetApplicationStatus(ctx context.Context, applicationID uuid.UUID, status string) (application.Application, error)
	ToggleBookmark(ctx context.Context, userID, internshipID uuid.UUID) (bool, error)
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]bookmark.Bookmark, error)
}

type LedgerDeps struct {
	Applications    application.Repository
	Bookmarks       bookmark.Repository
	Internships     internship.Repository
	Cache           Cache
	Publisher       EventPublisher
	Notifier        Notifier
	EnforceCapacity bool
	Log             *zap.Logger
}

// Ledger records applications and bookmarks. Every successful write emits an
// event to the broker and to the user's live sessions.
type Ledger struct {
	applications    application.Repository
	bookmarks       bookmark.Repository
	internships     internship.Repository
	cache           Cache
	publisher       EventPublisher
	notifier        Notifier
	enforceCapacity bool
	log             *zap.Logger
	now             func() time.Time
}

func NewLedgerUsecase(d LedgerDeps) *Ledger {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{
		applications:    d.Applications,
		bookmarks:       d.Bookmarks,
		internships:     d.Internships,
		cache:           cacheOrNop(d.Cache),
		publisher:       d.Publisher,
		notifier:        d.Notifier,
		enforceCapacity: d.EnforceCapacity,
		log:             log.Named("ledger"),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (u *Ledger) Apply(ctx context.Context, userID, internshipID uuid.UUID) (application.Application, error) {
	if userID == uuid.Nil {
		return application.Application{}, ErrUnauthorized
	}
	if internshipID == uuid.Nil {
		return application.Application{}, internship.ErrNotFound
	}

	a, err := u.applications.Apply(ctx, application.Application{
		ID:           uuid.New(),
		UserID:       userID,
		InternshipID: internshipID,
		AppliedAt:    u.now(),
	}, application.ApplyOptions{EnforceCapacity: u.enforceCapacity})
	if err != nil {
		return application.Application{}, internal(err)
	}

	u.dropCaches(ctx, userID)
	u.emit(ctx, Event{
		Type:          EventApplicationCreated,
		UserID:        a.UserID,
		InternshipID:  a.InternshipID,
		ApplicationID: a.ID,
		Status:        string(a.Status),
		OccurredAt:    a.AppliedAt,
	})
	return a, nil
}

func (u *Ledger) ListApplications(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}

func (u *Ledger) ListAllApplications(ctx context.Context, status string) ([]application.Application, error) {
	var st application.Status
	if strings.TrimSpace(status) != "" {
		parsed, err := application.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	out, err := u.applications.List(ctx, st)
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}

// SetApplicationStatus moves a pending application to accepted or rejected.
// The write is a compare-and-set on the status read here, so two admins
// racing on the same application cannot both succeed.
func (u *Ledger) SetApplicationStatus(ctx context.Context, applicationID uuid.UUID, status string) (application.Application, error) {
	to, err := application.ParseStatus(status)
	if err != nil {
		return application.Application{}, err
	}

	cur, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		return application.Application{}, internal(err)
	}
	if err := application.CheckTransition(cur.Status, to); err != nil {
		return application.Application{}, err
	}

	updated, err := u.applications.CompareAndSetStatus(ctx, applicationID, cur.Status, to)
	if err != nil {
		if errors.Is(err, application.ErrStatusChanged) {
			return application.Application{}, application.ErrTerminalStatus
		}
		return application.Application{}, internal(err)
	}

	u.emit(ctx, Event{
		Type:          EventApplicationStatusChanged,
		UserID:        updated.UserID,
		InternshipID:  updated.InternshipID,
		ApplicationID: updated.ID,
		Status:        string(updated.Status),
		PreviousState: string(cur.Status),
		OccurredAt:    updated.UpdatedAt,
	})
	return updated, nil
}

func (u *Ledger) ToggleBookmark(ctx context.Context, userID, internshipID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, ErrUnauthorized
	}
	exists, err := u.internships.ExistsByID(ctx, internshipID)
	if err != nil {
		return false, internal(err)
	}
	if !exists {
		return false, internship.ErrNotFound
	}

	on, err := u.bookmarks.Toggle(ctx, userID, internshipID)
	if err != nil {
		return false, internal(err)
	}
	u.emit(ctx, Event{
		Type:         EventBookmarkToggled,
		UserID:       userID,
		InternshipID: internshipID,
		Bookmarked:   &on,
		OccurredAt:   u.now(),
	})
	return on, nil
}

func (u *Ledger) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]bookmark.Bookmark, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}

func (u *Ledger) dropCaches(ctx context.Context, userID uuid.UUID) {
	if err := u.cache.Delete(ctx, RecommendationKey(userID)); err != nil {
		u.log.Warn("invalidate recommendations", zap.Stringer("user_id", userID), zap.Error(err))
	}
	if err := u.cache.Delete(ctx, internshipListKey); err != nil {
		u.log.Warn("invalidate internship list", zap.Error(err))
	}
}

func (u *Ledger) emit(ctx context.Context, e Event) {
	if u.notifier != nil && e.UserID != uuid.Nil {
		u.notifier.NotifyUser(e.UserID, e)
	}
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, e); err != nil {
		u.log.Warn("publish event", zap.String("type", e.Type), zap.Error(err))
	}
}

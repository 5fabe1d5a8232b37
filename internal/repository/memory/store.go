// Package memory keeps every repository in process memory. It backs the
// memory database driver and the handler tests.
package memory

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"intern-match/internal/domain/application"
	"intern-match/internal/domain/bookmark"
	"intern-match/internal/domain/internship"
	"intern-match/internal/domain/profile"
	"intern-match/internal/domain/user"

	"github.com/google/uuid"
)

type pair struct {
	userID       uuid.UUID
	internshipID uuid.UUID
}

type Store struct {
	mu sync.RWMutex

	users    map[uuid.UUID]user.User
	emails   map[string]uuid.UUID
	profiles map[uuid.UUID]profile.Profile

	internships map[uuid.UUID]internship.Internship
	catalogKeys map[string]uuid.UUID

	applications map[uuid.UUID]application.Application
	applied      map[pair]uuid.UUID

	bookmarks  map[pair]time.Time
	dismissals map[pair]time.Time

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:        map[uuid.UUID]user.User{},
		emails:       map[string]uuid.UUID{},
		profiles:     map[uuid.UUID]profile.Profile{},
		internships:  map[uuid.UUID]internship.Internship{},
		catalogKeys:  map[string]uuid.UUID{},
		applications: map[uuid.UUID]application.Application{},
		applied:      map[pair]uuid.UUID{},
		bookmarks:    map[pair]time.Time{},
		dismissals:   map[pair]time.Time{},
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Store) Internships() *InternshipRepository { return &InternshipRepository{s: s} }

func (s *Store) Applications() *ApplicationRepository { return &ApplicationRepository{s: s} }

func (s *Store) Bookmarks() *BookmarkRepository { return &BookmarkRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) CreateUser(_ context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if _, ok := r.s.emails[email]; ok {
		return user.ErrEmailTaken
	}
	u.Email = email
	r.s.users[u.ID] = u
	r.s.emails[email] = u.ID
	return nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.s.users[id], nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok, nil
}

func (r *UserRepository) UpdateContact(_ context.Context, id uuid.UUID, name, phone string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Name = name
	u.Phone = phone
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u
	return nil
}

func (r *UserRepository) GetProfile(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.users[userID]; !ok {
		return profile.Profile{}, user.ErrNotFound
	}
	p := cloneProfile(r.s.profiles[userID])
	p.UserID = userID
	return p, nil
}

func (r *UserRepository) SaveProfile(_ context.Context, p profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[p.UserID]
	if !ok {
		return user.ErrNotFound
	}
	r.s.profiles[p.UserID] = cloneProfile(p)
	u.OnboardingCompleted = true
	u.UpdatedAt = r.s.now()
	r.s.users[p.UserID] = u
	return nil
}

type InternshipRepository struct{ s *Store }

func (r *InternshipRepository) List(_ context.Context) ([]internship.Internship, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]internship.Internship, 0, len(r.s.internships))
	for _, in := range r.s.internships {
		out = append(out, cloneInternship(in))
	}
	slices.SortFunc(out, func(a, b internship.Internship) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func (r *InternshipRepository) GetByID(_ context.Context, id uuid.UUID) (internship.Internship, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	in, ok := r.s.internships[id]
	if !ok {
		return internship.Internship{}, internship.ErrNotFound
	}
	return cloneInternship(in), nil
}

func (r *InternshipRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.internships[id]
	return ok, nil
}

func (r *InternshipRepository) Create(_ context.Context, in internship.Internship) (internship.Internship, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := internship.CatalogKey(in.Title, in.Organization)
	if _, ok := r.s.catalogKeys[key]; ok {
		return internship.Internship{}, internship.ErrDuplicate
	}
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = r.s.now()
	}
	in = cloneInternship(in)
	r.s.internships[in.ID] = in
	r.s.catalogKeys[key] = in.ID
	return cloneInternship(in), nil
}

func (r *InternshipRepository) Upsert(_ context.Context, items []internship.Internship) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, in := range items {
		key := internship.CatalogKey(in.Title, in.Organization)
		if id, ok := r.s.catalogKeys[key]; ok {
			cur := r.s.internships[id]
			in.ID = cur.ID
			in.AppliedCount = cur.AppliedCount
			in.CreatedAt = cur.CreatedAt
			r.s.internships[id] = cloneInternship(in)
			continue
		}
		if in.ID == uuid.Nil {
			in.ID = uuid.New()
		}
		in.AppliedCount = 0
		in.CreatedAt = r.s.now()
		r.s.internships[in.ID] = cloneInternship(in)
		r.s.catalogKeys[key] = in.ID
	}
	return len(items), nil
}

func (r *InternshipRepository) Dismiss(_ context.Context, userID, internshipID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.internships[internshipID]; !ok {
		return internship.ErrNotFound
	}
	k := pair{userID: userID, internshipID: internshipID}
	if _, ok := r.s.dismissals[k]; !ok {
		r.s.dismissals[k] = r.s.now()
	}
	return nil
}

func (r *InternshipRepository) ListDismissedIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]uuid.UUID, 0)
	for k := range r.s.dismissals {
		if k.userID == userID {
			out = append(out, k.internshipID)
		}
	}
	return out, nil
}

type ApplicationRepository struct{ s *Store }

// Apply holds the store lock across the duplicate check, the insert and the
// counter increment.
func (r *ApplicationRepository) Apply(_ context.Context, a application.Application, opts application.ApplyOptions) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	in, ok := r.s.internships[a.InternshipID]
	if !ok {
		return application.Application{}, internship.ErrNotFound
	}
	if _, ok := r.s.users[a.UserID]; !ok {
		return application.Application{}, user.ErrNotFound
	}
	k := pair{userID: a.UserID, internshipID: a.InternshipID}
	if _, ok := r.s.applied[k]; ok {
		return application.Application{}, application.ErrAlreadyApplied
	}
	if opts.EnforceCapacity && in.Full() {
		return application.Application{}, application.ErrInternshipFull
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = r.s.now()
	}
	a.UpdatedAt = a.AppliedAt
	a.Status = application.StatusPending

	r.s.applications[a.ID] = a
	r.s.applied[k] = a.ID
	in.AppliedCount++
	r.s.internships[in.ID] = in
	return a, nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (r *ApplicationRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool { return a.UserID == userID }), nil
}

func (r *ApplicationRepository) List(_ context.Context, status application.Status) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool { return status == "" || a.Status == status }), nil
}

func (r *ApplicationRepository) ListInternshipIDsByUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]uuid.UUID, 0)
	for k := range r.s.applied {
		if k.userID == userID {
			out = append(out, k.internshipID)
		}
	}
	return out, nil
}

func (r *ApplicationRepository) CompareAndSetStatus(_ context.Context, id uuid.UUID, from, to application.Status) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	if a.Status != from {
		return application.Application{}, application.ErrStatusChanged
	}
	a.Status = to
	a.UpdatedAt = r.s.now()
	r.s.applications[id] = a
	return a, nil
}

func (r *ApplicationRepository) filter(keep func(application.Application) bool) []application.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]application.Application, 0)
	for _, a := range r.s.applications {
		if keep(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b application.Application) int {
		if c := b.AppliedAt.Compare(a.AppliedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return out
}

type BookmarkRepository struct{ s *Store }

func (r *BookmarkRepository) Toggle(_ context.Context, userID, internshipID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.internships[internshipID]; !ok {
		return false, internship.ErrNotFound
	}
	k := pair{userID: userID, internshipID: internshipID}
	if _, ok := r.s.bookmarks[k]; ok {
		delete(r.s.bookmarks, k)
		return false, nil
	}
	r.s.bookmarks[k] = r.s.now()
	return true, nil
}

func (r *BookmarkRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]bookmark.Bookmark, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]bookmark.Bookmark, 0)
	for k, at := range r.s.bookmarks {
		if k.userID == userID {
			out = append(out, bookmark.Bookmark{UserID: k.userID, InternshipID: k.internshipID, CreatedAt: at})
		}
	}
	slices.SortFunc(out, func(a, b bookmark.Bookmark) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.InternshipID[:], b.InternshipID[:])
	})
	return out, nil
}

func cloneInternship(in internship.Internship) internship.Internship {
	in.RequiredSkills = slices.Clone(in.RequiredSkills)
	in.Interests = slices.Clone(in.Interests)
	in.EducationLevels = slices.Clone(in.EducationLevels)
	return in
}

func cloneProfile(p profile.Profile) profile.Profile {
	p.Skills = slices.Clone(p.Skills)
	p.Interests = slices.Clone(p.Interests)
	p.PreferredLocations = slices.Clone(p.PreferredLocations)
	return p
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"intern-match/internal/domain/internship"
	"intern-match/internal/domain/matching"
	"intern-match/internal/domain/profile"
	"intern-match/internal/domain/user"
	"intern-match/internal/repository/memory"

	"github.com/google/uuid"
)

type fakeCache struct {
	mu    sync.Mutex
	items map[string][]byte
	locks map[string]bool
	gets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string][]byte{}, locks: map[string]bool{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	delete(c.locks, key)
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]Event
}

func (n *recordingNotifier) NotifyUser(userID uuid.UUID, e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sent == nil {
		n.sent = map[uuid.UUID][]Event{}
	}
	n.sent[userID] = append(n.sent[userID], e)
}

type stubResponder struct {
	name   string
	answer string
	err    error
	calls  int
	last   ChatRequest
}

func (s *stubResponder) Name() string { return s.name }

func (s *stubResponder) Respond(_ context.Context, req ChatRequest) (string, error) {
	s.calls++
	s.last = req
	return s.answer, s.err
}

var errBoom = errors.New("boom")

type fixture struct {
	store *memory.Store
	cache *fakeCache
	pub   *recordingPublisher
	note  *recordingNotifier
}

func newFixture() fixture {
	return fixture{store: memory.New(), cache: newFakeCache(), pub: &recordingPublisher{}, note: &recordingNotifier{}}
}

func (f fixture) user(t *testing.T, p *profile.Profile) uuid.UUID {
	t.Helper()
	id := uuid.New()
	ctx := context.Background()
	if err := f.store.Users().CreateUser(ctx, user.User{ID: id, Name: "S", Email: id.String() + "@example.com", Role: user.RoleStudent}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if p != nil {
		cp := *p
		cp.UserID = id
		if err := f.store.Users().SaveProfile(ctx, cp); err != nil {
			t.Fatalf("save profile: %v", err)
		}
	}
	return id
}

func (f fixture) internship(t *testing.T, in internship.Internship) internship.Internship {
	t.Helper()
	created, err := f.store.Internships().Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create internship: %v", err)
	}
	return created
}

func (f fixture) ledger(enforce bool) *Ledger {
	return NewLedgerUsecase(LedgerDeps{
		Applications:    f.store.Applications(),
		Bookmarks:       f.store.Bookmarks(),
		Internships:     f.store.Internships(),
		Cache:           f.cache,
		Publisher:       f.pub,
		Notifier:        f.note,
		EnforceCapacity: enforce,
	})
}

func (f fixture) recommendations(t *testing.T) *Recommendations {
	t.Helper()
	engine, err := matching.NewEngine(matching.DefaultOptions())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return NewRecommendationUsecase(RecommendationDeps{
		Engine:       engine,
		Profiles:     f.store.Users(),
		Internships:  f.store.Internships(),
		Dismissals:   f.store.Internships(),
		Applications: f.store.Applications(),
		Cache:        f.cache,
		TTL:          time.Minute,
		MaxResults:   50,
	})
}

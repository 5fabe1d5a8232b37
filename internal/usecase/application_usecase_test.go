package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"intern-match/internal/domain"
	"intern-match/internal/domain/application"
	"intern-match/internal/domain/internship"

	"github.com/google/uuid"
)

func TestLedger_ApplyTwiceConflicts(t *testing.T) {
	f := newFixture()
	uid := f.user(t, nil)
	in := f.internship(t, internship.Internship{Title: "Data Science Intern", Organization: "DataLabs", TotalPositions: 2})
	uc := f.ledger(false)
	ctx := context.Background()

	a, err := uc.Apply(ctx, uid, in.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if a.Status != application.StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}
	if _, err := uc.Apply(ctx, uid, in.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	got, _ := f.store.Internships().GetByID(ctx, in.ID)
	if got.AppliedCount != 1 {
		t.Fatalf("applied count = %d, want 1", got.AppliedCount)
	}
	if n := len(f.note.sent[uid]); n != 1 {
		t.Fatalf("expected one notification, got %d", n)
	}
	if types := f.pub.types(); len(types) != 1 || types[0] != EventApplicationCreated {
		t.Fatalf("unexpected events %v", types)
	}
}

func TestLedger_ConcurrentApplySameUser(t *testing.T) {
	f := newFixture()
	uid := f.user(t, nil)
	in := f.internship(t, internship.Internship{Title: "t", Organization: "o", TotalPositions: 5})
	uc := f.ledger(false)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Apply(context.Background(), uid, in.ID)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if !errors.Is(err, domain.ErrConflict) {
				t.Errorf("unexpected err: %v", err)
			}
		}()
	}
	wg.Wait()
	if succeeded != 1 {
		t.Fatalf("expected exactly one success, got %d", succeeded)
	}
}

func TestLedger_ApplyUnknownInternship(t *testing.T) {
	f := newFixture()
	uid := f.user(t, nil)
	uc := f.ledger(false)

	_, err := uc.Apply(context.Background(), uid, uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	list, _ := uc.ListApplications(context.Background(), uid)
	if len(list) != 0 {
		t.Fatalf("expected no applications, got %d", len(list))
	}
	if len(f.pub.types()) != 0 {
		t.Fatalf("no event expected on failure")
	}
}

func TestLedger_CapacitySwitch(t *testing.T) {
	f := newFixture()
	in := f.internship(t, internship.Internship{Title: "t", Organization: "o", TotalPositions: 1})
	a, b := f.user(t, nil), f.user(t, nil)
	ctx := context.Background()

	enforced := f.ledger(true)
	if _, err := enforced.Apply(ctx, a, in.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}
	_, err := enforced.Apply(ctx, b, in.ID)
	if !errors.Is(err, application.ErrInternshipFull) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected internship full conflict, got %v", err)
	}

	relaxed := f.ledger(false)
	if _, err := relaxed.Apply(ctx, b, in.ID); err != nil {
		t.Fatalf("capacity is not enforced by default: %v", err)
	}
}

func TestLedger_SetApplicationStatus(t *testing.T) {
	f := newFixture()
	uid := f.user(t, nil)
	in := f.internship(t, internship.Internship{Title: "t", Organization: "o"})
	uc := f.ledger(false)
	ctx := context.Background()

	a, err := uc.Apply(ctx, uid, in.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := uc.SetApplicationStatus(ctx, a.ID, "interviewing"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := uc.SetApplicationStatus(ctx, uuid.New(), "accepted"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	updated, err := uc.SetApplicationStatus(ctx, a.ID, "accepted")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if updated.Status != application.StatusAccepted {
		t.Fatalf("unexpected status %s", updated.Status)
	}

	for _, next := range []string{"rejected", "pending", "accepted"} {
		if _, err := uc.SetApplicationStatus(ctx, a.ID, next); !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("accepted -> %s: expected invalid state, got %v", next, err)
		}
	}

	accepted, err := uc.ListAllApplications(ctx, "accepted")
	if err != nil || len(accepted) != 1 {
		t.Fatalf("expected one accepted application, got %d (%v)", len(accepted), err)
	}
	pending, _ := uc.ListAllApplications(ctx, "pending")
	if len(pending) != 0 {
		t.Fatalf("expected no pending applications, got %d", len(pending))
	}
	if _, err := uc.ListAllApplications(ctx, "bogus"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	last := f.note.sent[uid][len(f.note.sent[uid])-1]
	if last.Type != EventApplicationStatusChanged || last.Status != "accepted" || last.PreviousState != "pending" {
		t.Fatalf("unexpected notification %+v", last)
	}
}

func TestLedger_ToggleBookmarkTwiceRestores(t *testing.T) {
	f := newFixture()
	uid := f.user(t, nil)
	in := f.internship(t, internship.Internship{Title: "t", Organization: "o"})
	uc := f.ledger(false)
	ctx := context.Background()

	first, err := uc.ToggleBookmark(ctx, uid, in.ID)
	if err != nil || !first {
		t.Fatalf("first toggle: %v %v", first, err)
	}
	list, _ := uc.ListBookmarks(ctx, uid)
	if len(list) != 1 {
		t.Fatalf("expected one bookmark, got %d", len(list))
	}
	second, err := uc.ToggleBookmark(ctx, uid, in.ID)
	if err != nil || second {
		t.Fatalf("second toggle: %v %v", second, err)
	}
	if _, err := uc.ToggleBookmark(ctx, uid, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLedger_PublisherFailureDoesNotFailApply(t *testing.T) {
	f := newFixture()
	f.pub.err = errBoom
	uid := f.user(t, nil)
	in := f.internship(t, internship.Internship{Title: "t", Organization: "o"})

	if _, err := f.ledger(false).Apply(context.Background(), uid, in.ID); err != nil {
		t.Fatalf("apply should succeed when the broker fails: %v", err)
	}
}

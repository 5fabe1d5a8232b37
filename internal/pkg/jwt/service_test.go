package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssue_AccessCarriesRole(t *testing.T) {
	svc := NewHMACService("access", "refresh", time.Minute, time.Hour)
	id := uuid.New()

	pair, err := svc.Issue(Subject{UserID: id, Email: "a@example.com", Role: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	c, err := svc.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if c.UserID != id || c.Role != "admin" || c.Email != "a@example.com" {
		t.Fatalf("unexpected claims %+v", c)
	}

	r, err := svc.ParseRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if r.UserID != id || r.Role != "" {
		t.Fatalf("refresh token should only identify the user, got %+v", r)
	}
}

func TestParse_RejectsSwappedTokens(t *testing.T) {
	svc := NewHMACService("same", "same", time.Minute, time.Hour)
	pair, err := svc.Issue(Subject{UserID: uuid.New(), Role: "student"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.ParseAccess(pair.RefreshToken); !errors.Is(err, ErrWrongType) {
		t.Fatalf("expected ErrWrongType for refresh used as access, got %v", err)
	}
	if _, err := svc.ParseRefresh(pair.AccessToken); !errors.Is(err, ErrWrongType) {
		t.Fatalf("expected ErrWrongType for access used as refresh, got %v", err)
	}
}

func TestParse_Expired(t *testing.T) {
	svc := NewHMACService("access", "refresh", time.Minute, time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return past }

	pair, err := svc.Issue(Subject{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	svc.now = time.Now
	if _, err := svc.ParseRefresh(pair.RefreshToken); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	a := NewHMACService("access", "refresh", time.Minute, time.Hour)
	b := NewHMACService("other", "other2", time.Minute, time.Hour)

	pair, err := a.Issue(Subject{UserID: uuid.New(), Role: "student"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := b.ParseAccess(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestIssue_RequiresConfiguration(t *testing.T) {
	svc := NewHMACService("", "refresh", time.Minute, time.Hour)
	if _, err := svc.Issue(Subject{UserID: uuid.New()}); err == nil {
		t.Fatalf("expected error without access secret")
	}
	if _, err := NewHMACService("a", "r", time.Minute, time.Hour).Issue(Subject{}); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for nil subject, got %v", err)
	}
}

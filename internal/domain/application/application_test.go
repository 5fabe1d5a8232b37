package application

import (
	"errors"
	"testing"

	"intern-match/internal/domain"
)

func TestCheckTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		kind     error
	}{
		{StatusPending, StatusAccepted, nil},
		{StatusPending, StatusRejected, nil},
		{StatusPending, StatusPending, domain.ErrInvalidState},
		{StatusAccepted, StatusRejected, domain.ErrInvalidState},
		{StatusAccepted, StatusPending, domain.ErrInvalidState},
		{StatusAccepted, StatusAccepted, domain.ErrInvalidState},
		{StatusRejected, StatusAccepted, domain.ErrInvalidState},
		{StatusRejected, StatusPending, domain.ErrInvalidState},
	}
	for _, tc := range cases {
		err := CheckTransition(tc.from, tc.to)
		if tc.kind == nil {
			if err != nil {
				t.Fatalf("%s -> %s: unexpected err %v", tc.from, tc.to, err)
			}
			continue
		}
		if !errors.Is(err, tc.kind) {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.kind, err)
		}
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Accepted ")
	if err != nil || s != StatusAccepted {
		t.Fatalf("unexpected %q %v", s, err)
	}
	if _, err := ParseStatus("interview"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

package seeder

import (
	"context"
	"errors"
	"testing"

	"intern-match/internal/config"
	"intern-match/internal/domain/user"
	"intern-match/internal/repository/memory"

	"golang.org/x/crypto/bcrypt"
)

func TestDefaults_IdempotentAndSeedsAdmin(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	cfg := config.SeedConfig{AdminName: "Admin User", AdminEmail: "Admin@Example.com", AdminPassword: "password"}
	r := Runner{Seeders: Defaults(cfg, store.Users(), store.Internships())}

	for i := 0; i < 2; i++ {
		if err := r.Run(ctx); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	list, _ := store.Internships().List(ctx)
	if len(list) != len(SampleInternships()) {
		t.Fatalf("expected %d internships, got %d", len(SampleInternships()), len(list))
	}

	admin, err := store.Users().GetUserByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("admin missing: %v", err)
	}
	if admin.Role != user.RoleAdmin {
		t.Fatalf("expected admin role, got %q", admin.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("password")) != nil {
		t.Fatalf("admin password hash mismatch")
	}
}

func TestDefaults_NoAdminWithoutPassword(t *testing.T) {
	store := memory.New()
	seeders := Defaults(config.SeedConfig{AdminEmail: "admin@example.com"}, store.Users(), store.Internships())
	if len(seeders) != 1 {
		t.Fatalf("expected only the internship seeder, got %d", len(seeders))
	}
	if err := (AdminSeeder{Users: store.Users(), Email: "x@example.com"}).Run(context.Background()); !errors.Is(err, ErrAdminPasswordMissing) {
		t.Fatalf("expected ErrAdminPasswordMissing, got %v", err)
	}
}
